package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotJSON is returned by Response.Decode when the payload is text.
var ErrNotJSON = errors.New("gateway: response is not JSON")

// Variant discriminates the three success shapes.
type Variant int

const (
	// VariantEmpty means the body was empty or whitespace only.
	VariantEmpty Variant = iota
	// VariantJSON means the body decoded as JSON.
	VariantJSON
	// VariantText means the body is kept as raw text.
	VariantText
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantEmpty:
		return "empty"
	case VariantJSON:
		return "json"
	case VariantText:
		return "text"
	default:
		return "unknown"
	}
}

// Response is the normalized result of a successful call.
// Exactly one payload matches Variant: JSON for VariantJSON, Text for VariantText,
// neither for VariantEmpty.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers (first value per name).
	Headers map[string]string
	// Variant tells which payload is populated.
	Variant Variant
	// JSON is the decoded value. Numbers are json.Number; null becomes an empty object.
	JSON any
	// Text is the raw body for text responses.
	Text string
}

// IsEmpty reports whether the response carried no body.
func (r *Response) IsEmpty() bool { return r.Variant == VariantEmpty }

// IsJSON reports whether the body decoded as JSON.
func (r *Response) IsJSON() bool { return r.Variant == VariantJSON }

// IsText reports whether the body is kept as text.
func (r *Response) IsText() bool { return r.Variant == VariantText }

// Object returns the JSON payload when it is an object.
func (r *Response) Object() (map[string]any, bool) {
	if r.Variant != VariantJSON {
		return nil, false
	}
	m, ok := r.JSON.(map[string]any)
	return m, ok
}

// Array returns the JSON payload when it is an array.
func (r *Response) Array() ([]any, bool) {
	if r.Variant != VariantJSON {
		return nil, false
	}
	a, ok := r.JSON.([]any)
	return a, ok
}

// Lookup resolves key on an object payload, trying the lowercase then the
// capitalized spelling.
func (r *Response) Lookup(key string) (any, bool) {
	m, ok := r.Object()
	if !ok {
		return nil, false
	}
	return Lookup(m, key)
}

// Decode maps the JSON payload into v. An empty response leaves v untouched;
// a text response returns ErrNotJSON.
func (r *Response) Decode(v any) error {
	switch r.Variant {
	case VariantEmpty:
		return nil
	case VariantText:
		return ErrNotJSON
	}
	data, err := json.Marshal(r.JSON)
	if err != nil {
		return fmt.Errorf("gateway: re-encode payload: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("gateway: decode payload: %w", err)
	}
	return nil
}

// HTMLDocument is the result of DownloadHTML.
type HTMLDocument struct {
	// Content is the raw body.
	Content string
	// Headers uses lower-cased names; repeated values are joined with ", ".
	Headers map[string]string
}

// ClassifyResponse normalizes a success response into one of the three variants.
// It is a pure function of its inputs.
func ClassifyResponse(statusCode int, header http.Header, body []byte) *Response {
	resp := &Response{
		StatusCode: statusCode,
		Headers:    flattenHeaders(header),
	}

	if strings.TrimSpace(string(body)) == "" {
		resp.Variant = VariantEmpty
		return resp
	}

	if isTextContentType(header.Get("Content-Type")) {
		resp.Variant = VariantText
		resp.Text = string(body)
		return resp
	}

	v, ok := decodeJSON(body)
	if !ok {
		resp.Variant = VariantText
		resp.Text = string(body)
		return resp
	}
	if v == nil {
		v = map[string]any{}
	}
	resp.Variant = VariantJSON
	resp.JSON = v
	return resp
}

func isTextContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "text/")
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// joinHeaders lower-cases header names and joins repeated values.
func joinHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		result[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return result
}
