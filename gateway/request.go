package gateway

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Request describes an outbound gateway call.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string
	// Path is appended to the gateway's BaseURL.
	Path string
	// Query parameters, sent in order.
	Query Query
	// Headers are request-specific headers (override gateway defaults).
	Headers map[string]string
	// Body is JSON-encoded when non-nil. Ignored when Parts is set.
	Body any
	// Parts turns the request into a multipart/form-data upload.
	Parts []Part
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Query is an ordered list of query parameters.
// Booleans are sent as "1"/"0" and nil values are skipped.
type Query []Param

// Add appends a parameter and returns the extended query.
func (q Query) Add(key string, value any) Query {
	return append(q, Param{Key: key, Value: value})
}

// Encode renders the query string in parameter order.
func (q Query) Encode() string {
	var b strings.Builder
	for _, p := range q {
		if p.Value == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(formatQueryValue(p.Value)))
	}
	return b.String()
}

func formatQueryValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// hasHeader reports whether headers contains name, ignoring case.
func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
