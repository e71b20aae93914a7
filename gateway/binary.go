package gateway

import (
	"encoding/base64"
	"strings"
)

// binaryPayloadKeys are the envelope fields checked for a base64 payload, in order.
var binaryPayloadKeys = []string{"pdf", "content", "data", "file"}

var jsonLikeContentTypes = []string{"application/json", "text/json", "text/plain"}

// DecodeBinary extracts the file bytes from a download response.
//
// Providers either send raw bytes, a JSON object holding a base64 field, or a
// JSON string that is itself base64. Each shape is tried in order and the
// first one that yields valid base64 wins. When nothing decodes, the body is
// returned unchanged.
func DecodeBinary(contentType string, body []byte) []byte {
	if !isJSONLike(contentType) {
		return body
	}
	if data, ok := fromEnvelope(body); ok {
		return data
	}
	if data, ok := fromQuotedString(body); ok {
		return data
	}
	return body
}

func isJSONLike(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, t := range jsonLikeContentTypes {
		if strings.Contains(ct, t) {
			return true
		}
	}
	return false
}

// fromEnvelope handles {"pdf": "<base64>"} and friends.
func fromEnvelope(body []byte) ([]byte, bool) {
	obj, ok := decodeObject(body)
	if !ok {
		return nil, false
	}
	for _, key := range binaryPayloadKeys {
		s, ok := obj[key].(string)
		if !ok || s == "" {
			continue
		}
		if data, ok := decodeBase64(s); ok {
			return data, true
		}
	}
	return nil, false
}

// fromQuotedString handles "\"<base64>\"". A JSON string is unescaped first;
// otherwise one layer of surrounding quotes is stripped from the raw body.
func fromQuotedString(body []byte) ([]byte, bool) {
	if v, ok := decodeJSON(body); ok {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, false
		}
		return decodeBase64(s)
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) < 3 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return nil, false
	}
	return decodeBase64(raw[1 : len(raw)-1])
}

func decodeBase64(s string) ([]byte, bool) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, true
	}
	if data, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return data, true
	}
	return nil, false
}
