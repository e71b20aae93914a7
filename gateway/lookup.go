package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// candidates returns the spellings tried for a logical key, lowercase first.
// "message" -> ["message", "Message"], "invalidFields" -> ["invalidFields", "InvalidFields"].
func candidates(key string) []string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return []string{key}
	}
	lower := string(unicode.ToLower(r)) + key[size:]
	upper := string(unicode.ToUpper(r)) + key[size:]
	if lower == upper {
		return []string{key}
	}
	return []string{lower, upper}
}

// Lookup returns the first non-null value stored under key, trying the
// lowercase spelling first and then the capitalized one.
func Lookup(m map[string]any, key string) (any, bool) {
	for _, k := range candidates(key) {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// lookupString resolves key to a non-empty scalar rendered as text.
// Objects and arrays never count as a match.
func lookupString(m map[string]any, key string) (string, bool) {
	for _, k := range candidates(key) {
		if s, ok := scalarText(m[k]); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// lookupObjects resolves key to the first non-empty array and returns its object entries.
func lookupObjects(m map[string]any, key string) []map[string]any {
	for _, k := range candidates(key) {
		arr, ok := m[k].([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		out := make([]map[string]any, 0, len(arr))
		for _, item := range arr {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case nil, map[string]any, []any:
		return "", false
	default:
		return strings.TrimSpace(fmt.Sprint(t)), true
	}
}
