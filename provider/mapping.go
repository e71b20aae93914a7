package provider

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/afea/einvoice/gateway"
)

// Object returns the payload of resp as an object. Empty responses map to an
// empty object; only text responses are an error.
func Object(resp *gateway.Response) (map[string]any, error) {
	switch resp.Variant {
	case gateway.VariantEmpty:
		return map[string]any{}, nil
	case gateway.VariantText:
		return nil, gateway.ErrNotJSON
	}
	if m, ok := resp.Object(); ok {
		return m, nil
	}
	return map[string]any{}, nil
}

// Objects returns the payload of resp as a list of objects. A single object
// is wrapped as one entry and non-object array items are skipped.
func Objects(resp *gateway.Response) ([]map[string]any, error) {
	switch resp.Variant {
	case gateway.VariantEmpty:
		return nil, nil
	case gateway.VariantText:
		return nil, gateway.ErrNotJSON
	}
	if m, ok := resp.Object(); ok {
		if len(m) == 0 {
			return nil, nil
		}
		return []map[string]any{m}, nil
	}
	arr, _ := resp.Array()
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Int64 reads key from m as an integer. Missing or unparsable values are 0;
// fractions are truncated.
func Int64(m map[string]any, key string) int64 {
	v, ok := gateway.Lookup(m, key)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return truncate(f)
		}
	case float64:
		return truncate(t)
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncate(f)
		}
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

// String reads key from m as text. Missing values are "".
func String(m map[string]any, key string) string {
	v, ok := gateway.Lookup(m, key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}
