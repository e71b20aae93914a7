package gateway

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorDetail is one entry of a provider "errors"/"Errors" array.
type ErrorDetail struct {
	Code        string
	Description string
	Detail      string
}

// String renders the entry as "[code] description - detail", omitting absent
// parts. Separators are kept as is, so a detail-only entry reads " - detail".
func (d ErrorDetail) String() string {
	var b strings.Builder
	if d.Code != "" {
		b.WriteString("[" + d.Code + "] ")
	}
	b.WriteString(d.Description)
	if d.Detail != "" {
		b.WriteString(" - " + d.Detail)
	}
	return b.String()
}

// InvalidField is one entry of a provider "invalidFields" array.
type InvalidField struct {
	Field       string
	Description string
	Detail      string
}

// String renders the entry as "Field: f - description (detail)", omitting
// absent parts without trimming the separators.
func (f InvalidField) String() string {
	var b strings.Builder
	if f.Field != "" {
		b.WriteString("Field: " + f.Field)
	}
	if f.Description != "" {
		b.WriteString(" - " + f.Description)
	}
	if f.Detail != "" {
		b.WriteString(" (" + f.Detail + ")")
	}
	return b.String()
}

func errorDetails(details map[string]any) []ErrorDetail {
	entries := lookupObjects(details, "errors")
	if len(entries) == 0 {
		return nil
	}
	out := make([]ErrorDetail, 0, len(entries))
	for _, e := range entries {
		d := ErrorDetail{}
		d.Code, _ = lookupString(e, "code")
		d.Description, _ = lookupString(e, "description")
		d.Detail, _ = lookupString(e, "detail")
		out = append(out, d)
	}
	return out
}

func invalidFields(details map[string]any) []InvalidField {
	entries := lookupObjects(details, "invalidFields")
	if len(entries) == 0 {
		return nil
	}
	out := make([]InvalidField, 0, len(entries))
	for _, e := range entries {
		f := InvalidField{}
		f.Field, _ = lookupString(e, "field")
		f.Description, _ = lookupString(e, "description")
		f.Detail, _ = lookupString(e, "detail")
		out = append(out, f)
	}
	return out
}

func defaultStatusMessage(status int) string {
	return fmt.Sprintf("HTTP %d Error", status)
}

// renderMessage builds the display message of an HTTP error from its decoded body.
func renderMessage(status int, details map[string]any) string {
	base, ok := lookupString(details, "message")
	if !ok {
		base = defaultStatusMessage(status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "HTTP %d: %s", status, base)

	if lines := renderLines(errorDetails(details)); len(lines) > 0 {
		b.WriteString("\n\nError Details:\n")
		b.WriteString(strings.Join(lines, "\n"))
	}

	// Only the capitalized spelling carries the free-text error.
	if s, ok := details["Error"].(string); ok && s != "" {
		b.WriteString("\n\nError: " + s)
	}

	if lines := renderLines(invalidFields(details)); len(lines) > 0 {
		b.WriteString("\n\nInvalid Fields:\n")
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

// fallbackMessage is used when the error body is not a JSON object.
func fallbackMessage(status int, body string) string {
	text := body
	if strings.TrimSpace(text) == "" {
		text = http.StatusText(status)
	}
	if text == "" {
		return defaultStatusMessage(status)
	}
	return fmt.Sprintf("HTTP %d: %s", status, text)
}

func renderLines[T fmt.Stringer](items []T) []string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if s := item.String(); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}
