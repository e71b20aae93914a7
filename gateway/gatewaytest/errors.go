package gatewaytest

import "github.com/gin-gonic/gin"

// Entry is one error line of a provider error body.
type Entry struct {
	Code        any
	Description string
	Detail      string
}

// Field is one invalid-field line of a provider error body.
type Field struct {
	Field       string
	Description string
	Detail      string
}

// NESError builds an error body with lowercase keys.
func NESError(message string, entries ...Entry) gin.H {
	body := gin.H{"message": message}
	if len(entries) > 0 {
		errs := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			errs = append(errs, gin.H{"code": e.Code, "description": e.Description, "detail": e.Detail})
		}
		body["errors"] = errs
	}
	return body
}

// NESValidationError builds a lowercase error body with invalid fields.
func NESValidationError(message string, fields ...Field) gin.H {
	body := gin.H{"message": message}
	items := make([]gin.H, 0, len(fields))
	for _, f := range fields {
		items = append(items, gin.H{"field": f.Field, "description": f.Description, "detail": f.Detail})
	}
	body["invalidFields"] = items
	return body
}

// NilveraError builds an error body with capitalized keys.
func NilveraError(message string, entries ...Entry) gin.H {
	body := gin.H{"Message": message}
	if len(entries) > 0 {
		errs := make([]gin.H, 0, len(entries))
		for _, e := range entries {
			errs = append(errs, gin.H{"Code": e.Code, "Description": e.Description, "Detail": e.Detail})
		}
		body["Errors"] = errs
	}
	return body
}
