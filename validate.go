package main

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validationDetail is one violated field in a 400 response. The validator
// reports every violated field at once, not just the first.
type validationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Report field names as their json tags (age, activity_level) instead of Go
// struct field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON binds the request body into obj and writes the 400 envelope on
// failure. Binding-tag violations produce a details array with every violated
// field; malformed JSON gets a generic message. Returns false if a response
// was already written.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]validationDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, validationDetail{
				Field:   fe.Field(),
				Message: constraintMessage(fe),
			})
		}
		apiValidationError(c, "input validation failed", details)
		return false
	}

	apiError(c, http.StatusBadRequest, "invalid request body")
	return false
}

// constraintMessage renders a violated binding tag as a human-readable
// constraint ("must be at most 120").
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}
