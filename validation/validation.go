// Package validation wraps go-playground/validator with request-shaped
// error reporting: a failed check yields a typed Issues slice that handlers
// turn into a 400 body, never a bare error string to be matched by name.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Issue is one field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues is the full set of failures for a request body.
type Issues []Issue

// Messages returns the human-readable message list.
func (is Issues) Messages() []string {
	out := make([]string, len(is))
	for i, issue := range is {
		out[i] = issue.Message
	}
	return out
}

// Joined concatenates all messages for the top-level error string.
func (is Issues) Joined() string {
	return strings.Join(is.Messages(), "; ")
}

var (
	hexColorRe = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)
	monthRe    = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// YYYY-MM-DD, must be a real calendar date
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	// YYYY-MM
	_ = v.RegisterValidation("monthstr", func(fl validator.FieldLevel) bool {
		return monthRe.MatchString(fl.Field().String())
	})
	// six hex digits, no leading #
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})

	return v
}

// Struct validates a request struct and translates any failures. A nil
// return means the input passed every declared check.
func Struct(s interface{}) Issues {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Issues{{Field: "", Message: "Invalid request body"}}
	}

	issues := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Field: fe.Field(), Message: message(fe)})
	}
	return issues
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "dateonly":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "monthstr":
		return fmt.Sprintf("%s must be a month in YYYY-MM format", field)
	case "hexcolor6":
		return fmt.Sprintf("%s must be a 6-digit hex color", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
