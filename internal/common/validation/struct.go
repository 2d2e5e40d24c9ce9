package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	structOnce      sync.Once
	structValidator *validator.Validate
)

func validate() *validator.Validate {
	structOnce.Do(func() {
		structValidator = validator.New()
		structValidator.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return structValidator
}

// ValidateStruct applies `validate` struct tags; field names are reported by their json name.
func ValidateStruct(s interface{}) *ValidationResult {
	err := validate().Struct(s)
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID"}}}
	}

	result := &ValidationResult{}
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fe.Field(),
			Message: "failed on " + fe.Tag(),
			Code:    strings.ToUpper(fe.Tag()),
		})
	}
	return result
}
