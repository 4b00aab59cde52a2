package energy

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator is shared by every package that validates evaluator settings.
// Field names follow yaml tags and "finite" rejects NaN and Inf.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(yamlName)
		_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			return isFinite(fl.Field().Float())
		})
	})
	return validate
}

// ValidateStruct checks the validate tags of v and reports the first
// violation as a *ConfigurationError named by its yaml path.
func ValidateStruct(v any) error {
	return validateStruct("", v)
}

func validateStruct(prefix string, v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := trimRoot(fe.Namespace())
		if prefix != "" {
			field = prefix + "." + field
		}
		return &ConfigurationError{
			Field:   field,
			Value:   fe.Value(),
			Reason:  describe(fe),
			Wrapped: err,
		}
	}
	return &ConfigurationError{Field: prefix, Reason: "validation failed", Wrapped: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "finite":
		return "must be finite"
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "gtefield":
		return "must not be below " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "failed " + fe.Tag()
}

func yamlName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if tag == "-" {
		return ""
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
