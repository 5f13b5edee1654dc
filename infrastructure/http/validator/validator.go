package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/eventhub/eventhub/internal/domain"
	apperr "github.com/eventhub/eventhub/pkg/error"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared validator with the custom tags registered.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names instead of Go field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if m, ok := field.Interface().(domain.Money); ok {
				return m.String()
			}
			return nil
		}, domain.Money{})

		_ = validate.RegisterValidation("money", validateMoney)
	})
	return validate
}

// validateMoney accepts non-negative amounts with at most two decimals.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Exponent() >= -2
}

// ValidateRequest validates a decoded payload. Failures come back as a
// ValidationError whose details map each JSON field to its message.
func ValidateRequest(req interface{}) error {
	err := GetValidator().Struct(req)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return apperr.NewValidation("Invalid request body").Wrap(err)
	}

	details := make(map[string]any, len(validateErrs))
	var first string
	for _, fe := range validateErrs {
		msg := message(fe)
		if first == "" {
			first = msg
		}
		details[fieldPath(fe)] = msg
	}
	return apperr.NewValidation(first).WithDetails(details)
}

// fieldPath drops the top level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, strings.ToLower(fe.Param()))
	case "money":
		return fmt.Sprintf("%s must be a non-negative amount with at most two decimals", field)
	case "alpha":
		return fmt.Sprintf("%s must contain letters only", field)
	case "e164":
		return fmt.Sprintf("%s must be an international phone number", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func isLengthKind(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Map
}
