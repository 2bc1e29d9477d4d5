// Package validation holds the shared request validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/timewindow"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get returns the validator singleton. Field names in errors follow json tags
// and the "hhmm" tag accepts 00:00 through 23:59.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag == "" || tag == "-" {
				return fld.Name
			}
			return tag
		})

		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			t, err := timewindow.ParseTimeOfDay(fl.Field().String())
			return err == nil && t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
		})

		instance = v
	})
	return instance
}

// Struct validates v and reports the first failure as *domain.ValidationError.
func Struct(v any) error {
	return toDomain(Get().Struct(v), "")
}

// Var validates a single value under the given field name.
func Var(field string, value any, tag string) error {
	return toDomain(Get().Var(value, tag), field)
}

func toDomain(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		name := fe.Field()
		if field != "" {
			name = field
		}
		return domain.NewValidationError(name, describe(fe))
	}
	return domain.NewValidationError(field, err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be >= " + fe.Param()
	case "gtefield":
		return "must not be below " + fe.Param()
	case "hhmm":
		return fmt.Sprintf("expected HH:MM, got %q", fe.Value())
	case "timezone":
		return fmt.Sprintf("unknown timezone %q", fe.Value())
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "url", "http_url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag()
	}
}
