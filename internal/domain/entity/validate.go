package entity

import (
	"reflect"
	"strings"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report json names so messages match the API payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := ParseCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, ok := ParseTimeOfDay(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		_, ok := ParseFrequencyType(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return IsValidClock(fl.Field().String())
	})

	return v
}

// IsValidClock reports whether s is an HH:MM time of day
func IsValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return apperror.FromValidator(err)
	}
	return nil
}

func validationf(format string, args ...any) error {
	return apperror.Validation(format, args...)
}
