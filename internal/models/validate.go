package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в ошибках показываем имена полей как в JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("modname", func(fl validator.FieldLevel) bool {
		return ModName(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return EventType(fl.Field().String()).Valid()
	})
	return v
}

// Validator exposes the shared instance (request DTOs use it too).
func Validator() *validator.Validate { return validate }

// Validate checks a struct, a pointer to one, or a slice of them against
// the boundary contract.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := Validate(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	case reflect.Struct:
		return validate.Struct(rv.Interface())
	}
	return nil
}
