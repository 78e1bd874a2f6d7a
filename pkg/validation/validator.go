// Package validation wraps go-playground/validator with the settings shared by
// the HTTP layer and the service layer.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

// Default is safe for concurrent use; validator caches struct metadata on it.
var Default = New()

func New() *Validator {
	v := validator.New()
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Var checks a single value against tag, e.g. Var(addr, "email").
func (v *Validator) Var(field interface{}, tag string) error {
	return v.v.Var(field, tag)
}

// IsEmail applies the same rule as the `email` struct tag.
func (v *Validator) IsEmail(addr string) bool {
	return v.v.Var(addr, "required,email") == nil
}
