package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type enumValue interface {
	IsValid() bool
}

var registerOnce sync.Once

// registerValidators adds the "enum" tag to gin's validator. It accepts any
// field whose type reports IsValid.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
			e, ok := fl.Field().Interface().(enumValue)
			return ok && e.IsValid()
		})
	})
}
