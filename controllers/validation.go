package controllers

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/mi-restaurante/backend/models"
)

// RegisterValidators adds the custom binding rules used by the request
// structs in this package.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	return v.RegisterValidation("tipo_plato", func(fl validator.FieldLevel) bool {
		return models.IsValidDishType(fl.Field().String())
	})
}
