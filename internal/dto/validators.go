package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs validation rules used by request
// binding. Must be called once at startup against gin's validator engine.
func RegisterCustomValidators(v *validator.Validate) error {
	// decimalgt0 accepts only strictly positive decimal amounts.
	return v.RegisterValidation("decimalgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return d.IsPositive()
	})
}
