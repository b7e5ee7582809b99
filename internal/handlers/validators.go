package handlers

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches gin's validator about decimal.Decimal fields:
//
//	dgte0    value >= 0
//	dgt0     value > 0
//	dnonzero value != 0
//
// Decimals are validated through their string form.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerDecimalValidators(v)
}

func registerDecimalValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]func(decimal.Decimal) bool{
		"dgte0":    func(d decimal.Decimal) bool { return !d.IsNegative() },
		"dgt0":     func(d decimal.Decimal) bool { return d.IsPositive() },
		"dnonzero": func(d decimal.Decimal) bool { return !d.IsZero() },
	}
	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, decimalRule(rule)); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

func decimalRule(rule func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return rule(d)
	}
}
