package dto

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var accountCodePattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.\-]{0,19}$`)

// RegisterValidators adds the ledger specific binding rules to a validator engine.
//
//	decimal_positive:    amount > 0
//	decimal_nonnegative: amount >= 0
//	account_code:        1-20 chars of letters, digits, '.' or '-'
func RegisterValidators(v *validator.Validate) error {
	// Validate decimals through their string form so struct-typed fields are not skipped.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			return d.String()
		case *decimal.Decimal:
			if d == nil {
				return nil
			}
			return d.String()
		}
		return nil
	}, decimal.Decimal{}, &decimal.Decimal{})

	if err := v.RegisterValidation("decimal_positive", decimalPositive); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_nonnegative", decimalNonNegative); err != nil {
		return err
	}
	return v.RegisterValidation("account_code", accountCode)
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && d.IsPositive()
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := parseDecimalField(fl)
	return ok && !d.IsNegative()
}

func accountCode(fl validator.FieldLevel) bool {
	return accountCodePattern.MatchString(fl.Field().String())
}
