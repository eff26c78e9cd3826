package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	phonePattern    = regexp.MustCompile(`^(\+62|62|0)8[0-9]{7,11}$`)
	postalPattern   = regexp.MustCompile(`^[0-9]{5}$`)
	nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// New returns a validator with the storefront's custom rules registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("phone", Phone)
	v.RegisterValidation("postal_code", PostalCode)
	v.RegisterValidation("nickname", Nickname)
	v.RegisterValidation("password", Password)
	v.RegisterValidation("credit_card", CreditCard)
	v.RegisterValidation("price", Price)
	return v
}

func Phone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func PostalCode(fl validator.FieldLevel) bool {
	return postalPattern.MatchString(fl.Field().String())
}

func Nickname(fl validator.FieldLevel) bool {
	return nicknamePattern.MatchString(fl.Field().String())
}

// Password requires at least 8 characters mixing upper, lower and digits.
func Password(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// CreditCard checks the Luhn digit over a 13-19 digit card number, ignoring
// spaces and dashes.
func CreditCard(fl validator.FieldLevel) bool {
	return Luhn(fl.Field().String())
}

func Luhn(number string) bool {
	number = strings.NewReplacer(" ", "", "-", "").Replace(number)
	if len(number) < 13 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		r := number[i]
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func Price(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}
