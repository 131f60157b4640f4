package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bdPhonePattern matches Bangladeshi mobile numbers, with or without the
// country code: 01XXXXXXXXX, 8801XXXXXXXXX or +8801XXXXXXXXX.
var bdPhonePattern = regexp.MustCompile(`^(?:\+?88)?01[3-9][0-9]{8}$`)

// RegisterValidators installs the custom binding validators on Gin's
// validator engine. Call once at startup before handling requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("bdphone", func(fl validator.FieldLevel) bool {
		return bdPhonePattern.MatchString(fl.Field().String())
	})
}
