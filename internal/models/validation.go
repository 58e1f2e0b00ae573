package models

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// dueDatePattern checks the YYYY-MM-DD shape only. Calendar validity is
// deliberately not enforced.
var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// RegisterValidations adds the custom binding rules to Gin's validator
// engine. Must run once before the router starts binding requests.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
			return dueDatePattern.MatchString(fl.Field().String())
		})
	}
}
