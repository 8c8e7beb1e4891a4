package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks the validate tags on an input struct and folds
// the failures into a single client-facing message.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" must be at least "+fieldErr.Param()+" characters")
		case "max":
			msgs = append(msgs, field+" must be at most "+fieldErr.Param()+" characters")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "len":
			msgs = append(msgs, field+" must be exactly "+fieldErr.Param()+" characters")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, ", "))
}
