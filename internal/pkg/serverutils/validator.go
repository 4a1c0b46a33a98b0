package serverutils

import (
	"fmt"
	"strings"

	"labnotebook-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and folds the failures into a
// single ValidationError so the client gets one readable message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidation("Invalid request body")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return apperror.NewValidation(fmt.Sprintf("Missing or invalid fields: %s", strings.Join(fields, ", ")))
}
