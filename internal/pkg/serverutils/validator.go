package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"orgnotes-be/internal/pkg/apperrors"
)

var validate = validator.New()

// ValidateRequest checks `validate:` tags on a request DTO and converts
// failures into a ValidationError the error handler maps to 422.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("invalid request body")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}

	return apperrors.Validation(strings.Join(messages, "; "))
}
