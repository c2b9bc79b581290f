package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"notesmd-be/pkg/apperrors"
)

var validate = validator.New()

// ValidateRequest checks the struct tags on a request DTO and reports a
// MalformedInput error before any I/O or generation call is attempted.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.MalformedInput("invalid request payload: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return apperrors.MalformedInput("invalid request payload: %s", strings.Join(fields, ", "))
}
