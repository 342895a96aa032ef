package validate

import (
	"fmt"

	"chat-service/internal/shared/httpx"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the `validate:"..."` tags on in. Failures carry the
// validation sentinel so they surface as 400s, not internal errors.
func Struct(in any) error {
	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return nil
}
