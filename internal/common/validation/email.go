// internal/common/validation/email.go
package validation

import (
	"strings"

	"mergington-activities/internal/common/errors"
)

// ValidateEmail checks the email query parameter: it must be non-empty and
// contain an "@" with a non-empty local part and domain. Anything stricter
// is out of scope for this API.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.NewInvalidEmailError("email parameter is required")
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.NewInvalidEmailError("email must be of the form local@domain")
	}
	return nil
}
