package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotFound é retornado (embrulhado com entidade e id) quando o Id não existe.
var ErrNotFound = errors.New("not found")

// NotFound embrulha ErrNotFound com o nome da entidade e o Id procurado.
func NotFound(kind string, id int) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors agrega todas as falhas de um payload.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// IsValidationError diz se err (ou algo que ele embrulha) é ValidationErrors.
func IsValidationError(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
)

func isRequired(s string) bool {
	return strings.TrimSpace(s) != ""
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Formato americano: (555) 123-4567, 555-123-4567, 5551234567...
func isValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
