package usecase

import (
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeUnknown    = "UNKNOWN"
)

// DomainError é um erro esperado do domínio (NotFound, validação).
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é qualquer outra falha, repassada com a mensagem genérica.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o código para a camada de apresentação.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return CodeUnknown
}

// wrap classifica o erro do repositório e prefixa com a ação ("failed to save lead").
func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("%s: %v", action, err)

	switch {
	case errors.Is(err, entity.ErrNotFound):
		return &DomainError{Code: CodeNotFound, Message: msg, Err: err}
	case entity.IsValidationError(err):
		return &DomainError{Code: CodeValidation, Message: msg, Err: err}
	default:
		return &TechnicalError{Code: CodeUnknown, Message: msg, Err: err}
	}
}
