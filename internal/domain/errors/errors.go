package errors

import (
	"errors"
	"strings"

	"github.com/rafabene/mediaranker/internal/domain/entities"
)

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound = errors.New("error.user_not_found")
	ErrWorkNotFound = errors.New("error.work_not_found")
	ErrAlreadyVoted = errors.New("error.already_voted")
	ErrUnauthorized = errors.New("error.unauthorized")
	ErrForbidden    = errors.New("error.forbidden")
	ErrInvalidClaim = errors.New("error.invalid_claim")
	ErrValidation   = errors.New("error.validation")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// ValidationError agrupa todos os campos inválidos de uma operação
type ValidationError struct {
	Fields []entities.FieldProblem
}

// NewValidationError cria um ValidationError; retorna nil se não houver problemas
func NewValidationError(fields []entities.FieldProblem) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field + ": " + f.Message
	}
	return ErrValidation.Error() + " (" + strings.Join(names, ", ") + ")"
}

// Is permite errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
