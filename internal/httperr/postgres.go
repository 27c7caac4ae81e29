package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict detecta violação da constraint de sobreposição de horários
func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

// IsLockConflict reports errors raised when two transactions fight over
// the same appointment row.
func IsLockConflict(err error) bool {
	switch pgCode(err) {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}
	return false
}

// Translate converte erros do postgres em erros de negócio; os demais
// voltam intactos.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case IsExclusionConflict(err):
		return ErrBusiness(CodeTimeConflict)
	case IsLockConflict(err):
		return ErrBusiness(CodeConcurrentModification)
	}
	return err
}
