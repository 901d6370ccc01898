package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidInspection   = errors.New("invalid inspection")
	ErrInvalidTransition   = errors.New("invalid alert status transition")
)

// classifyDBError maps driver errors onto the service error taxonomy.
// Anything unrecognised is returned unchanged.
func classifyDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
