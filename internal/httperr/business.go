package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindBusiness   Kind = "business_rule"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "unauthorized"
	KindInternal   Kind = "internal"
)

// Error is a domain error with a stable machine code and a human message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, code, message string) error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return newError(KindNotFound, code, message)
}

func ErrValidation(code, message string) error {
	return newError(KindValidation, code, message)
}

func ErrBusiness(code, message string) error {
	return newError(KindBusiness, code, message)
}

func ErrConflict(code, message string) error {
	return newError(KindConflict, code, message)
}

func ErrUnauthorized(code, message string) error {
	return newError(KindAuth, code, message)
}

// KindOf classifies any error. Store uniqueness violations count as conflicts;
// everything unrecognised is internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	if IsExclusionConflict(err) {
		return KindConflict
	}
	return KindInternal
}

func IsBusiness(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsExclusionConflict reports unique (23505) or exclusion (23P01) constraint
// violations, whether translated by gorm or raw from pgx.
func IsExclusionConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
