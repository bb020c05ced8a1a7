// Package storeerr sorts failures reported by the relational store into a few
// portable constraint categories, independent of the database engine.
package storeerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

type Category int

const (
	Other Category = iota
	Unique
	ForeignKey
	Check
)

func (c Category) String() string {
	switch c {
	case Unique:
		return "unique"
	case ForeignKey:
		return "foreign_key"
	case Check:
		return "check"
	default:
		return "other"
	}
}

// Classify reports which kind of integrity rule err broke, or Other.
func Classify(err error) Category {
	if err == nil {
		return Other
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Unique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromSQLState(pgErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return fromSQLite(liteErr)
	}

	return Other
}

func fromSQLState(code string) Category {
	switch code {
	case "23505":
		return Unique
	case "23503":
		return ForeignKey
	// check_violation, not_null_violation, string too long, numeric out of range,
	// bad datetime format, datetime out of range, bad text representation
	case "23514", "23502", "22001", "22003", "22007", "22008", "22P02":
		return Check
	}
	return Other
}

func fromSQLite(err sqlite3.Error) Category {
	if err.Code != sqlite3.ErrConstraint {
		return Other
	}
	switch err.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return Unique
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKey
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
		return Check
	}
	return Other
}

// Constraint returns the name of the violated constraint when the store
// reports one, or "".
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintCheck {
		// "CHECK constraint failed: <name>"
		if _, name, ok := strings.Cut(liteErr.Error(), "failed: "); ok {
			return name
		}
	}
	return ""
}

// Messages maps a category to the text shown to the user. Categories missing
// from the table are treated as unexpected failures by the caller.
type Messages map[Category]string

func (m Messages) Lookup(c Category) (string, bool) {
	if c == Other {
		return "", false
	}
	msg, ok := m[c]
	return msg, ok
}
