package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a Postgres unique violation.
// A non-empty constraint narrows the match to that constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if string(pqErr.Code) != pgerrcode.UniqueViolation {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}

// IsCheckViolation reports whether err is a Postgres check constraint violation.
func IsCheckViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if string(pqErr.Code) != pgerrcode.CheckViolation {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}
