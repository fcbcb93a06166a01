package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Typed failures surfaced to callers. Handlers translate these into HTTP
// status codes; repository functions never swallow storage-level violations.
var (
	// ErrNotFound means a lookup by id/uid/code matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique key (username, class_code, uid,
	// scenario_code, exam_code, or a join pair) was violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrValidation means an out-of-range score or invalid enum value was
	// rejected before reaching storage.
	ErrValidation = errors.New("validation failed")
)

const mysqlDuplicateEntry = 1062

// isDuplicateErr reports whether err is a unique-constraint violation from the
// underlying store. MySQL in production, sqlite in tests.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFoundOrErr maps gorm's record-not-found onto the ErrNotFound sentinel and
// passes every other storage error through untouched.
func notFoundOrErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
