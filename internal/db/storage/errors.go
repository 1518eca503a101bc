package storage

import (
	"errors"
	"strings"
)

var (
	// ErrNoRow is returned by Apply when the batch committed but its last
	// statement did not create a row.
	ErrNoRow = errors.New("no row created")

	// ErrTagNotFound is returned when a tag lookup finds nothing.
	ErrTagNotFound = errors.New("tag not found")
)

// isConstraintViolation reports SQLite constraint failures such as a
// duplicate unique value.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "constraint failed")
}
