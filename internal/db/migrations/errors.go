package migrations

import "errors"

var (
	// ErrDuplicateMigration is returned when two migrations share an id.
	ErrDuplicateMigration = errors.New("duplicate migration id")

	// ErrInvalidMigration is returned for a migration without a positive id
	// matching its name, or without a function.
	ErrInvalidMigration = errors.New("invalid migration")
)
