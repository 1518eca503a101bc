package config

import (
	"errors"
)

var (
	// ErrKeyNotFound is returned when reading or deleting an absent key.
	ErrKeyNotFound = errors.New("config key not found")

	// ErrEmptyDatabaseFile is returned if database_file is missing or empty.
	ErrEmptyDatabaseFile = errors.New("config database_file can not be empty")

	// ErrNotAString is returned by GetString for values that are not strings.
	ErrNotAString = errors.New("config value is not a string")
)
