// Package tag provides read access to tags. Tags are written through the
// storage package.
package tag

import (
	"errors"

	"gorm.io/gorm"

	"github.com/seldo/seldo/internal/db/models"
)

var (
	// ErrTagNotFound is returned when a tag is not found.
	ErrTagNotFound = errors.New("tag not found")
	// ErrTagNameEmpty is returned when looking up a tag by an empty name.
	ErrTagNameEmpty = errors.New("tag name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func first(db *gorm.DB, query any, args ...any) (*models.Tag, error) {
	var tag models.Tag

	result := db.Where(query, args...).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}

		return nil, result.Error
	}

	return &tag, nil
}

// Get retrieves a tag by its id.
func Get(db *gorm.DB, id int64) (*models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return first(db, "id = ?", id)
}

// GetByName retrieves a tag by its name.
func GetByName(db *gorm.DB, name string) (*models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrTagNameEmpty
	}

	return first(db, "name = ?", name)
}

// List retrieves all tags ordered by name.
func List(db *gorm.DB) ([]models.Tag, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tags []models.Tag

	result := db.Order("name").Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}

	return tags, nil
}
