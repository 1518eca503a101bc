// Package todo provides CRUD operations for the todo list.
package todo

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/seldo/seldo/internal/db/models"
)

var (
	// ErrTodoNotFound is returned when no todo has the requested id.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrSummaryEmpty is returned when a todo would be stored without a summary.
	ErrSummaryEmpty = errors.New("todo summary cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

	// now is replaced in tests.
	now = func() time.Time { return time.Now().UTC() } //nolint:gochecknoglobals
)

// Changes lists the fields Update modifies. Nil fields are left alone.
type Changes struct {
	Summary *string
	// Description replaces the description; an empty string clears it.
	Description *string
}

func stamp() string {
	return now().Format(models.TimeFormat)
}

func check(t *models.Todo) error {
	t.Summary = strings.TrimSpace(t.Summary)
	if t.Summary == "" {
		return ErrSummaryEmpty
	}

	return validate.Struct(t) //nolint:wrapcheck
}

// Get retrieves a todo by its id.
func Get(db *gorm.DB, id int64) (*models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var todo models.Todo

	result := db.First(&todo, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}

		return nil, result.Error
	}

	return &todo, nil
}

// List retrieves all todos ordered by id.
func List(db *gorm.DB) ([]models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var todos []models.Todo

	result := db.Order("todo_id").Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}

	return todos, nil
}

// Create stores a new todo. created and modified are set to the current time.
func Create(db *gorm.DB, summary string, description *string) (*models.Todo, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	ts := stamp()
	todo := &models.Todo{
		Summary:     summary,
		Description: description,
		Created:     ts,
		Modified:    ts,
	}

	if err := check(todo); err != nil {
		return nil, err
	}

	result := db.Create(todo)
	if result.Error != nil {
		return nil, result.Error
	}

	return todo, nil
}

// Update applies c to the todo with the given id and refreshes modified.
func Update(db *gorm.DB, id int64, c Changes) (*models.Todo, error) {
	todo, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if c.Summary != nil {
		todo.Summary = *c.Summary
	}

	if c.Description != nil {
		if *c.Description == "" {
			todo.Description = nil
		} else {
			d := *c.Description
			todo.Description = &d
		}
	}

	if err := check(todo); err != nil {
		return nil, err
	}

	todo.Modified = stamp()

	result := db.Save(todo)
	if result.Error != nil {
		return nil, result.Error
	}

	return todo, nil
}

// Delete deletes a todo by id.
func Delete(db *gorm.DB, id int64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Todo{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
