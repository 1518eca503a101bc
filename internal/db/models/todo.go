package models

import "time"

// TimeFormat is the layout of the created and modified columns of todos.
const TimeFormat = time.RFC3339

// Todo is a single item on the todo list.
type Todo struct {
	// ID is the primary key, assigned by the database when zero.
	ID int64 `gorm:"column:todo_id;primaryKey"`
	// Summary is the one line description.
	Summary string `gorm:"column:summary;not null" validate:"required,max=200"`
	// Description is optional free text; nil is stored as NULL.
	Description *string `gorm:"column:description" validate:"omitempty,max=4000"`
	// Created holds the creation time formatted with TimeFormat.
	Created string `gorm:"column:created;not null"`
	// Modified holds the last change time formatted with TimeFormat.
	Modified string `gorm:"column:modified;not null"`
}

// TableName implements gorm's tabler.
func (Todo) TableName() string {
	return "todos"
}

// CreatedAt parses Created.
func (t *Todo) CreatedAt() (time.Time, error) {
	return time.Parse(TimeFormat, t.Created)
}

// ModifiedAt parses Modified.
func (t *Todo) ModifiedAt() (time.Time, error) {
	return time.Parse(TimeFormat, t.Modified)
}
