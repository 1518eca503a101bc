// Package models contains database model definitions.
package models

// Tag labels todos. Names are unique.
type Tag struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;unique;not null"`
}

// TableName implements gorm's tabler.
func (Tag) TableName() string {
	return "Tags"
}
