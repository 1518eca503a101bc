package models

// Migration records an applied schema migration.
type Migration struct {
	ID      int    `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name    string `gorm:"column:name;not null"`
	Applied string `gorm:"column:applied;not null"`
}

// TableName implements gorm's tabler.
func (Migration) TableName() string {
	return "schema_migrations"
}
