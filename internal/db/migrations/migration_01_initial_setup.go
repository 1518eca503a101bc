package migrations

import (
	"context"

	"gorm.io/gorm"
)

// initialSetup creates the todos table.
func initialSetup(ctx context.Context, tx *gorm.DB, _ []int) error {
	return tx.WithContext(ctx).Exec(
		"CREATE TABLE IF NOT EXISTS todos (" +
			"    todo_id INTEGER PRIMARY KEY," +
			"    summary TEXT NOT NULL," +
			"    description TEXT," +
			"    created TEXT NOT NULL," +
			"    modified TEXT NOT NULL" +
			")").Error
}
