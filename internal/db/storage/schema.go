package storage

import (
	"context"

	"github.com/pkg/errors"
)

const (
	createTagsSQL = "CREATE TABLE IF NOT EXISTS Tags(\n" +
		"    id    INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,\n" +
		"    name  TEXT UNIQUE NOT NULL\n" +
		");"

	createTasksSQL = "CREATE TABLE IF NOT EXISTS Tasks(\n" +
		"    id       INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,\n" +
		"    name     TEXT NOT NULL,\n" +
		"    created  DATETIME DEFAULT CURRENT_TIMESTAMP\n" +
		");"

	insertTagSQL   = "INSERT INTO Tags(name) VALUES (?);"
	selectTagIDSQL = "SELECT id FROM Tags WHERE name=?;"
	updateTagSQL   = "UPDATE Tags SET name=? WHERE id=?;"
)

// Initialize creates the Tags and Tasks tables if they do not exist.
func (d *DB) Initialize(ctx context.Context) error {
	_, err := d.Apply(ctx, Stmt(createTagsSQL), Stmt(createTasksSQL))
	if err != nil && !errors.Is(err, ErrNoRow) {
		d.log.Error().Err(err).Msg("schema initialisation failed")
		return errors.Wrap(err, "initialize schema")
	}

	return nil
}

// AddTag inserts a tag named name and returns its id. If the insert fails,
// typically because the name exists, the id of the existing tag is returned.
func (d *DB) AddTag(ctx context.Context, name string) (int64, error) {
	if id, ok := d.ExecuteBatch(ctx, Stmt(insertTagSQL, name)); ok {
		return id, nil
	}

	rows, err := d.ExecuteQuery(ctx, selectTagIDSQL, name)
	if err != nil {
		return 0, errors.Wrapf(err, "look up tag %q", name)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, errors.Wrapf(err, "look up tag %q", name)
		}

		return 0, errors.Wrap(ErrTagNotFound, name)
	}

	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "scan tag %q", name)
	}

	return id, nil
}

// EditTag renames the tag with the given id. Unknown ids are a no-op; a
// failed update, such as a name already in use, is rolled back and returned.
func (d *DB) EditTag(ctx context.Context, id int64, name string) error {
	_, err := d.Apply(ctx, Stmt(updateTagSQL, name, id))
	if err == nil || errors.Is(err, ErrNoRow) {
		return nil
	}

	d.log.Warn().Err(err).Int64("id", id).Str("name", name).Msg("tag rename rolled back")

	return errors.Wrapf(err, "rename tag %d", id)
}
