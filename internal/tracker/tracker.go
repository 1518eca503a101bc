// Package tracker opens the configured database, brings its schema up to
// date and exposes the operations the command line works with.
package tracker

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/seldo/seldo/internal/config"
	"github.com/seldo/seldo/internal/db/controller/tag"
	"github.com/seldo/seldo/internal/db/controller/todo"
	"github.com/seldo/seldo/internal/db/migrations"
	"github.com/seldo/seldo/internal/db/models"
	"github.com/seldo/seldo/internal/db/storage"
	"github.com/seldo/seldo/internal/logger"
)

// ErrConfigNil is returned by New without a configuration.
var ErrConfigNil = errors.New("config is nil")

// Tracker holds a storage handle on the shared connection.
type Tracker struct {
	db      *storage.DB
	log     zerolog.Logger
	applied []int
}

// New opens the database named by cfg and applies pending migrations.
func New(ctx context.Context, cfg *config.Store) (*Tracker, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	l := logger.Component("tracker")

	db, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	applied, err := migrations.Run(ctx, db.ORM())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	l.Debug().Str("database", db.Path()).Ints("migrations", applied).Msg("tracker ready")

	return &Tracker{db: db, log: l, applied: applied}, nil
}

// Close releases the handle. The shared connection stays open for other
// handles until storage.Shutdown.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Migrated returns the migration ids applied when the tracker was opened.
func (t *Tracker) Migrated() []int {
	return t.applied
}

// Applied returns every migration id recorded in the database.
func (t *Tracker) Applied(ctx context.Context) ([]int, error) {
	return migrations.Applied(ctx, t.db.ORM())
}

// AddTag returns the id of the tag called name, creating it if needed.
func (t *Tracker) AddTag(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, tag.ErrTagNameEmpty
	}

	return t.db.AddTag(ctx, name)
}

// RenameTag renames the tag with the given id. Unknown ids are reported as
// tag.ErrTagNotFound.
func (t *Tracker) RenameTag(ctx context.Context, id int64, name string) error {
	if name == "" {
		return tag.ErrTagNameEmpty
	}

	if _, err := tag.Get(t.db.ORM().WithContext(ctx), id); err != nil {
		return err
	}

	return t.db.EditTag(ctx, id, name)
}

// TagByName returns the tag called name.
func (t *Tracker) TagByName(ctx context.Context, name string) (*models.Tag, error) {
	return tag.GetByName(t.db.ORM().WithContext(ctx), name)
}

// Tags lists all tags by name.
func (t *Tracker) Tags(ctx context.Context) ([]models.Tag, error) {
	return tag.List(t.db.ORM().WithContext(ctx))
}

// AddTodo stores a new todo.
func (t *Tracker) AddTodo(ctx context.Context, summary string, description *string) (*models.Todo, error) {
	return todo.Create(t.db.ORM().WithContext(ctx), summary, description)
}

// Todo returns the todo with the given id.
func (t *Tracker) Todo(ctx context.Context, id int64) (*models.Todo, error) {
	return todo.Get(t.db.ORM().WithContext(ctx), id)
}

// Todos lists all todos by id.
func (t *Tracker) Todos(ctx context.Context) ([]models.Todo, error) {
	return todo.List(t.db.ORM().WithContext(ctx))
}

// EditTodo applies c to the todo with the given id.
func (t *Tracker) EditTodo(ctx context.Context, id int64, c todo.Changes) (*models.Todo, error) {
	return todo.Update(t.db.ORM().WithContext(ctx), id, c)
}

// DeleteTodo removes the todo with the given id.
func (t *Tracker) DeleteTodo(ctx context.Context, id int64) error {
	return todo.Delete(t.db.ORM().WithContext(ctx), id)
}
