// Package migrations applies ordered, idempotent schema migrations and
// records which ones ran in the schema_migrations table.
package migrations

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/seldo/seldo/internal/db/models"
)

// Func performs a migration on tx. applied lists the ids already recorded.
type Func func(ctx context.Context, tx *gorm.DB, applied []int) error

// Migration is one schema change. Name follows migration_NN_description and
// ID equals NN.
type Migration struct {
	ID      int
	Name    string
	Migrate Func
}

var namePattern = regexp.MustCompile(`^migration_(\d+)_\w+$`)

// registered is ordered by id.
var registered = []Migration{ //nolint:gochecknoglobals
	{ID: 1, Name: "migration_01_initial_setup", Migrate: initialSetup},
}

// Registry returns all known migrations in increasing id order.
func Registry() []Migration {
	return slices.Clone(registered)
}

// Validate checks that ids are positive, unique and match the numeric
// suffix of each name.
func Validate(ms []Migration) error {
	seen := make(map[int]bool, len(ms))

	for _, m := range ms {
		match := namePattern.FindStringSubmatch(m.Name)
		if match == nil || m.Migrate == nil || m.ID <= 0 {
			return errors.Wrap(ErrInvalidMigration, m.Name)
		}

		if n, _ := strconv.Atoi(match[1]); n != m.ID {
			return errors.Wrapf(ErrInvalidMigration, "%s has id %d", m.Name, m.ID)
		}

		if seen[m.ID] {
			return errors.Wrapf(ErrDuplicateMigration, "%d", m.ID)
		}

		seen[m.ID] = true
	}

	return nil
}

// Run applies the registered migrations.
func Run(ctx context.Context, db *gorm.DB) ([]int, error) {
	return RunMigrations(ctx, db, Registry())
}

// RunMigrations ensures the bookkeeping table, then applies every migration
// of ms not yet recorded, in increasing id order. Each migration runs in its
// own transaction together with its record. The first failure stops the run;
// migrations applied before it stay applied. The ids applied by this call
// are returned.
func RunMigrations(ctx context.Context, db *gorm.DB, ms []Migration) ([]int, error) {
	if err := Validate(ms); err != nil {
		return nil, err
	}

	ms = slices.Clone(ms)
	slices.SortFunc(ms, func(a, b Migration) int { return a.ID - b.ID })

	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}

	applied, err := Applied(ctx, db)
	if err != nil {
		return nil, err
	}

	var done []int

	for _, m := range ms {
		if slices.Contains(applied, m.ID) {
			continue
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Migrate(ctx, tx, slices.Clone(applied)); err != nil {
				return err
			}

			return tx.Create(&models.Migration{
				ID:      m.ID,
				Name:    m.Name,
				Applied: time.Now().UTC().Format(time.RFC3339),
			}).Error
		})
		if err != nil {
			log.Error().Err(err).Str("migration", m.Name).Msg("migration failed")
			return done, errors.Wrapf(err, "apply %s", m.Name)
		}

		log.Info().Str("migration", m.Name).Msg("applied migration")

		applied = append(applied, m.ID)
		done = append(done, m.ID)
	}

	return done, nil
}

// Applied returns the recorded migration ids in increasing order.
func Applied(ctx context.Context, db *gorm.DB) ([]int, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}

	var ids []int
	if err := db.WithContext(ctx).Model(&models.Migration{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "read applied migrations")
	}

	return ids, nil
}

func ensureTable(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
    id      INTEGER PRIMARY KEY,
    name    TEXT NOT NULL,
    applied TEXT NOT NULL
)`).Error

	return errors.Wrap(err, "create schema_migrations")
}
