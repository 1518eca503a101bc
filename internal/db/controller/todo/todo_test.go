package todo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/seldo/seldo/internal/config"
	"github.com/seldo/seldo/internal/db/migrations"
	"github.com/seldo/seldo/internal/db/models"
	"github.com/seldo/seldo/internal/db/storage"
)

// setupTestDB creates a migrated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	cfg := config.NewIsolated()
	cfg.Set(config.KeyDatabaseFile, config.MemoryDatabase)

	d, err := storage.New(ctx, cfg)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() { _ = d.Close() })

	_, err = migrations.Run(ctx, d.ORM())
	require.NoError(t, err, "failed to migrate test database")

	return d.ORM()
}

func freezeClock(t *testing.T, ts time.Time) {
	t.Helper()

	prev := now
	now = func() time.Time { return ts }

	t.Cleanup(func() { now = prev })
}

func ptr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	freezeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		summary       string
		description   *string
		expectedError error
	}{
		{name: "nil database", summary: "x", expectedError: ErrDBNil},
		{name: "empty summary", dbParam: db, summary: "   ", expectedError: ErrSummaryEmpty},
		{name: "without description", dbParam: db, summary: "buy milk"},
		{name: "with description", dbParam: db, summary: "write report", description: ptr("quarterly")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			todo, err := Create(tc.dbParam, tc.summary, tc.description)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, todo)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, todo.ID)
			assert.Equal(t, "2026-03-01T12:00:00Z", todo.Created)
			assert.Equal(t, todo.Created, todo.Modified)

			stored, err := Get(db, todo.ID)
			require.NoError(t, err)
			assert.Equal(t, todo, stored)
		})
	}
}

func TestCreateTooLong(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, strings.Repeat("a", 201), nil)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Summary", verrs[0].Field())
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Get(db, 42)
	require.ErrorIs(t, err, ErrTodoNotFound)
}

func TestList(t *testing.T) {
	db := setupTestDB(t)

	todos, err := List(db)
	require.NoError(t, err)
	assert.Empty(t, todos)

	for _, s := range []string{"one", "two", "three"} {
		_, err := Create(db, s, nil)
		require.NoError(t, err)
	}

	todos, err = List(db)
	require.NoError(t, err)
	require.Len(t, todos, 3)

	summaries := make([]string, 0, len(todos))
	for _, td := range todos {
		summaries = append(summaries, td.Summary)
	}

	assert.Equal(t, []string{"one", "two", "three"}, summaries)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	freezeClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	created, err := Create(db, "draft", ptr("first pass"))
	require.NoError(t, err)

	freezeClock(t, time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))

	testCases := []struct {
		name                string
		id                  int64
		changes             Changes
		expectedError       error
		expectedSummary     string
		expectedDescription *string
	}{
		{name: "unknown id", id: 99, expectedError: ErrTodoNotFound},
		{name: "empty summary", id: created.ID, changes: Changes{Summary: ptr("")}, expectedError: ErrSummaryEmpty},
		{
			name:                "summary only",
			id:                  created.ID,
			changes:             Changes{Summary: ptr("final")},
			expectedSummary:     "final",
			expectedDescription: ptr("first pass"),
		},
		{
			name:            "clear description",
			id:              created.ID,
			changes:         Changes{Description: ptr("")},
			expectedSummary: "final",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			todo, err := Update(db, tc.id, tc.changes)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)

			stored, err := Get(db, tc.id)
			require.NoError(t, err)
			assert.Equal(t, todo, stored)
			assert.Equal(t, tc.expectedSummary, stored.Summary)
			assert.Equal(t, tc.expectedDescription, stored.Description)
			assert.Equal(t, "2026-03-01T12:00:00Z", stored.Created)
			assert.Equal(t, "2026-03-02T08:30:00Z", stored.Modified)
		})
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	todo, err := Create(db, "temporary", nil)
	require.NoError(t, err)

	require.ErrorIs(t, Delete(nil, todo.ID), ErrDBNil)
	require.NoError(t, Delete(db, todo.ID))
	require.ErrorIs(t, Delete(db, todo.ID), ErrTodoNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Todo{}).Count(&count).Error)
	assert.Zero(t, count)
}
