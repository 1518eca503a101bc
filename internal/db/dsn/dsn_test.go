package dsn

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seldo/seldo/internal/config"
)

func pragmas(t *testing.T, dsn string) (string, []string) {
	t.Helper()

	base, raw, ok := strings.Cut(dsn, "?")
	require.True(t, ok)

	q, err := url.ParseQuery(raw)
	require.NoError(t, err)

	return base, q["_pragma"]
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name        string
		file        string
		journal     string
		wantBase    string
		wantPragmas []string
	}{
		{
			name:        "default file",
			wantBase:    "seldo.db",
			wantPragmas: []string{"busy_timeout(5000)", "foreign_keys(1)"},
		},
		{
			name:        "wal on file",
			file:        "/data/todo.db",
			journal:     "wal",
			wantBase:    "/data/todo.db",
			wantPragmas: []string{"busy_timeout(5000)", "foreign_keys(1)", "journal_mode(WAL)"},
		},
		{
			name:        "no wal in memory",
			file:        ":memory:",
			journal:     "wal",
			wantBase:    ":memory:",
			wantPragmas: []string{"busy_timeout(5000)", "foreign_keys(1)"},
		},
		{
			name:        "no wal with mode=memory",
			file:        "file:x.db?mode=memory",
			journal:     "wal",
			wantBase:    "file:x.db",
			wantPragmas: []string{"busy_timeout(5000)", "foreign_keys(1)"},
		},
		{
			name:        "unknown journal mode ignored",
			file:        "x.db",
			journal:     "fast",
			wantBase:    "x.db",
			wantPragmas: []string{"busy_timeout(5000)", "foreign_keys(1)"},
		},
		{
			name:        "existing query kept",
			file:        "x.db?_txlock=immediate",
			wantBase:    "x.db",
			wantPragmas: []string{"busy_timeout(5000)", "foreign_keys(1)"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewIsolated()
			if tc.file != "" {
				cfg.Set(config.KeyDatabaseFile, tc.file)
			}

			if tc.journal != "" {
				cfg.Set(config.KeySQLiteJournal, tc.journal)
			}

			got := Create(cfg)
			base, prag := pragmas(t, got)
			assert.Equal(t, tc.wantBase, base)
			assert.Equal(t, tc.wantPragmas, prag)
		})
	}

	cfg := config.NewIsolated()
	cfg.Set(config.KeyDatabaseFile, "x.db?_txlock=immediate")
	assert.Contains(t, Create(cfg), "_txlock=immediate")
}

func TestIsMemory(t *testing.T) {
	assert.True(t, IsMemory(":memory:"))
	assert.True(t, IsMemory("file::memory:?cache=shared"))
	assert.True(t, IsMemory("file:test.db?mode=memory"))
	assert.False(t, IsMemory("seldo.db"))
}
