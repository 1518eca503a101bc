// Package dsn builds the SQLite data source name from the configuration.
package dsn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/seldo/seldo/internal/config"
)

// Create builds the SQLite DSN for the configured database file. Foreign
// keys and the busy timeout are always set; the journal mode only when
// configured and the database is file backed.
func Create(cfg *config.Store) string {
	path := cfg.DatabaseFile()
	base, rawQuery, _ := strings.Cut(path, "?")

	query, _ := url.ParseQuery(rawQuery)

	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.SQLiteBusyTimeout()))
	query.Add("_pragma", "foreign_keys(1)")

	if mode := normalizeJournalMode(cfg.SQLiteJournalMode()); mode != "" && !IsMemory(path) {
		query.Add("_pragma", fmt.Sprintf("journal_mode(%s)", mode))
	}

	return base + "?" + query.Encode()
}

// IsMemory reports whether path selects a non-persistent database.
func IsMemory(path string) bool {
	return path == config.MemoryDatabase ||
		strings.HasPrefix(path, "file::memory:") ||
		strings.Contains(path, "mode=memory")
}

// normalizeJournalMode returns an accepted uppercase journal mode or "".
func normalizeJournalMode(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	switch value {
	case "WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "OFF":
		return value
	default:
		return ""
	}
}
