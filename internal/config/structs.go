package config

import (
	"github.com/spf13/cast"

	"github.com/seldo/seldo/internal/logger"
)

// Recognised keys.
const (
	KeyDatabaseFile      = "database_file"
	KeySQLiteBusyTimeout = "sqlite_busy_timeout"
	KeySQLiteJournal     = "sqlite_journal_mode"

	KeyLogLevel         = "log_level"
	KeyLogConsole       = "log_console"
	KeyLogConsoleWriter = "log_console_writer"
	KeyLogFileEnabled   = "log_file_enabled"
	KeyLogFilePath      = "log_file_path"
	KeyLogReportCaller  = "log_report_caller"
)

const (
	// AppName names the application in logs and metrics.
	AppName = "seldo"

	// DefaultDatabaseFile is the database used when nothing overrides it.
	DefaultDatabaseFile = "seldo.db"

	// MemoryDatabase selects a non-persistent in-process database.
	MemoryDatabase = ":memory:"

	defaultLogLevel    = "warn"
	defaultLogPath     = "./log"
	defaultBusyTimeout = 5000 // milliseconds
)

// defaults is the fixed set a store is populated from on construction and reset.
func defaults() map[string]any {
	return map[string]any{
		KeyDatabaseFile: DefaultDatabaseFile,
	}
}

// knownKeys are bound to the environment when loading.
var knownKeys = []string{ //nolint:gochecknoglobals
	KeyDatabaseFile,
	KeySQLiteBusyTimeout,
	KeySQLiteJournal,
	KeyLogLevel,
	KeyLogConsole,
	KeyLogConsoleWriter,
	KeyLogFileEnabled,
	KeyLogFilePath,
	KeyLogReportCaller,
}

// Log builds the logger configuration from the log_* keys.
func (s *Store) Log() logger.Log {
	return logger.Log{
		LogLevel:     s.stringOr(KeyLogLevel, defaultLogLevel),
		ReportCaller: s.boolOr(KeyLogReportCaller, false),
		AppName:      AppName,
		ServiceName:  AppName,
		Console: logger.Console{
			Enabled:          s.boolOr(KeyLogConsole, true),
			UseConsoleWriter: s.boolOr(KeyLogConsoleWriter, true),
		},
		File: logger.LogFile{
			Enabled:  s.boolOr(KeyLogFileEnabled, false),
			Path:     s.stringOr(KeyLogFilePath, defaultLogPath),
			ErrorLog: "error.log",
			InfoLog:  "info.log",
			TraceLog: "trace.log",
			WarnLog:  "warn.log",
		},
	}
}

// SQLiteBusyTimeout returns the busy timeout in milliseconds.
func (s *Store) SQLiteBusyTimeout() int {
	v, err := s.Get(KeySQLiteBusyTimeout)
	if err != nil {
		return defaultBusyTimeout
	}

	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return defaultBusyTimeout
	}

	return n
}

// SQLiteJournalMode returns the configured journal mode, empty for the engine default.
func (s *Store) SQLiteJournalMode() string {
	return s.stringOr(KeySQLiteJournal, "")
}

func (s *Store) stringOr(key, fallback string) string {
	v, err := s.Get(key)
	if err != nil {
		return fallback
	}

	str, err := cast.ToStringE(v)
	if err != nil || str == "" {
		return fallback
	}

	return str
}

func (s *Store) boolOr(key string, fallback bool) bool {
	v, err := s.Get(key)
	if err != nil {
		return fallback
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback
	}

	return b
}
