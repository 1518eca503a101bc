package logger

import "io"

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool `toml:"useConsoleWriter"`
}

// LogFile implements a file based logger split by level.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	ErrorLog string `toml:"error"`
	InfoLog  string `toml:"info"`
	TraceLog string `toml:"trace"`
	WarnLog  string `toml:"warn"`

	MaxSize    int `toml:"maxSize"`    // megabytes before rotation
	MaxBackups int `toml:"maxBackups"` // rotated files kept
	MaxAge     int `toml:"maxAge"`     // days
}

// Log implements the logger config.
type Log struct {
	LogLevel     string // trace, debug, info, warn, error.
	ReportCaller bool

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `toml:"file"`

	// Stdout and Stderr replace os.Stdout and os.Stderr for console output when set.
	Stdout io.Writer `toml:"-"`
	Stderr io.Writer `toml:"-"`
}
