// Package main provides the entry point of seldo, a small personal task
// tracker. It keeps tags and todo items in a local SQLite database, applies
// schema migrations on start and reads its settings from defaults, an
// optional config file, SELDO_* environment variables and command line flags.
package main
