package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/seldo/seldo/internal/db/models"
)

const showTimeFormat = "2006-01-02 15:04"

//nolint:gochecknoglobals
var (
	idColor    = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed, color.Bold)
	dimColor   = color.New(color.Faint)
	titleColor = color.New(color.FgYellow, color.Bold)
)

func printError(w io.Writer, err error) {
	_, _ = errColor.Fprint(w, "error: ")
	_, _ = fmt.Fprintln(w, err)
}

func printOK(w io.Writer, format string, a ...any) {
	_, _ = okColor.Fprintf(w, format+"\n", a...)
}

func printTag(w io.Writer, t models.Tag) {
	_, _ = idColor.Fprintf(w, "%4d", t.ID)
	_, _ = fmt.Fprintf(w, "  %s\n", t.Name)
}

func printTodoLine(w io.Writer, t models.Todo) {
	_, _ = idColor.Fprintf(w, "%4d", t.ID)
	_, _ = fmt.Fprintf(w, "  %s  ", t.Summary)
	_, _ = dimColor.Fprintln(w, t.Modified)
}

func printTodo(w io.Writer, t *models.Todo) {
	_, _ = titleColor.Fprintf(w, "#%d %s\n", t.ID, t.Summary)

	if t.Description != nil {
		_, _ = fmt.Fprintf(w, "%s\n", *t.Description)
	}

	created, modified := t.Created, t.Modified

	if ts, err := t.CreatedAt(); err == nil {
		created = ts.Local().Format(showTimeFormat)
	}

	if ts, err := t.ModifiedAt(); err == nil {
		modified = ts.Local().Format(showTimeFormat)
	}

	_, _ = dimColor.Fprintf(w, "created  %s\nmodified %s\n", created, modified)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", s)
	}

	return id, nil
}
