package gorm_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	gormadapter "github.com/seldo/seldo/internal/logger/adapter/gorm"
)

func TestTrace(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	testCases := []struct {
		name     string
		level    gormlogger.LogLevel
		err      error
		elapsed  time.Duration
		contains string
		empty    bool
	}{
		{name: "silent", level: gormlogger.Silent, empty: true},
		{name: "statement traced", level: gormlogger.Info, contains: `"level":"trace"`},
		{name: "error", level: gormlogger.Error, err: errors.New("boom"), contains: `"error":"boom"`},
		{name: "record not found is quiet", level: gormlogger.Error, err: gorm.ErrRecordNotFound, empty: true},
		{name: "slow", level: gormlogger.Warn, elapsed: time.Second, contains: `"level":"warn"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			l := gormadapter.New(zerolog.New(&buf)).LogMode(tc.level)
			l.Trace(context.Background(), time.Now().Add(-tc.elapsed), func() (string, int64) {
				return "SELECT 1", 1
			}, tc.err)

			if tc.empty {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), tc.contains)
			assert.Contains(t, buf.String(), "SELECT 1")
		})
	}
}

func TestLevels(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer

	l := gormadapter.New(zerolog.New(&buf)).LogMode(gormlogger.Warn)
	l.Info(context.Background(), "hidden %d", 1)
	l.Warn(context.Background(), "shown %d", 2)
	l.Error(context.Background(), "shown %d", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "shown 3")
}
