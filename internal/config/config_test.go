package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("database-file", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse(args))

	return fs
}

var testFlagKeys = map[string]string{ //nolint:gochecknoglobals
	"database-file": KeyDatabaseFile,
	"log-level":     KeyLogLevel,
}

func TestLoadDefaultsOnly(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := NewIsolated()
	require.NoError(t, cfg.Load(LoadOptions{}))

	assert.Equal(t, DefaultDatabaseFile, cfg.DatabaseFile())
	require.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "seldo.toml", `
database_file = "from-file.db"
log_level = "info"
log_file_path = "/var/log/seldo"
`)

	testCases := []struct {
		name      string
		json      string
		env       string
		args      []string
		wantDB    string
		wantLevel string
	}{
		{
			name:      "file",
			wantDB:    "from-file.db",
			wantLevel: "info",
		},
		{
			name:      "json over file",
			json:      `{"database_file":"from-json.db"}`,
			wantDB:    "from-json.db",
			wantLevel: "info",
		},
		{
			name:      "env over json",
			json:      `{"database_file":"from-json.db"}`,
			env:       "from-env.db",
			wantDB:    "from-env.db",
			wantLevel: "info",
		},
		{
			name:      "changed flag over env",
			env:       "from-env.db",
			args:      []string{"--database-file", "from-flag.db", "--log-level", "error"},
			wantDB:    "from-flag.db",
			wantLevel: "error",
		},
		{
			name:      "unchanged flag keeps env",
			env:       "from-env.db",
			args:      []string{},
			wantDB:    "from-env.db",
			wantLevel: "info",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvConfigJSON, tc.json)
			t.Setenv("SELDO_DATABASE_FILE", tc.env)

			cfg := NewIsolated()
			require.NoError(t, cfg.Load(LoadOptions{
				ConfigFile: path,
				Flags:      testFlags(t, tc.args...),
				FlagKeys:   testFlagKeys,
			}))

			assert.Equal(t, tc.wantDB, cfg.DatabaseFile())
			assert.Equal(t, tc.wantLevel, cfg.Log().LogLevel)
			assert.Equal(t, "/var/log/seldo", cfg.Log().File.Path)
		})
	}
}

func TestLoadPersistsUntilReset(t *testing.T) {
	path := writeConfig(t, "seldo.yaml", "database_file: layered.db\n")

	cfg := NewIsolated()
	require.NoError(t, cfg.Load(LoadOptions{ConfigFile: path}))
	assert.Equal(t, "layered.db", cfg.DatabaseFile())

	cfg.Reset()
	assert.Equal(t, DefaultDatabaseFile, cfg.DatabaseFile())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		err := NewIsolated().Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
		assert.Error(t, err)
	})

	t.Run("broken json override", func(t *testing.T) {
		t.Setenv(EnvConfigJSON, "{not json")

		err := NewIsolated().Load(LoadOptions{ConfigFile: writeConfig(t, "seldo.toml", "")})
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		set     map[string]any
		wantErr error
	}{
		{name: "defaults are valid"},
		{name: "empty database file", set: map[string]any{KeyDatabaseFile: "  "}, wantErr: ErrEmptyDatabaseFile},
		{name: "database file not a string", set: map[string]any{KeyDatabaseFile: 12}, wantErr: ErrNotAString},
		{name: "bad log level", set: map[string]any{KeyLogLevel: "shouting"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewIsolated()
			for k, v := range tc.set {
				cfg.Set(k, v)
			}

			err := cfg.Validate()

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.set != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}

	cfg := NewIsolated()
	require.NoError(t, cfg.Delete(KeyDatabaseFile))
	assert.ErrorIs(t, cfg.Validate(), ErrKeyNotFound)
}

func TestDumpConfig(t *testing.T) {
	cfg := NewIsolated()
	cfg.Set("title", "Test")

	tomlStr, err := DumpConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, tomlStr, `database_file = "seldo.db"`)
	assert.True(t, strings.Contains(tomlStr, "Test"))

	jsonStr, err := DumpConfigJSON(cfg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &decoded))
	assert.Equal(t, "Test", decoded["title"])

	yamlStr, err := DumpConfigYAML(cfg)
	require.NoError(t, err)

	decoded = nil
	require.NoError(t, yaml.Unmarshal([]byte(yamlStr), &decoded))
	assert.Equal(t, "seldo.db", decoded[KeyDatabaseFile])
}
