// Package config merges defaults, config file, environment and command line
// into one process-wide configuration mapping.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SELDO_DATABASE_FILE.
	EnvPrefix = "SELDO"

	// EnvConfigJSON holds a JSON object merged over the config file.
	EnvConfigJSON = "SELDO_CONFIG_JSON"

	configName = "seldo"
)

// LoadOptions selects the layers merged by Load.
type LoadOptions struct {
	// ConfigFile is an explicit config file. When empty seldo.{toml,yaml,json}
	// is searched for and may be absent.
	ConfigFile string

	// Flags are the parsed command line flags. Only changed flags override.
	Flags *pflag.FlagSet

	// FlagKeys maps flag names to configuration keys.
	FlagKeys map[string]string
}

// Load merges, lowest precedence first: defaults, config file, the JSON
// object in SELDO_CONFIG_JSON, SELDO_* environment variables and changed
// command line flags. The result is written over the current mapping and
// persists until Reset.
func (s *Store) Load(opts LoadOptions) error {
	v := viper.New()

	for k, val := range defaults() {
		v.SetDefault(k, val)
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return err
	}

	if js := os.Getenv(EnvConfigJSON); js != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(js)); err != nil {
			return errors.Wrapf(err, "failed to read %s", EnvConfigJSON)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, k := range knownKeys {
		if err := v.BindEnv(k); err != nil {
			return errors.Wrapf(err, "failed to bind env for %s", k)
		}
	}

	if opts.Flags != nil {
		for name, key := range opts.FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}

			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "failed to bind flag %s", name)
			}
		}
	}

	merged := v.AllSettings()

	s.st.mu.Lock()
	for k, val := range merged {
		s.st.values[k] = val
	}
	s.st.mu.Unlock()

	log.Debug().Str("file", v.ConfigFileUsed()).Int("keys", len(merged)).Msg("configuration loaded")

	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", path)
		}

		return nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")

	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configName))
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return errors.Wrap(err, "failed to read config file")
	}

	return nil
}

// Validate checks the settings the rest of the program depends on.
func (s *Store) Validate() error {
	invalidErrMessage := "invalid config"

	f, err := s.GetString(KeyDatabaseFile)
	if err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if strings.TrimSpace(f) == "" {
		return errors.Wrap(ErrEmptyDatabaseFile, invalidErrMessage)
	}

	if _, err := zerolog.ParseLevel(s.stringOr(KeyLogLevel, defaultLogLevel)); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}

// DumpConfig returns the mapping as a TOML string.
func DumpConfig(s *Store) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(s.All()); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON returns the mapping as an indented JSON string.
func DumpConfigJSON(s *Store) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(s.All()); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigYAML returns the mapping as a YAML string.
func DumpConfigYAML(s *Store) (string, error) {
	out, err := yaml.Marshal(s.All())
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
}
