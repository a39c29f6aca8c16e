// Package config loads renderer configuration from JSON or YAML files, a
// .env file and VIEWHELPER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvRecovery  = "VIEWHELPER_RECOVERY"
	EnvLogLevel  = "VIEWHELPER_LOG_LEVEL"
	EnvLogFormat = "VIEWHELPER_LOG_FORMAT"
	EnvTemplates = "VIEWHELPER_TEMPLATES_DIR"
)

// Config holds renderer settings.
type Config struct {
	// Recovery is one of "message", "silent" or "propagate".
	Recovery  string    `json:"recovery" yaml:"recovery"`
	Log       Log       `json:"log" yaml:"log"`
	Templates Templates `json:"templates" yaml:"templates"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Templates configures where templates are looked up.
type Templates struct {
	Dir       string `json:"dir" yaml:"dir"`
	Extension string `json:"extension" yaml:"extension"`
}

// Default returns the configuration used when nothing is loaded.
func Default() Config {
	return Config{
		Recovery: viewhelper.RecoverWithMessage.String(),
		Log:      Log{Level: "info", Format: "text"},
		Templates: Templates{
			Dir:       ".",
			Extension: ".html",
		},
	}
}

// Load reads path on top of the defaults, then applies the environment.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(data, path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes JSON, falling back to YAML, into cfg. Fields missing from
// data keep their current values.
func Parse(data []byte, source string, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("config: file %s is empty", source)
	}

	jsonCfg := *cfg
	if err := json.Unmarshal(data, &jsonCfg); err == nil {
		*cfg = jsonCfg
		return nil
	}

	yamlCfg := *cfg
	if err := yaml.Unmarshal(data, &yamlCfg); err == nil {
		*cfg = yamlCfg
		return nil
	}

	return fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

// ApplyEnv overrides fields from environment variables looked up by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if v, ok := lookup(EnvRecovery); ok && strings.TrimSpace(v) != "" {
		c.Recovery = v
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && strings.TrimSpace(v) != "" {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvTemplates); ok && strings.TrimSpace(v) != "" {
		c.Templates.Dir = v
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if _, err := viewhelper.ParseRecoveryPolicy(c.Recovery); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// RecoveryPolicy returns the parsed recovery policy.
func (c Config) RecoveryPolicy() viewhelper.RecoveryPolicy {
	policy, _ := viewhelper.ParseRecoveryPolicy(c.Recovery)
	return policy
}

// Logger builds a slog logger writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(c.Log.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// RegistryOptions converts the configuration into registry options.
func (c Config) RegistryOptions(w io.Writer) []viewhelper.Option {
	return []viewhelper.Option{
		viewhelper.WithRecoveryPolicy(c.RecoveryPolicy()),
		viewhelper.WithLogger(c.Logger(w)),
	}
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(raw) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", raw)
	}
	return level, nil
}
