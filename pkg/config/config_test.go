package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

func TestParse_YAMLAndJSON(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Config
	}{
		{
			name: "yaml",
			file: "config.yaml",
			want: Config{
				Recovery:  "silent",
				Log:       Log{Level: "debug", Format: "json"},
				Templates: Templates{Dir: "./templates", Extension: ".html"},
			},
		},
		{
			name: "json keeps unset defaults",
			file: "config.json",
			want: Config{
				Recovery:  "propagate",
				Log:       Log{Level: "warn", Format: "text"},
				Templates: Templates{Dir: ".", Extension: ".html"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvRecovery, "")
			t.Setenv(EnvLogLevel, "")
			t.Setenv(EnvLogFormat, "")
			t.Setenv(EnvTemplates, "")

			cfg, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "invalid.yaml")); err == nil {
		t.Fatalf("expected invalid document to fail")
	}
	cfg := Default()
	if err := Parse([]byte("  \n"), "inline", &cfg); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty document error, got %v", err)
	}
}

func TestApplyEnv_FromDotEnv(t *testing.T) {
	values, err := ReadEnv(filepath.Join("testdata", "test.env"))
	if err != nil {
		t.Fatalf("read env: %v", err)
	}

	cfg := Default()
	cfg.ApplyEnv(MapLookup(values))

	if cfg.RecoveryPolicy() != viewhelper.Propagate {
		t.Fatalf("expected propagate policy, got %s", cfg.RecoveryPolicy())
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadEnv_IgnoresMissingFiles(t *testing.T) {
	if err := LoadEnv(filepath.Join("testdata", "missing.env")); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Recovery = "explode"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, fragment := range []string{"explode", "loud", "xml"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %v", fragment, err)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Log = Log{Level: "warn", Format: "json"}

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "helper", "link")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"helper":"link"`) {
		t.Fatalf("expected json record, got %s", out)
	}
}

func TestRegistryOptions(t *testing.T) {
	cfg := Default()
	cfg.Recovery = "silent"

	reg := viewhelper.NewRegistry(cfg.RegistryOptions(&bytes.Buffer{})...)
	if reg.RecoveryPolicy() != viewhelper.RecoverSilently {
		t.Fatalf("expected silent policy, got %s", reg.RecoveryPolicy())
	}
}
