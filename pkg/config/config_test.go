package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "atlas")
	path := writeConfig(t, "name: ${SAMPLE_NAME}\nport: ${SAMPLE_PORT:-9090}\n")

	var cfg sample
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "atlas" || cfg.Port != 9090 {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadRunsValidator(t *testing.T) {
	path := writeConfig(t, "name: x\nport: 0\n")
	var cfg sample
	if err := Load(path, &cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "name: x\nport: 1\nextra: true\n")
	var cfg sample
	if err := Load(path, &cfg); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	fallback := writeConfig(t, "name: fallback\nport: 1\n")

	var cfg sample
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"), fallback, &cfg); err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.Name != "fallback" {
		t.Errorf("Name = %q", cfg.Name)
	}

	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"), "", &cfg); err == nil {
		t.Error("expected error without fallback")
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("EXPAND_SET", "v")
	t.Setenv("EXPAND_EMPTY", "")
	cases := map[string]string{
		"${EXPAND_SET}":          "v",
		"${EXPAND_SET:-d}":       "v",
		"${EXPAND_EMPTY:-d}":     "d",
		"${EXPAND_UNSET_XYZ}":    "",
		"${EXPAND_UNSET_XYZ:-d}": "d",
		"plain":                  "plain",
	}
	for in, want := range cases {
		if got := Expand(in); got != want {
			t.Errorf("Expand(%q) = %q, want %q", in, got, want)
		}
	}
}
