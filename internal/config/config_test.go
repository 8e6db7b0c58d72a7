package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := Default()
	if cfg.Port != def.Port || cfg.TicksPerSecond != def.TicksPerSecond {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Players) != 2 {
		t.Fatalf("default players = %d, want 2", len(cfg.Players))
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marchsim.yaml")
	data := []byte("port: 9999\nseed: 7\nplayers:\n  - id: alice\n    ai: false\n  - id: bob\n    ai: true\n    aggressiveness: 0.9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9999 || cfg.Seed != 7 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.TicksPerSecond != Default().TicksPerSecond {
		t.Fatalf("unset field lost its default")
	}
	if cfg.Players[1].ID != "bob" || !cfg.Players[1].AI || cfg.Players[1].Aggressiveness != 0.9 {
		t.Fatalf("players not parsed: %+v", cfg.Players)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"bad tps":       "ticks_per_second: -1\n",
		"bad port":      "port: 99999\n",
		"one player":    "players:\n  - id: alone\n",
		"dup player":    "players:\n  - id: a\n  - id: a\n",
		"bad trait":     "players:\n  - id: a\n    aggressiveness: 2\n  - id: b\n",
		"bad dimension": "world:\n  width: -10\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected a validation error", name)
		}
	}
}
