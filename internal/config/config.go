// Package config loads runtime configuration for the marchsim binary.
// Everything has a sensible default so the binary runs with no file at
// all; a YAML file overrides the parts it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           int     `yaml:"port"`
	TicksPerSecond float64 `yaml:"ticks_per_second"`
	Seed           int64   `yaml:"seed"`
	DBPath         string  `yaml:"db_path"`
	ReportEvery    uint64  `yaml:"report_every"`

	Players []PlayerConfig `yaml:"players"`
	World   WorldConfig    `yaml:"world"`
}

type PlayerConfig struct {
	ID             string  `yaml:"id"`
	AI             bool    `yaml:"ai"`
	Aggressiveness float64 `yaml:"aggressiveness"`
}

type WorldConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	NeutralVillages int     `yaml:"neutral_villages"`
	Deposits        int     `yaml:"deposits"`
}

func Default() Config {
	return Config{
		Port:           8080,
		TicksPerSecond: 4,
		Seed:           42,
		DBPath:         "data/marchlands.db",
		ReportEvery:    200,
		Players: []PlayerConfig{
			{ID: "player-1", AI: false, Aggressiveness: 0.3},
			{ID: "player-2", AI: true, Aggressiveness: 0.7},
		},
		World: WorldConfig{
			Width:           2000,
			Height:          2000,
			NeutralVillages: 4,
			Deposits:        24,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second must be positive, got %v", c.TicksPerSecond)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("need at least two players, got %d", len(c.Players))
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.ID == "" {
			return fmt.Errorf("player with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Aggressiveness < 0 || p.Aggressiveness > 1 {
			return fmt.Errorf("player %s: aggressiveness must be in [0,1]", p.ID)
		}
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world dimensions must be positive")
	}
	return nil
}
