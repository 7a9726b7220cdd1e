// Package config loads the battle simulator configuration from YAML with
// BATTLE_ prefixed environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// PathEnv names the variable overriding the config file path.
const PathEnv = "BATTLESIM_CONFIG"

// DefaultPath is used when PathEnv is unset.
const DefaultPath = "config/battlesim.yaml"

// Battle holds all configuration for battle simulation.
type Battle struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Seed     uint64 `yaml:"seed"      env:"SEED"`
	// MaxTurns ends a battle as a draw once reached. Zero disables it.
	MaxTurns int `yaml:"max_turns" env:"MAX_TURNS"`
	// AICanWin lets battles without a player battler run to the end.
	AICanWin  bool   `yaml:"ai_can_win" env:"AI_CAN_WIN"`
	Debug     bool   `yaml:"debug"      env:"DEBUG"`
	EventsDir string `yaml:"events_dir" env:"EVENTS_DIR"`
	// VsType is the number of active slots per bank.
	VsType int `yaml:"vs_type" env:"VS_TYPE"`

	Simulation SimulationConfig `yaml:"simulation" envPrefix:"SIMULATION_"`
	Database   DatabaseConfig   `yaml:"database"   envPrefix:"DATABASE_"`
}

// SimulationConfig controls the battlesim batch.
type SimulationConfig struct {
	Battles     int `yaml:"battles"     env:"BATTLES"`
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"ENABLED"`
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname"   env:"DBNAME"`
	SSLMode  string `yaml:"sslmode"  env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultBattle returns Battle config with sensible defaults.
func DefaultBattle() Battle {
	return Battle{
		LogLevel:  "info",
		Seed:      1,
		MaxTurns:  200,
		AICanWin:  true,
		EventsDir: "data/battle_events",
		VsType:    1,
		Simulation: SimulationConfig{
			Battles:     16,
			Concurrency: 4,
		},
		Database: DatabaseConfig{
			Host:    "127.0.0.1",
			Port:    5432,
			User:    "battlecore",
			DBName:  "battlecore",
			SSLMode: "disable",
		},
	}
}

// Path returns the config path from PathEnv or DefaultPath.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// LoadBattle reads Battle config from a YAML file and applies environment
// overrides. If the file doesn't exist, overrides apply to the defaults.
func LoadBattle(path string) (Battle, error) {
	cfg := DefaultBattle()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "BATTLE_"}); err != nil {
		return cfg, fmt.Errorf("applying env to config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Battle) validate() error {
	if c.VsType < 1 || c.VsType > 3 {
		return fmt.Errorf("vs_type must be between 1 and 3, got %d", c.VsType)
	}
	if c.Simulation.Concurrency < 1 {
		return fmt.Errorf("simulation.concurrency must be positive, got %d", c.Simulation.Concurrency)
	}
	if c.Simulation.Battles < 0 {
		return fmt.Errorf("simulation.battles must not be negative, got %d", c.Simulation.Battles)
	}
	return nil
}
