package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	JWT    JWTConfig    `yaml:"jwt"`
	Redis  RedisConfig  `yaml:"redis"`
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GameConfig holds the default puzzle parameters for new games and the
// limits the server accepts from clients.
type GameConfig struct {
	Rows                int     `yaml:"rows"`
	Cols                int     `yaml:"cols"`
	ChanceLightStartsOn float64 `yaml:"chance_light_starts_on"`
	MaxRows             int     `yaml:"max_rows"`
	MaxCols             int     `yaml:"max_cols"`
}

// JWTConfig holds token authentication settings. An empty secret
// disables authentication and admits players as guests.
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
	StatsPrefix     string `yaml:"stats_prefix"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Defaults are filled in before parsing so that an explicit zero in
	// the file (e.g. chance_light_starts_on: 0) survives.
	cfg := Config{
		Game: GameConfig{
			Rows:                5,
			Cols:                5,
			ChanceLightStartsOn: 0.25,
			MaxRows:             20,
			MaxCols:             20,
		},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.StatsPrefix == "" {
		cfg.Redis.StatsPrefix = "lightsout:stats:"
	}

	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the game parameters against the engine's
// preconditions and the server's accepted limits.
func (g GameConfig) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", g.Rows, g.Cols)
	}
	if g.MaxRows <= 0 || g.MaxCols <= 0 {
		return fmt.Errorf("board limits must be positive, got %dx%d", g.MaxRows, g.MaxCols)
	}
	if g.Rows > g.MaxRows || g.Cols > g.MaxCols {
		return fmt.Errorf("default dimensions %dx%d exceed limits %dx%d", g.Rows, g.Cols, g.MaxRows, g.MaxCols)
	}
	if g.ChanceLightStartsOn < 0 || g.ChanceLightStartsOn > 1 {
		return fmt.Errorf("chance_light_starts_on %v outside [0,1]", g.ChanceLightStartsOn)
	}
	return nil
}
