package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModePlay  = "play"
	ModeBench = "bench"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode     string `yaml:"mode" env:"MODE" env-default:"play"`
	Game     Game   `yaml:"game"`
	Engine   Engine `yaml:"engine"`
	Cache    Cache  `yaml:"cache"`
	Redis    Redis  `yaml:"redis"`
}

type Game struct {
	HumanMark string `yaml:"human-mark" env:"HUMAN_MARK" env-default:"X"`
	Opponent  string `yaml:"opponent" env:"OPPONENT" env-default:"best"`
	Seed      int64  `yaml:"seed" env:"SEED" env-default:"0"`
}

type Engine struct {
	Algorithm string `yaml:"algorithm" env:"ENGINE_ALGORITHM" env-default:"alphabeta"`
	Parallel  bool   `yaml:"parallel" env:"ENGINE_PARALLEL" env-default:"false"`
}

type Cache struct {
	Backend string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
	TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"0s"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModePlay, ModeBench:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, that.Mode)
	}

	switch that.Game.HumanMark {
	case "X", "O":
	default:
		return fmt.Errorf("%w: human mark must be X or O, got %q", ErrInvalidConfig, that.Game.HumanMark)
	}

	switch that.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, that.Cache.Backend)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
