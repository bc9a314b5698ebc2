package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	defaultFileName = "config.yml"
	xdgFileName     = "tictactoe/config.yml"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Session  Session `yaml:"session"`
	Redis    Redis   `yaml:"redis"`
}

type Session struct {
	Store string        `yaml:"store" env:"SESSION_STORE" env-default:"memory"`
	TTL   time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load - reads the yml file at path with env overrides. An empty path reads env only.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ResolvePath - the explicit path if given, else ./config.yml, else the XDG config file.
// Returns "" when none exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if baseDir, err := os.Getwd(); err == nil {
		local := filepath.Join(baseDir, defaultFileName)
		if _, err = os.Stat(local); err == nil {
			return local
		}
	}

	if path, err := xdg.SearchConfigFile(xdgFileName); err == nil {
		return path
	}

	return ""
}

func (that *Config) Validate() error {
	switch that.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownStore, that.Session.Store)
	}

	if that.Session.TTL < 0 {
		return errors.New("session ttl must not be negative")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
