package config

import (
	"errors"
	"fmt"
	"os"

	"ctchen222/tictactoe-engine/internal/validator"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat string    `yaml:"log-format" env:"TTT_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	Mode      string    `yaml:"mode" env:"TTT_MODE" env-default:"opponent" validate:"gamemode"`
	Dialect   string    `yaml:"dialect" env:"TTT_DIALECT" env-default:"text" validate:"oneof=text json"`
	NoColor   bool      `yaml:"no-color" env:"TTT_NO_COLOR"`
	Seed      uint64    `yaml:"seed" env:"TTT_SEED" env-default:"0"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Telemetry struct {
	ServiceName  string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe" validate:"required"`
	OTLPEndpoint string `yaml:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	StdoutTraces bool   `yaml:"stdout-traces" env:"TTT_STDOUT_TRACES" env-default:"false"`
}

// Load reads path when it exists and the environment otherwise. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	conf := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, conf); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return conf, validate(conf)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("unable to load config from env: %w", err)
	}
	return conf, validate(conf)
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}
	return conf
}

func validate(conf *Config) error {
	if err := validator.GetValidator().Struct(conf); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
