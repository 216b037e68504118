package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

type Config struct {
	LogLevel    string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string    `yaml:"log-format" env:"LOG_FORMAT" env-default:"text"`
	HTTPPort    string    `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	EngineFirst bool      `yaml:"engine-first" env:"ENGINE_FIRST"`
	Telemetry   Telemetry `yaml:"telemetry"`
}

type Telemetry struct {
	Exporter       string `yaml:"exporter" env:"OTEL_EXPORTER" env-default:"none"`
	Endpoint       string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
	ServiceName    string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tictactoe-minimax"`
	ServiceVersion string `yaml:"service-version" env:"SERVICE_VERSION" env-default:"v0.1.0"`
}

// Load reads the YAML file at path, when given, and applies environment
// overrides on top. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations, panicking on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) validate() error {
	switch that.Telemetry.Exporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		return fmt.Errorf("unknown telemetry exporter %q", that.Telemetry.Exporter)
	}

	switch that.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", that.LogFormat)
	}

	return nil
}

// Level maps the configured log level onto slog, defaulting to info.
func (that *Config) Level() slog.Level {
	switch strings.ToLower(that.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (that *Config) HTTPAddr() string {
	return ":" + that.HTTPPort
}
