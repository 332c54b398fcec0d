package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	BoardSize int `env:"BOARD_SIZE" envDefault:"8"`

	// TurnDuration counts clock ticks, not wall seconds: with the
	// default 1s tick a turn lasts 15 seconds.
	TurnDuration  int           `env:"TURN_DURATION" envDefault:"15"`
	ClockTick     time.Duration `env:"CLOCK_TICK" envDefault:"1s"`
	ForcedCapture bool          `env:"FORCED_CAPTURE" envDefault:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no environment is set.
// Handy for tests and the local CLI.
func Default() Config {
	return Config{
		HTTPAddr:     ":3000",
		LogLevel:     "info",
		BoardSize:    8,
		TurnDuration: 15,
		ClockTick:    time.Second,
	}
}
