package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/keshon/jukebox/internal/music/player"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken      string  `env:"DISCORD_TOKEN"`
	StoragePath       string  `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CommandPrefix     string  `env:"COMMAND_PREFIX" envDefault:"!"`
	DefaultVolume     int     `env:"DEFAULT_VOLUME" envDefault:"100"`
	ShufflePinCurrent bool    `env:"SHUFFLE_PIN_CURRENT" envDefault:"false"`
	EventBuffer       int     `env:"EVENT_BUFFER" envDefault:"32"`
	SearchRate        float64 `env:"SEARCH_RATE" envDefault:"2"`
	YouTubeProxy      string  `env:"YOUTUBE_PROXY"`
	LogFile           string  `env:"LOG_FILE"`

	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
}

// New reads the configuration from the environment.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.DefaultVolume < 0 || c.DefaultVolume > 100 {
		errs = append(errs, fmt.Errorf("DEFAULT_VOLUME must be between 0 and 100, got %d", c.DefaultVolume))
	}
	if c.CommandPrefix == "" {
		errs = append(errs, errors.New("COMMAND_PREFIX must not be empty"))
	}
	if c.SearchRate <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_RATE must be positive, got %v", c.SearchRate))
	}
	if c.EventBuffer <= 0 {
		errs = append(errs, fmt.Errorf("EVENT_BUFFER must be positive, got %d", c.EventBuffer))
	}
	return errors.Join(errs...)
}

// PlayerOptions maps the configuration onto session options.
func (c *Config) PlayerOptions() player.Options {
	return player.Options{
		DefaultVolume: c.DefaultVolume,
		PinCurrent:    c.ShufflePinCurrent,
		EventBuffer:   c.EventBuffer,
	}
}
