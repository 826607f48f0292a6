package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jentrix/cityscout/internal/logger"
)

type AppConfig struct {
	DatabaseURL string

	GeocodeAPIKey   string
	WeatherAPIKey   string
	EventbriteToken string
	MovieAPIKey     string
	YelpAPIKey      string

	// HTTPTimeout applies to all outbound provider calls.
	HTTPTimeout time.Duration

	// WeatherStaleAfter is the age past which cached weather rows are
	// discarded and refetched.
	WeatherStaleAfter time.Duration

	// SweepInterval controls the background stale-weather sweeper.
	// Zero disables it.
	SweepInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.GetLogger("config").Infof("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.GeocodeAPIKey = os.Getenv("GEOCODE_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	cfg.EventbriteToken = os.Getenv("EVENTBRITE_TOKEN")
	cfg.MovieAPIKey = os.Getenv("MOVIE_API_KEY")
	cfg.YelpAPIKey = os.Getenv("YELP_API_KEY")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	staleAfter, err := getenvDuration("WEATHER_STALE_AFTER", "15s")
	if err != nil {
		return nil, err
	}
	cfg.WeatherStaleAfter = staleAfter

	sweep, err := getenvDuration("SWEEP_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval = sweep

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
