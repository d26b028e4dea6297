package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Default API endpoints. All of them are plain GET endpoints with query
// parameters, no authentication.
const (
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	DefaultGeocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultGOESImageURL  = "https://cdn.star.nesdis.noaa.gov/GOES16/ABI/CONUS/GEOCOLOR/latest.jpg"
)

// Config holds everything the bot needs at runtime. It is built once at
// startup and passed into components explicitly; nothing reads it from
// ambient global state.
type Config struct {
	// Mattermost connection.
	ServerURL string
	BotToken  string
	Username  string
	Password  string

	// External API endpoints, overridable for testing.
	ForecastURL   string
	AirQualityURL string
	GeocodingURL  string
	GOESImageURL  string

	// DataTimeout bounds geocoding/weather/air-quality requests,
	// ImageTimeout bounds the satellite image fetch.
	DataTimeout  time.Duration
	ImageTimeout time.Duration

	Debug bool
}

// Load reads configuration from the environment (WEATHERBOT_ prefix) and an
// optional config file, applying defaults for everything non-secret.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("weatherbot")
	v.AutomaticEnv()

	v.SetDefault("forecast_url", DefaultForecastURL)
	v.SetDefault("air_quality_url", DefaultAirQualityURL)
	v.SetDefault("geocoding_url", DefaultGeocodingURL)
	v.SetDefault("goes_image_url", DefaultGOESImageURL)
	v.SetDefault("data_timeout", "10s")
	v.SetDefault("image_timeout", "20s")
	v.SetDefault("debug", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{
		ServerURL:     v.GetString("server_url"),
		BotToken:      v.GetString("bot_token"),
		Username:      v.GetString("username"),
		Password:      v.GetString("password"),
		ForecastURL:   v.GetString("forecast_url"),
		AirQualityURL: v.GetString("air_quality_url"),
		GeocodingURL:  v.GetString("geocoding_url"),
		GOESImageURL:  v.GetString("goes_image_url"),
		DataTimeout:   v.GetDuration("data_timeout"),
		ImageTimeout:  v.GetDuration("image_timeout"),
		Debug:         v.GetBool("debug"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parts of the configuration that have no usable default.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server_url is required (WEATHERBOT_SERVER_URL)")
	}
	if c.BotToken == "" && (c.Username == "" || c.Password == "") {
		return errors.New("either bot_token or username/password is required")
	}
	if c.DataTimeout <= 0 {
		return errors.New("data_timeout must be positive")
	}
	if c.ImageTimeout <= 0 {
		return errors.New("image_timeout must be positive")
	}
	return nil
}
