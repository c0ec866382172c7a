package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Geocode   GeocodeConfig
	RateLimit RateLimitConfig
	Data      DataConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DatabaseConfig describes the read-only DuckDB crash dataset.
type DatabaseConfig struct {
	Path            string
	ExtensionDir    string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeocodeConfig configures the Mapbox forward-geocoding proxy.
type GeocodeConfig struct {
	AccessToken    string
	BaseURL        string
	Country        string
	Proximity      string
	BBox           string
	ResultLimit    int
	RequestTimeout time.Duration
	DailyLimit     int
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type DataConfig struct {
	MetaPath string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment-only configuration is fine in containers
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Path:            viper.GetString("DUCKDB_PATH"),
			ExtensionDir:    viper.GetString("DUCKDB_EXTENSION_DIR"),
			MaxConns:        viper.GetInt("DUCKDB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DUCKDB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DUCKDB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DUCKDB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Geocode: GeocodeConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			Country:        viper.GetString("GEOCODE_COUNTRY"),
			Proximity:      viper.GetString("GEOCODE_PROXIMITY"),
			BBox:           viper.GetString("GEOCODE_BBOX"),
			ResultLimit:    viper.GetInt("GEOCODE_RESULT_LIMIT"),
			RequestTimeout: time.Duration(viper.GetInt("GEOCODE_REQUEST_TIMEOUT")) * time.Second,
			DailyLimit:     viper.GetInt("MAPBOX_MAX_DAILY_REQUESTS"),
		},
		RateLimit: RateLimitConfig{
			Max:    viper.GetInt("RATE_LIMIT_MAX"),
			Window: time.Duration(viper.GetInt("RATE_LIMIT_WINDOW")) * time.Second,
		},
		Data: DataConfig{
			MetaPath: viper.GetString("DATA_META_PATH"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/crashes.duckdb"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 8
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 4
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 5 * time.Minute
	}
	if cfg.Geocode.BaseURL == "" {
		cfg.Geocode.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Geocode.Country == "" {
		cfg.Geocode.Country = "AU"
	}
	if cfg.Geocode.Proximity == "" {
		// Bias results around Melbourne
		cfg.Geocode.Proximity = "144.9631,-37.8136"
	}
	if cfg.Geocode.BBox == "" {
		cfg.Geocode.BBox = "144.0,-38.5,145.8,-37.4"
	}
	if cfg.Geocode.ResultLimit == 0 {
		cfg.Geocode.ResultLimit = 5
	}
	if cfg.Geocode.RequestTimeout == 0 {
		cfg.Geocode.RequestTimeout = 8 * time.Second
	}
	if cfg.RateLimit.Max == 0 {
		cfg.RateLimit.Max = 60
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = time.Minute
	}
	if cfg.Data.MetaPath == "" {
		cfg.Data.MetaPath = "data/meta.json"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RedisEnabled reports whether Redis-backed features (geocode daily cap)
// should be wired up.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}
