package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Console
	Port        string
	APIBaseURL  string
	APITimeout  time.Duration
	RenderGrace time.Duration
	RateLimit   int
	SessionIdle time.Duration
	LogFile     string

	// Stand-in API
	APIPort    string
	DBDSN      string
	CORSOrigin string
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8081")
	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("api_timeout", "0s")
	v.SetDefault("render_grace", "1500ms")
	v.SetDefault("rate_limit", 120)
	v.SetDefault("session_idle", "30m")
	v.SetDefault("log_file", "")
	v.SetDefault("api_port", "8000")
	v.SetDefault("db_dsn", ":memory:")
	v.SetDefault("cors_origin", "http://localhost:8081")
}

// Load reads .env (if present), an optional config file named by
// CRUDADMIN_CONFIG, then the environment. Environment wins.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[warn] could not read .env: %v", err)
	}
	cfg, err := load(viper.New(), os.Getenv("CRUDADMIN_CONFIG"))
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s API_TIMEOUT=%s RENDER_GRACE=%s RATE_LIMIT=%d API_PORT=%s DB_DSN=%s",
		cfg.Port, cfg.APIBaseURL, cfg.APITimeout, cfg.RenderGrace, cfg.RateLimit, cfg.APIPort, cfg.DBDSN)
	return cfg
}

func load(v *viper.Viper, file string) (Config, error) {
	defaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Port:        v.GetString("port"),
		APIBaseURL:  v.GetString("api_base_url"),
		APITimeout:  v.GetDuration("api_timeout"),
		RenderGrace: v.GetDuration("render_grace"),
		RateLimit:   v.GetInt("rate_limit"),
		SessionIdle: v.GetDuration("session_idle"),
		LogFile:     v.GetString("log_file"),
		APIPort:     v.GetString("api_port"),
		DBDSN:       v.GetString("db_dsn"),
		CORSOrigin:  v.GetString("cors_origin"),
	}
	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("api_base_url must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("rate_limit must be positive, got %d", cfg.RateLimit)
	}
	if cfg.SessionIdle <= 0 {
		return Config{}, fmt.Errorf("session_idle must be positive, got %s", cfg.SessionIdle)
	}
	return cfg, nil
}
