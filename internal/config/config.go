package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	// Common
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	// API
	Port               string   `mapstructure:"port"`
	Storage            string   `mapstructure:"storage"`
	DatabaseURL        string   `mapstructure:"database_url"`
	ReferenceTZ        string   `mapstructure:"reference_tz"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	// Provider
	Provider        string        `mapstructure:"provider"`
	ExchangeAPIBase string        `mapstructure:"exchange_api_base"`
	ExchangeAPIKey  string        `mapstructure:"exchange_api_key"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	// Redis (idempotency)
	IdempotencyBackend string        `mapstructure:"idempotency_backend"`
	RedisAddr          string        `mapstructure:"redis_addr"`
	RedisPassword      string        `mapstructure:"redis_password"`
	RedisDB            int           `mapstructure:"redis_db"`
	IdempotencyTTL     time.Duration `mapstructure:"idempotency_ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("port", "3001")
	v.SetDefault("storage", "pg")
	v.SetDefault("database_url", "")
	v.SetDefault("reference_tz", "Asia/Kuala_Lumpur")
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("provider", "fake")
	v.SetDefault("exchange_api_base", "https://api.exchangeratesapi.io")
	v.SetDefault("exchange_api_key", "")
	v.SetDefault("request_timeout", "4s")
	v.SetDefault("idempotency_backend", "none")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("idempotency_ttl", "24h")
}

// Load reads environment variables (and CONFIG_FILE when set) and applies defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	var origins []string
	for _, o := range cfg.CORSAllowedOrigins {
		origins = append(origins, splitList(o)...)
	}
	cfg.CORSAllowedOrigins = origins
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs basic sanity checks on the configuration values.
func (c Config) Validate() error {
	switch c.Storage {
	case "pg", "memory":
	default:
		return fmt.Errorf("storage must be pg or memory, got %q", c.Storage)
	}
	if c.Storage == "pg" && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for STORAGE=pg")
	}
	switch c.IdempotencyBackend {
	case "redis", "none":
	default:
		return fmt.Errorf("idempotency_backend must be redis or none, got %q", c.IdempotencyBackend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

var offsetRe = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// Location resolves ReferenceTZ, either an IANA zone name or a fixed offset
// such as "+08:00" or "UTC+8".
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.ReferenceTZ)
	if m := offsetRe.FindStringSubmatch(tz); m != nil {
		h, _ := strconv.Atoi(m[2])
		mins := 0
		if m[3] != "" {
			mins, _ = strconv.Atoi(m[3])
		}
		if h > 14 || mins > 59 {
			return nil, fmt.Errorf("reference_tz offset out of range: %q", tz)
		}
		secs := h*3600 + mins*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(tz, secs), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("reference_tz: %w", err)
	}
	return loc, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
