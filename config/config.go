package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"-"`
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
	TimeZone string `yaml:"time_zone"`
}

// Config holds every setting of the server. Secrets only come from the
// environment; the YAML file may set the rest.
type Config struct {
	AppEnv   string `yaml:"app_env"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	JWTSecret string        `yaml:"-"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	Database DatabaseConfig `yaml:"database"`
	RedisURL string         `yaml:"redis_url"`

	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"-"`

	FirebaseCredentialsPath string `yaml:"firebase_credentials_path"`

	MQTTBrokerURL string `yaml:"mqtt_broker_url"`
	MQTTClientID  string `yaml:"mqtt_client_id"`

	CORSOrigins []string `yaml:"cors_origins"`

	PruneCron  string        `yaml:"prune_cron"`
	SyncCron   string        `yaml:"sync_cron"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

func Default() Config {
	return Config{
		AppEnv:   "production",
		Port:     "8000",
		LogLevel: "info",
		TokenTTL: 30 * 24 * time.Hour,
		Database: DatabaseConfig{
			Port:     "5432",
			TimeZone: "UTC",
		},
		MQTTClientID: "focuslock-server",
		PruneCron:    "5 0 * * *",
		SyncCron:     "@every 15m",
		RetryDelay:   time.Minute,
	}
}

// Load builds the configuration from defaults, then the YAML file at
// CONFIG_PATH, then the environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			// A bare number means seconds.
			secs, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("%s: invalid duration %q", key, v)
			}
			d = time.Duration(secs) * time.Second
		}
		*dst = d
		return nil
	}

	setString("APP_ENV", &cfg.AppEnv)
	setString("PORT", &cfg.Port)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("JWT_SECRET", &cfg.JWTSecret)

	setString("DB_HOST", &cfg.Database.Host)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.Name)
	setString("DB_PORT", &cfg.Database.Port)
	setString("DB_SSLMODE", &cfg.Database.SSLMode)
	setString("DB_TIMEZONE", &cfg.Database.TimeZone)
	setString("REDIS_URL", &cfg.RedisURL)

	setString("SUPABASE_URL", &cfg.SupabaseURL)
	setString("SUPABASE_KEY", &cfg.SupabaseKey)
	setString("FIREBASE_CREDENTIALS_PATH", &cfg.FirebaseCredentialsPath)
	setString("MQTT_BROKER_URL", &cfg.MQTTBrokerURL)
	setString("MQTT_CLIENT_ID", &cfg.MQTTClientID)
	setString("PRUNE_CRON", &cfg.PruneCron)
	setString("SYNC_CRON", &cfg.SyncCron)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if err := setDuration("TOKEN_TTL", &cfg.TokenTTL); err != nil {
		return err
	}
	return setDuration("REEVALUATE_RETRY_DELAY", &cfg.RetryDelay)
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if (c.SupabaseURL == "") != (c.SupabaseKey == "") {
		errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY must be set together"))
	}
	for name, spec := range map[string]string{"PRUNE_CRON": c.PruneCron, "SYNC_CRON": c.SyncCron} {
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
