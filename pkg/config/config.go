package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session storage drivers.
const (
	SessionDriverFile  = "file"
	SessionDriverRedis = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Backend  BackendConfig
	Session  SessionConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Toast    ToastConfig
	Reports  ReportsConfig
	Settings SettingsConfig
}

// BackendConfig points at the remote records and authentication endpoints.
type BackendConfig struct {
	DataURL string
	AuthURL string
	// Timeout of zero leaves the transport defaults in charge.
	Timeout time.Duration
}

// SessionConfig controls where the operator session is persisted and how its token is signed.
type SessionConfig struct {
	Driver string
	File   string
	Key    string
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ToastConfig tunes the notification slot.
type ToastConfig struct {
	TTL time.Duration
}

// ReportsConfig configures rendered export storage.
type ReportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
	FontPath        string
}

// SettingsConfig carries the static class/section/year enumerations.
type SettingsConfig struct {
	Classes  []string
	Sections []string
	Years    []string
}

// DefaultClasses lists the institution's classes in promotion order.
var DefaultClasses = []string{
	"নার্সারী", "নুরানী প্রথম", "নুরানী দ্বিতীয়", "ইবতেদায়ী তৃতীয়",
	"ইবতেদায়ী চতুর্থ", "ইবতেদায়ী পঞ্চম", "দাখিল ষষ্ঠ", "দাখিল সপ্তম",
	"দাখিল অষ্টম", "দাখিল নবম", "দাখিল দশম", "আলিম প্রথম বর্ষ", "আলিম দ্বিতীয় বর্ষ",
}

// DefaultSections lists the section names offered by the selectors.
var DefaultSections = []string{"বালিকা", "বালক", "বালক-বালিকা"}

// DefaultYears lists the academic years offered by the selectors.
var DefaultYears = []string{"2024", "2025", "2026", "2027", "2028"}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Backend = BackendConfig{
		DataURL: v.GetString("BACKEND_DATA_URL"),
		AuthURL: v.GetString("BACKEND_AUTH_URL"),
		Timeout: parseDuration(v.GetString("BACKEND_TIMEOUT"), 0),
	}

	cfg.Session = SessionConfig{
		Driver: strings.ToLower(v.GetString("SESSION_DRIVER")),
		File:   v.GetString("SESSION_FILE"),
		Key:    v.GetString("SESSION_KEY"),
		Secret: v.GetString("SESSION_SECRET"),
		TTL:    parseDuration(v.GetString("SESSION_TTL"), 30*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Toast = ToastConfig{
		TTL: parseDuration(v.GetString("TOAST_TTL"), 3*time.Second),
	}

	cfg.Reports = ReportsConfig{
		StorageDir:      v.GetString("REPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("REPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("REPORTS_SIGNED_URL_TTL"), time.Hour),
		CleanupInterval: parseDuration(v.GetString("REPORTS_CLEANUP_INTERVAL"), time.Hour),
		FontPath:        v.GetString("REPORTS_FONT_PATH"),
	}

	cfg.Settings = SettingsConfig{
		Classes:  listOrDefault(v.GetString("SETTINGS_CLASSES"), DefaultClasses),
		Sections: listOrDefault(v.GetString("SETTINGS_SECTIONS"), DefaultSections),
		Years:    listOrDefault(v.GetString("SETTINGS_YEARS"), DefaultYears),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("BACKEND_DATA_URL", "http://localhost:9000/exec")
	v.SetDefault("BACKEND_AUTH_URL", "http://localhost:9000/auth")
	v.SetDefault("BACKEND_TIMEOUT", "0s")

	v.SetDefault("SESSION_DRIVER", SessionDriverFile)
	v.SetDefault("SESSION_FILE", "./data/session.json")
	v.SetDefault("SESSION_KEY", "user_session")
	v.SetDefault("SESSION_SECRET", "dev_session_secret")
	v.SetDefault("SESSION_TTL", "720h")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TOAST_TTL", "3s")

	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_SIGNED_URL_SECRET", "dev_reports_secret")
	v.SetDefault("REPORTS_SIGNED_URL_TTL", "1h")
	v.SetDefault("REPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("REPORTS_FONT_PATH", "")

	v.SetDefault("SETTINGS_CLASSES", "")
	v.SetDefault("SETTINGS_SECTIONS", "")
	v.SetDefault("SETTINGS_YEARS", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func listOrDefault(raw string, fallback []string) []string {
	if list := splitAndTrim(raw); len(list) > 0 {
		return list
	}
	out := make([]string, len(fallback))
	copy(out, fallback)
	return out
}

// viper reports a missing explicit config file as a plain fs error.
func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory") || strings.Contains(err.Error(), "cannot find the file")
}
