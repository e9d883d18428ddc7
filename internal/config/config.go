package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string
	DbMaxConn int
	// применять schema.sql при старте
	DbAutoMigrate bool

	Log      string
	LogLevel string
	Env      string // dev|prod

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	EmailWorkers int

	SiteURL string

	GeoIPDBPath     string
	LookupCacheSize int
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует, чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	maxConn, err := atoiEnv("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	workers, err := atoiEnv("EMAIL_WORKERS", 3)
	if err != nil {
		return nil, err
	}
	cacheSize, err := atoiEnv("LOOKUP_CACHE_SIZE", 4096)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          def(os.Getenv("PORT"), "4000"),
		DbHost:        os.Getenv("DB_HOST"),
		DbPort:        def(os.Getenv("DB_PORT"), "5432"),
		DbUser:        os.Getenv("DB_USER"),
		DbPass:        os.Getenv("DB_PASSWORD"),
		DbName:        os.Getenv("DB_NAME"),
		DbSSLMode:     def(os.Getenv("DB_SSLMODE"), "disable"),
		DbMaxConn:     maxConn,
		DbAutoMigrate: strings.EqualFold(os.Getenv("DB_AUTO_MIGRATE"), "true"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailWorkers: workers,

		SiteURL: strings.TrimRight(os.Getenv("SITEURL"), "/"),

		GeoIPDBPath:     os.Getenv("GEOIP_DB_PATH"),
		LookupCacheSize: cacheSize,
	}

	return cfg, nil
}

func atoiEnv(key string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}
	if c.DbMaxConn <= 0 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be positive")
	}

	if c.SMTPHost == "" || c.SMTPUser == "" {
		warnings = append(warnings, "SMTP is not fully configured, post notifications disabled")
	}
	if c.GeoIPDBPath == "" {
		warnings = append(warnings, "GEOIP_DB_PATH is empty, all visits will be counted as Unknown country")
	}
	if c.LookupCacheSize <= 0 {
		warnings = append(warnings, "LOOKUP_CACHE_SIZE is not positive, using 4096")
		c.LookupCacheSize = 4096
	}
	if c.EmailWorkers <= 0 {
		warnings = append(warnings, "EMAIL_WORKERS is not positive, using 1")
		c.EmailWorkers = 1
	}

	return warnings, nil
}

// SMTPEnabled: есть ли с чем отправлять письма
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != ""
}

// GetDSN: полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode, c.DbMaxConn,
	)
}

// GetDSNSafe: DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
