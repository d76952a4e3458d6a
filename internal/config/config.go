package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Feedback FeedbackConfig
}

type ServerConfig struct {
	Host string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxOpenConns   int
	MigrateOnStart bool
}

type SessionConfig struct {
	Key    string
	MaxAge time.Duration
	Secure bool
}

type FeedbackConfig struct {
	// сколько записей показывать админу без фильтра по курсу
	AllRecordsLimit  int
	DefaultStatsDays int
	DashboardDays    int
}

// Load читает переменные окружения; .env подхватывается, если он есть
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			DBName:         getEnv("DB_NAME", "emoji_feedback"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MigrateOnStart: getEnvAsBool("DB_MIGRATE_ON_START", true),
		},
		Session: SessionConfig{
			Key:    getEnv("SESSION_KEY", ""),
			MaxAge: getEnvAsDuration("SESSION_MAX_AGE", 2*time.Hour),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Feedback: FeedbackConfig{
			AllRecordsLimit:  getEnvAsInt("FEEDBACK_ALL_RECORDS_LIMIT", 500),
			DefaultStatsDays: getEnvAsInt("FEEDBACK_STATS_DAYS", 30),
			DashboardDays:    getEnvAsInt("FEEDBACK_DASHBOARD_DAYS", 7),
		},
	}

	if cfg.Feedback.AllRecordsLimit <= 0 {
		return nil, fmt.Errorf("FEEDBACK_ALL_RECORDS_LIMIT must be positive, got %d", cfg.Feedback.AllRecordsLimit)
	}

	return cfg, nil
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c ServerConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DSN - строка подключения для lib/pq. Значения в кавычках: пустой пароль
// или пароль с пробелом иначе съедают следующий ключ.
func (c DatabaseConfig) DSN() string {
	pairs := [][2]string{
		{"host", c.Host},
		{"port", c.Port},
		{"user", c.User},
		{"password", c.Password},
		{"dbname", c.DBName},
		{"sslmode", c.SSLMode},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p[0]+"="+quoteDSNValue(p[1]))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// URL - тот же адрес в виде postgres:// для golang-migrate
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
