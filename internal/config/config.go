package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Sequence   SequenceConfig
	Payroll    PayrollConfig
	Invoice    InvoiceConfig
	Attendance AttendanceConfig
	Cron       CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// SMTPConfig holds outgoing mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type StorageConfig struct {
	Type     string // "local" or "minio"
	BasePath string
	BaseURL  string
	Minio    MinioConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SequenceConfig selects the counter backend used for document numbers.
type SequenceConfig struct {
	Backend string // "postgres", "redis" or "memory"
}

// ParseErrorPolicy decides what happens to malformed optional numeric input.
type ParseErrorPolicy string

const (
	ParseErrorZero   ParseErrorPolicy = "zero"
	ParseErrorReject ParseErrorPolicy = "reject"
)

type PayrollConfig struct {
	OnParseError  ParseErrorPolicy
	StandardHours int
}

type InvoiceConfig struct {
	DefaultDueDays int
}

type AttendanceConfig struct {
	DefaultTimezone   string
	ClockInStartHour  int
	ClockInEndHour    int
	ClockOutEndHour   int
	MinEntryInterval  time.Duration
	AllowWeekendClock bool
}

type CronConfig struct {
	Enabled                 bool
	OverdueReminderInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "bizops"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "bizops"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	// SMTP configuration
	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		FromName: getEnv("SMTP_FROM_NAME", "BizOps"),
	}

	// Storage configuration
	minioSSL, err := getEnvBool("MINIO_USE_SSL", false)
	if err != nil {
		return nil, err
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "bizops-documents"),
			UseSSL:    minioSSL,
		},
	}

	// Redis configuration
	redisPort, err := getEnvInt("REDIS_PORT", 6379)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     redisPort,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	config.Sequence = SequenceConfig{
		Backend: getEnv("SEQUENCE_BACKEND", "postgres"),
	}

	// Payroll configuration
	standardHours, err := getEnvInt("PAYROLL_STANDARD_HOURS", 8)
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		OnParseError:  ParseErrorPolicy(strings.ToLower(getEnv("PAYROLL_ON_PARSE_ERROR", string(ParseErrorZero)))),
		StandardHours: standardHours,
	}

	dueDays, err := getEnvInt("INVOICE_DEFAULT_DUE_DAYS", 30)
	if err != nil {
		return nil, err
	}
	config.Invoice = InvoiceConfig{DefaultDueDays: dueDays}

	// Attendance configuration
	clockInStart, err := getEnvInt("ATTENDANCE_CLOCK_IN_START_HOUR", 7)
	if err != nil {
		return nil, err
	}
	clockInEnd, err := getEnvInt("ATTENDANCE_CLOCK_IN_END_HOUR", 22)
	if err != nil {
		return nil, err
	}
	clockOutEnd, err := getEnvInt("ATTENDANCE_CLOCK_OUT_END_HOUR", 23)
	if err != nil {
		return nil, err
	}
	minInterval, err := getEnvDuration("ATTENDANCE_MIN_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	allowWeekend, err := getEnvBool("ATTENDANCE_ALLOW_WEEKEND", false)
	if err != nil {
		return nil, err
	}

	config.Attendance = AttendanceConfig{
		DefaultTimezone:   getEnv("ATTENDANCE_DEFAULT_TIMEZONE", "UTC"),
		ClockInStartHour:  clockInStart,
		ClockInEndHour:    clockInEnd,
		ClockOutEndHour:   clockOutEnd,
		MinEntryInterval:  minInterval,
		AllowWeekendClock: allowWeekend,
	}

	// Cron configuration
	cronEnabled, err := getEnvBool("CRON_ENABLED", true)
	if err != nil {
		return nil, err
	}
	reminderInterval, err := getEnvDuration("CRON_OVERDUE_REMINDER_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	config.Cron = CronConfig{
		Enabled:                 cronEnabled,
		OverdueReminderInterval: reminderInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		errs = append(errs, fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err))
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		errs = append(errs, fmt.Errorf("JWT_REFRESH_EXPIRATION_TIME is invalid: %w", err))
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.BasePath == "" {
			errs = append(errs, errors.New("STORAGE_BASE_PATH is required for local storage"))
		}
	case "minio":
		if c.Storage.Minio.AccessKey == "" || c.Storage.Minio.SecretKey == "" {
			errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE %q is not supported", c.Storage.Type))
	}

	switch c.Sequence.Backend {
	case "postgres", "redis", "memory":
	default:
		errs = append(errs, fmt.Errorf("SEQUENCE_BACKEND %q is not supported", c.Sequence.Backend))
	}

	switch c.Payroll.OnParseError {
	case ParseErrorZero, ParseErrorReject:
	default:
		errs = append(errs, fmt.Errorf("PAYROLL_ON_PARSE_ERROR must be %q or %q", ParseErrorZero, ParseErrorReject))
	}
	if c.Payroll.StandardHours <= 0 || c.Payroll.StandardHours > 24 {
		errs = append(errs, errors.New("PAYROLL_STANDARD_HOURS must be between 1 and 24"))
	}

	if c.Invoice.DefaultDueDays < 0 {
		errs = append(errs, errors.New("INVOICE_DEFAULT_DUE_DAYS must be non-negative"))
	}

	a := c.Attendance
	if a.ClockInStartHour < 0 || a.ClockInEndHour > 24 || a.ClockInStartHour >= a.ClockInEndHour {
		errs = append(errs, errors.New("attendance clock-in window is invalid"))
	}
	if a.ClockOutEndHour > 24 || a.ClockOutEndHour <= a.ClockInStartHour {
		errs = append(errs, errors.New("attendance clock-out window is invalid"))
	}
	if _, err := time.LoadLocation(a.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("ATTENDANCE_DEFAULT_TIMEZONE is invalid: %w", err))
	}

	if c.Cron.Enabled && c.Cron.OverdueReminderInterval <= 0 {
		errs = append(errs, errors.New("CRON_OVERDUE_REMINDER_INTERVAL must be positive"))
	}

	return errors.Join(errs...)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RedisAddr returns host:port for the redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
