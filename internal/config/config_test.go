package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Password: "secret"},
		JWT:      JWTConfig{Secret: "jwt-secret", AccessExpiration: "1h", RefreshExpiration: "168h"},
		Storage:  StorageConfig{Type: "local", BasePath: "./uploads"},
		Sequence: SequenceConfig{Backend: "postgres"},
		Payroll:  PayrollConfig{OnParseError: ParseErrorZero, StandardHours: 8},
		Invoice:  InvoiceConfig{DefaultDueDays: 30},
		Attendance: AttendanceConfig{
			DefaultTimezone:  "UTC",
			ClockInStartHour: 7,
			ClockInEndHour:   22,
			ClockOutEndHour:  23,
			MinEntryInterval: time.Minute,
		},
		Cron: CronConfig{Enabled: true, OverdueReminderInterval: time.Hour},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing db password", func(c *Config) { c.Database.Password = "" }, "DB_PASSWORD"},
		{"missing jwt secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET_KEY"},
		{"bad jwt expiration", func(c *Config) { c.JWT.AccessExpiration = "soon" }, "JWT_ACCESS_EXPIRATION_TIME"},
		{"unknown storage", func(c *Config) { c.Storage.Type = "s3" }, "STORAGE_TYPE"},
		{"minio without keys", func(c *Config) { c.Storage.Type = "minio" }, "MINIO_ACCESS_KEY"},
		{"unknown sequence backend", func(c *Config) { c.Sequence.Backend = "etcd" }, "SEQUENCE_BACKEND"},
		{"unknown parse policy", func(c *Config) { c.Payroll.OnParseError = "ignore" }, "PAYROLL_ON_PARSE_ERROR"},
		{"standard hours zero", func(c *Config) { c.Payroll.StandardHours = 0 }, "PAYROLL_STANDARD_HOURS"},
		{"inverted clock-in window", func(c *Config) { c.Attendance.ClockInEndHour = 6 }, "clock-in window"},
		{"bad timezone", func(c *Config) { c.Attendance.DefaultTimezone = "Mars/Olympus" }, "ATTENDANCE_DEFAULT_TIMEZONE"},
		{"zero reminder interval", func(c *Config) { c.Cron.OverdueReminderInterval = 0 }, "CRON_OVERDUE_REMINDER_INTERVAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "bizops")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORAGE_TYPE", "local")
	t.Setenv("SEQUENCE_BACKEND", "memory")
	t.Setenv("PAYROLL_ON_PARSE_ERROR", "REJECT")
	t.Setenv("INVOICE_DEFAULT_DUE_DAYS", "14")
	t.Setenv("ATTENDANCE_MIN_INTERVAL", "2m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ParseErrorReject, cfg.Payroll.OnParseError)
	assert.Equal(t, 14, cfg.Invoice.DefaultDueDays)
	assert.Equal(t, 2*time.Minute, cfg.Attendance.MinEntryInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/bizops?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PORT")
}

func TestSlogLevel(t *testing.T) {
	c := validConfig()
	c.App.LogLevel = "DEBUG"
	assert.Equal(t, slog.LevelDebug, c.SlogLevel())
	c.App.LogLevel = "unknown"
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}
