package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// LINE messaging platform
	LineChannelToken  string
	LineChannelSecret string
	PushRecipientID   string

	// Transaction processing
	LowBalanceThreshold int64

	// Ledger backend selection
	LedgerBackend string

	// Google Sheets (read by the sheets adapter itself; mirrored here for validation)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// SQLite
	SQLiteDBPath string

	// AMQP (optional event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Scheduler
	DailySummaryTime  string // "HH:MM", local time
	WeeklySummaryTime string // fires on Sundays
	BackupTime        string
	PollInterval      time.Duration

	// Backup
	BackupDir string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		LineChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		LineChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
		PushRecipientID:   getEnv("LINE_PUSH_RECIPIENT_ID", ""),

		LowBalanceThreshold: int64(getEnvInt("LOW_BALANCE_THRESHOLD", 500)),

		LedgerBackend: getEnv("LEDGER_BACKEND", "memory"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "ExpenseTracker"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/bahtbot.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "bahtbot"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		DailySummaryTime:  getEnv("DAILY_SUMMARY_TIME", "21:00"),
		WeeklySummaryTime: getEnv("WEEKLY_SUMMARY_TIME", "21:05"),
		BackupTime:        getEnv("BACKUP_TIME", "21:10"),
		PollInterval:      getEnvDuration("SCHEDULER_POLL_INTERVAL", 60*time.Second),

		BackupDir: getEnv("BACKUP_DIR", "./backups"),
	}
}

// Validate checks the configuration and returns every problem at once.
// A non-nil error here is fatal at startup: the process must not serve
// traffic with missing credentials.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.LineChannelToken == "" {
		errors = append(errors, "LINE_CHANNEL_ACCESS_TOKEN is required")
	}
	if c.LineChannelSecret == "" {
		errors = append(errors, "LINE_CHANNEL_SECRET is required")
	}

	validBackends := []string{"memory", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.LedgerBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, validBackends))
	}

	if c.LedgerBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "GOOGLE_SHEET_NAME cannot be empty when using sheets backend")
		}
	}

	if c.LedgerBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	for _, tc := range []struct{ name, value string }{
		{"DAILY_SUMMARY_TIME", c.DailySummaryTime},
		{"WEEKLY_SUMMARY_TIME", c.WeeklySummaryTime},
		{"BACKUP_TIME", c.BackupTime},
	} {
		if _, err := time.Parse("15:04", tc.value); err != nil {
			errors = append(errors, fmt.Sprintf("invalid %s '%s': must be HH:MM", tc.name, tc.value))
		}
	}

	if c.PollInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid scheduler poll interval %v: must be at least 1 second", c.PollInterval))
	} else if c.PollInterval > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid scheduler poll interval %v: must be at most 1 hour", c.PollInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
