// Package config loads the showroom settings from the environment (and
// bound command-line flags) through viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"showroom/internal/log"
	"showroom/internal/storage"
)

// Keys double as environment variable names once upper-cased.
const (
	KeyPort                     = "port"
	KeyLogLevel                 = "log_level"
	KeyStoreBackend             = "store_backend"
	KeySQLiteDBPath             = "sqlite_db_path"
	KeyRedisAddr                = "redis_addr"
	KeyRedisPassword            = "redis_password"
	KeyRedisDB                  = "redis_db"
	KeyRedisPrefix              = "redis_prefix"
	KeyAMQPURL                  = "amqp_url"
	KeyAMQPExchange             = "amqp_exchange"
	KeyAMQPQueue                = "amqp_queue"
	KeyGoogleSpreadsheetID      = "google_spreadsheet_id"
	KeyGoogleLeadsSheet         = "google_leads_sheet"
	KeyGoogleServiceAccountFile = "google_service_account_file"
	KeyGoogleServiceAccountJSON = "google_service_account_json"
	KeyGoogleOAuthClientJSON    = "google_oauth_client_json"
	KeyGoogleOAuthClientFile    = "google_oauth_client_file"
	KeyGoogleOAuthTokenJSON     = "google_oauth_token_json"
	KeyGoogleOAuthTokenFile     = "google_oauth_token_file"
	KeyRateLimitPerMinute       = "rate_limit_per_minute"
	KeyInventoryCacheTTL        = "inventory_cache_ttl"
	KeyShutdownTimeout          = "shutdown_timeout"
)

type Config struct {
	// HTTP Server
	Port            string
	ShutdownTimeout time.Duration

	LogLevel string

	// Visitor state
	StoreBackend  string
	SQLiteDBPath  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Lead queue
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Lead export
	GoogleSpreadsheetID      string
	GoogleLeadsSheet         string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
	GoogleOAuthClientJSON    string
	GoogleOAuthClientFile    string
	GoogleOAuthTokenJSON     string
	GoogleOAuthTokenFile     string

	RateLimitPerMinute int
	InventoryCacheTTL  time.Duration
}

// NewViper returns a viper instance with defaults set and environment
// lookup enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyShutdownTimeout, "30s")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStoreBackend, string(storage.MemoryBackend))
	v.SetDefault(KeySQLiteDBPath, "./data/showroom.db")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisPrefix, "showroom:")
	v.SetDefault(KeyAMQPURL, "")
	v.SetDefault(KeyAMQPExchange, "showroom")
	v.SetDefault(KeyAMQPQueue, "leads")
	v.SetDefault(KeyGoogleSpreadsheetID, "")
	v.SetDefault(KeyGoogleLeadsSheet, "Leads")
	v.SetDefault(KeyGoogleServiceAccountFile, "")
	v.SetDefault(KeyGoogleServiceAccountJSON, "")
	v.SetDefault(KeyGoogleOAuthClientJSON, "")
	v.SetDefault(KeyGoogleOAuthClientFile, "")
	v.SetDefault(KeyGoogleOAuthTokenJSON, "")
	v.SetDefault(KeyGoogleOAuthTokenFile, "token.json")
	v.SetDefault(KeyRateLimitPerMinute, 30)
	v.SetDefault(KeyInventoryCacheTTL, "5m")
	v.AutomaticEnv()
	return v
}

// Load reads every key from v. Malformed numbers and durations are kept as
// zero values so Validate reports them.
func Load(v *viper.Viper) *Config {
	return &Config{
		Port:            v.GetString(KeyPort),
		ShutdownTimeout: duration(v, KeyShutdownTimeout),
		LogLevel:        v.GetString(KeyLogLevel),

		StoreBackend:  strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreBackend))),
		SQLiteDBPath:  v.GetString(KeySQLiteDBPath),
		RedisAddr:     v.GetString(KeyRedisAddr),
		RedisPassword: v.GetString(KeyRedisPassword),
		RedisDB:       integer(v, KeyRedisDB),
		RedisPrefix:   v.GetString(KeyRedisPrefix),

		AMQPURL:      v.GetString(KeyAMQPURL),
		AMQPExchange: v.GetString(KeyAMQPExchange),
		AMQPQueue:    v.GetString(KeyAMQPQueue),

		GoogleSpreadsheetID:      v.GetString(KeyGoogleSpreadsheetID),
		GoogleLeadsSheet:         v.GetString(KeyGoogleLeadsSheet),
		GoogleServiceAccountFile: v.GetString(KeyGoogleServiceAccountFile),
		GoogleServiceAccountJSON: v.GetString(KeyGoogleServiceAccountJSON),
		GoogleOAuthClientJSON:    v.GetString(KeyGoogleOAuthClientJSON),
		GoogleOAuthClientFile:    v.GetString(KeyGoogleOAuthClientFile),
		GoogleOAuthTokenJSON:     v.GetString(KeyGoogleOAuthTokenJSON),
		GoogleOAuthTokenFile:     v.GetString(KeyGoogleOAuthTokenFile),

		RateLimitPerMinute: integer(v, KeyRateLimitPerMinute),
		InventoryCacheTTL:  duration(v, KeyInventoryCacheTTL),
	}
}

func integer(v *viper.Viper, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return -1
	}
	return n
}

func duration(v *viper.Viper, key string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0
	}
	return d
}

// Storage maps the settings onto storage.Config.
func (c *Config) Storage() storage.Config {
	return storage.Config{
		Type:         storage.BackendType(c.StoreBackend),
		SQLiteDBPath: c.SQLiteDBPath,
		Redis: storage.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		},
	}
}

// LeadsEnabled reports whether leads are published to a queue.
func (c *Config) LeadsEnabled() bool {
	return c.AMQPURL != ""
}

// SheetsEnabled reports whether the worker writes leads to Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ShutdownTimeout < time.Second {
		errs = append(errs, "invalid shutdown timeout: must be at least 1s")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error()+": must be one of debug, info, warn, error")
	}

	if !storage.BackendType(c.StoreBackend).IsValid() {
		errs = append(errs, fmt.Sprintf("invalid store backend '%s': must be one of %v", c.StoreBackend, storage.BackendTypes()))
	} else if err := c.Storage().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.RedisDB < 0 {
		errs = append(errs, "invalid redis db: must be a non-negative number")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleServiceAccountFile != "" {
		if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
		}
	}
	if c.GoogleOAuthClientFile != "" {
		if _, err := os.Stat(c.GoogleOAuthClientFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("Google OAuth client file does not exist: %s", c.GoogleOAuthClientFile))
		}
	}

	if c.RateLimitPerMinute < 1 || c.RateLimitPerMinute > 10000 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be between 1 and 10000 per minute", c.RateLimitPerMinute))
	}
	if c.InventoryCacheTTL < time.Second || c.InventoryCacheTTL > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid inventory cache TTL %v: must be between 1s and 24h", c.InventoryCacheTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidateWorker adds the requirements of the lead worker.
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.LeadsEnabled() {
		return fmt.Errorf("configuration validation failed:\n- AMQP_URL is required to run the lead worker")
	}
	return nil
}
