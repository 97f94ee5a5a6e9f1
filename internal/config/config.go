// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the food-rescue server.
// It is populated by merging environment variables, command-line flags and
// an optional JSON file, then filled with defaults and validated.
type StructuredConfig struct {
	// App holds token parameters, the application version and log level.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and proof file store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and the per-request timeout.
	Server Server `envPrefix:"SERVER_"`

	// Notifier selects and configures the claim notification channel.
	Notifier Notifier `envPrefix:"NOTIFIER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in and required from every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the token lifetime (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by the version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the persistence backends.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds relational database connection settings.
type DB struct {
	// Driver is either "postgres" or "sqlite". When empty it is derived from
	// the DSN: postgres:// and postgresql:// URLs select postgres, anything
	// else is treated as a SQLite file path.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string or SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for uploaded delivery proofs.
type Files struct {
	// ProofDir is the directory where proof documents are stored.
	// Env: STORAGE_FILES_PROOF_DIR
	ProofDir string `env:"PROOF_DIR"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the REST API listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the health service listen address. Empty disables gRPC.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Notifier configures claim notifications.
type Notifier struct {
	// Provider is one of "log", "smtp" or "webhook".
	// Env: NOTIFIER_PROVIDER
	Provider string `env:"PROVIDER"`

	// QueueSize is the capacity of the in-memory event queue.
	// Env: NOTIFIER_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`

	// SendTimeout bounds a single delivery attempt.
	// Env: NOTIFIER_SEND_TIMEOUT
	SendTimeout time.Duration `env:"SEND_TIMEOUT"`

	SMTP SMTP `envPrefix:"SMTP_"`

	// WebhookURL receives a JSON POST per event when Provider is "webhook".
	// Env: NOTIFIER_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`
}

// SMTP holds mail relay settings. Username and Password are optional; when
// both are set PLAIN auth is used.
type SMTP struct {
	Host     string `env:"HOST" json:"host"`
	Port     int    `env:"PORT" json:"port"`
	Username string `env:"USERNAME" json:"username"`
	Password string `env:"PASSWORD" json:"password"`
	From     string `env:"FROM" json:"from"`
	To       string `env:"TO" json:"to"`
}

// Notification providers.
const (
	ProviderLog     = "log"
	ProviderSMTP    = "smtp"
	ProviderWebhook = "webhook"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// defaults returns the values used for every field left empty by all sources.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "food-rescue",
			TokenDuration: 24 * time.Hour,
			Version:       "1.0.0",
			LogLevel:      "debug",
		},
		Storage: Storage{
			Files: Files{ProofDir: "proofs"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Notifier: Notifier{
			Provider:    ProviderLog,
			QueueSize:   100,
			SendTimeout: 10 * time.Second,
			SMTP: SMTP{
				Port: 587,
				From: "noreply@foodrescue.local",
			},
		},
	}
}

// GetStructuredConfig loads, merges and validates the configuration.
// For every field the first non-empty source wins:
//  1. Environment variables
//  2. Command-line flags (args, usually os.Args[1:])
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
