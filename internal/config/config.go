package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration, loaded from environment variables.
type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	DBPath string `envconfig:"DB_PATH" default:"app.db"`

	// Sheet names the intake pipelines write to. The order sheet is the
	// primary destination; the inquiry sheet is created lazily with
	// headers on first use.
	OrderSheet   string `envconfig:"ORDER_SHEET" default:"Form Responses 1"`
	InquirySheet string `envconfig:"INQUIRY_SHEET" default:"Contact Form Responses"`

	// OwnerEmail receives order and inquiry notifications.
	OwnerEmail   string `envconfig:"OWNER_EMAIL" default:"sliceofheaven.cakes7@gmail.com"`
	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`

	// AttachmentDir is where decoded inspiration photos are archived when
	// no S3 bucket is configured. Setting S3Bucket switches archival to S3.
	AttachmentDir string `envconfig:"ATTACHMENT_DIR" default:"attachments"`
	S3Bucket      string `envconfig:"S3_BUCKET" default:""`
	AWSRegion     string `envconfig:"AWS_REGION" default:"us-east-1"`

	// CalendarDir is where pickup .ics events are written.
	CalendarDir string `envconfig:"CALENDAR_DIR" default:"calendar"`

	// JWTSecret signs admin API tokens. When empty the admin read
	// endpoints are disabled.
	JWTSecret string `envconfig:"JWT_SECRET" default:""`
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s, OrderSheet: %q, InquirySheet: %q, Owner: %s, SMTP: %s:%d, S3: %q, Secrets: *** (masked) ***}",
		c.Port, c.DBPath, c.OrderSheet, c.InquirySheet, c.OwnerEmail, c.SMTPHost, c.SMTPPort, c.S3Bucket)
}
