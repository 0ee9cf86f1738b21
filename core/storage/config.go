package storage

import (
	"errors"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config locates the S3 compatible bucket that holds one prefix per inventory folder.
// Only read access is needed.
type Config struct {
	// Endpoint is host:port of the S3 API; an http:// or https:// scheme is stripped.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey and SecretKey are static V4 credentials.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the developer inventory folders, e.g. "like-house/prices.xlsx".
	Bucket string `mapstructure:"bucket" default:"inventory"`
	// Region is empty for MinIO.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, the TLS handshake and waiting for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks the settings the storage backend cannot start without.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("storage endpoint is empty")
	}
	if c.Bucket == "" {
		return errors.New("storage bucket is empty")
	}
	return nil
}

// Timeout returns TimeoutSeconds as a duration, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
