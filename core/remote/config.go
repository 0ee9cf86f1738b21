package remote

import "time"

const (
	ProviderStorage = "storage"
	ProviderDrive   = "drive"
)

// Config holds configuration for remote folder access.
type Config struct {
	// Provider selects the backend (storage, drive).
	Provider string `mapstructure:"provider" default:"storage"`
	// CallTimeout bounds a single list or download attempt.
	CallTimeout time.Duration `mapstructure:"call_timeout" default:"30s"`
	// MaxAttempts is the retry budget for transient failures, first attempt included.
	MaxAttempts int `mapstructure:"max_attempts" default:"4"`
	// BaseDelay is the first backoff delay; every further retry doubles it.
	BaseDelay time.Duration `mapstructure:"base_delay" default:"1s"`
	// DriveCredentialsFile is the service account JSON used by the drive provider.
	DriveCredentialsFile string `mapstructure:"drive_credentials_file" default:"service_account.json"`
}

// IsValidProvider checks if the configured provider is supported.
func (c Config) IsValidProvider() bool {
	switch c.Provider {
	case ProviderStorage, ProviderDrive:
		return true
	default:
		return false
	}
}

// RetryPolicy returns the backoff policy described by the configuration.
func (c Config) RetryPolicy() RetryPolicy {
	p := DefaultRetryPolicy()
	if c.MaxAttempts > 0 {
		p.MaxAttempts = c.MaxAttempts
	}
	if c.BaseDelay > 0 {
		p.BaseDelay = c.BaseDelay
	}
	return p
}
