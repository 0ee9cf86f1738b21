package remote

import (
	"context"
	"fmt"
	"time"

	"realty-inventory/core/observability"

	"go.uber.org/zap"
)

// Client performs retryable list and download operations against a Provider.
type Client struct {
	provider    Provider
	policy      RetryPolicy
	callTimeout time.Duration
	logger      *zap.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewClient creates a remote client for the given provider.
func NewClient(provider Provider, cfg Config, logger *zap.Logger) *Client {
	return &Client{
		provider:    provider,
		policy:      cfg.RetryPolicy(),
		callTimeout: cfg.CallTimeout,
		logger:      logger.With(zap.String("provider", provider.Name())),
		sleep:       sleepContext,
	}
}

// ListFiles lists the files of a remote folder.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]FileInfo, error) {
	var files []FileInfo
	err := c.do(ctx, "list_files", func(ctx context.Context) error {
		var err error
		files, err = c.provider.ListFiles(ctx, folderID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", folderID, err)
	}
	return files, nil
}

// DownloadFile downloads a file and checks that it is a readable spreadsheet.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (*Blob, error) {
	var blob *Blob
	err := c.do(ctx, "download_file", func(ctx context.Context) error {
		var err error
		blob, err = c.provider.Download(ctx, fileID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}

	blob.Format = FormatOf(blob.Name, blob.ContentType)
	if blob.Format == FormatUnknown {
		return nil, fmt.Errorf("download %s: %w (name %q, content type %q)", fileID, ErrUnsupportedFormat, blob.Name, blob.ContentType)
	}
	return blob, nil
}

// do runs fn with a bounded per-attempt timeout, retrying transient failures with
// exponential backoff. Permanent failures are returned as is.
func (c *Client) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := max(c.policy.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = c.attempt(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if IsPermanent(lastErr) {
			return lastErr
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %w", ErrRemoteUnavailable, op, ctx.Err())
		}
		if attempt == attempts {
			break
		}

		delay := c.policy.Delay(attempt)
		c.logger.Warn("Remote call failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_in", delay),
			zap.Error(lastErr))
		observability.RemoteRetries.WithLabelValues(op).Inc()

		if err := c.sleep(ctx, delay); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrRemoteUnavailable, op, err)
		}
	}

	return fmt.Errorf("%w: %s failed after %d attempts: %w", ErrRemoteUnavailable, op, attempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.callTimeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()
	return fn(callCtx)
}
