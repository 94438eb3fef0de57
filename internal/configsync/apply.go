package configsync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/vassapi/internal/logging"
)

// ConfigClient reads and replaces the assistant configuration.
// *assistant.Client satisfies it.
type ConfigClient interface {
	GetConfig(ctx context.Context) (map[string]any, error)
	SetConfig(ctx context.Context, cfg map[string]any) error
}

// Options configures verification and rollback
type Options struct {
	// MaxRetries is the number of read-backs after the first one
	// Default: 3
	MaxRetries int

	// InitialDelay gives the assistant time to apply the document
	// Default: 500ms
	InitialDelay time.Duration

	// RetryDelay is the delay between read-backs, doubled after each one
	// up to MaxRetryDelay
	// Default: 1s
	RetryDelay time.Duration

	// MaxRetryDelay caps the backoff
	// Default: 5s
	MaxRetryDelay time.Duration

	// Verify reads the document back after writing it
	// Default: true
	Verify bool

	// Rollback restores the previous document when verification fails
	// Default: true
	Rollback bool
}

// DefaultOptions returns sensible defaults for applying a configuration
func DefaultOptions() Options {
	return Options{
		MaxRetries:    3,
		InitialDelay:  500 * time.Millisecond,
		RetryDelay:    1 * time.Second,
		MaxRetryDelay: 5 * time.Second,
		Verify:        true,
		Rollback:      true,
	}
}

// Result describes the outcome of Apply
type Result struct {
	// Success is true when the new document is confirmed in effect, or was
	// written without verification
	Success bool

	// Verified is true when a read-back matched
	Verified bool

	// Attempts counts read-backs
	Attempts int

	// Snapshot is the document that was in effect before the write
	Snapshot *Snapshot

	// Mismatches from the last read-back
	Mismatches []string

	RollbackAttempted bool
	RollbackSucceeded bool

	Error error
}

// Apply writes desired to the assistant, verifies it and rolls back on
// failure according to opts.
func Apply(ctx context.Context, client ConfigClient, desired map[string]any, opts Options) *Result {
	log := logging.Named("configsync")
	result := &Result{}

	if opts.Rollback {
		snapshot, err := TakeSnapshot(ctx, client, "before apply")
		if err != nil {
			result.Error = fmt.Errorf("failed to save pre-update snapshot: %w", err)
			return result
		}
		result.Snapshot = snapshot
	}

	if err := client.SetConfig(ctx, desired); err != nil {
		result.Error = fmt.Errorf("update failed: %w", err)
		return result
	}

	if !opts.Verify {
		result.Success = true
		return result
	}

	verifyErr := verify(ctx, client, desired, opts, result)
	if verifyErr == nil {
		result.Success = true
		result.Verified = true
		return result
	}

	log.Warn("configuration not confirmed", zap.Int("attempts", result.Attempts), zap.Error(verifyErr))

	if !opts.Rollback || result.Snapshot == nil || ctx.Err() != nil {
		result.Error = verifyErr
		return result
	}

	result.RollbackAttempted = true
	rollback := &Result{}
	if err := client.SetConfig(ctx, result.Snapshot.Config); err != nil {
		result.Error = fmt.Errorf("verification failed (%w) and rollback failed: %v", verifyErr, err)
		return result
	}
	if err := verify(ctx, client, result.Snapshot.Config, opts, rollback); err != nil {
		result.Error = fmt.Errorf("verification failed (%w) and rollback could not be confirmed: %v", verifyErr, err)
		return result
	}

	result.RollbackSucceeded = true
	result.Error = fmt.Errorf("verification failed (%w), rolled back to previous configuration", verifyErr)
	return result
}

// verify reads the configuration back until it matches expected
func verify(ctx context.Context, client ConfigClient, expected map[string]any, opts Options, result *Result) error {
	if err := sleep(ctx, opts.InitialDelay); err != nil {
		return err
	}

	delay := opts.RetryDelay
	var lastErr error

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
			if opts.MaxRetryDelay > 0 && delay > opts.MaxRetryDelay {
				delay = opts.MaxRetryDelay
			}
		}
		result.Attempts++

		actual, err := client.GetConfig(ctx)
		if err != nil {
			// Keep retrying; the assistant may be restarting
			lastErr = fmt.Errorf("attempt %d: failed to retrieve configuration: %w", attempt+1, err)
			continue
		}

		result.Mismatches = Diff(expected, actual)
		if len(result.Mismatches) == 0 {
			return nil
		}
		lastErr = fmt.Errorf("configuration mismatch after %d attempt(s): %s", result.Attempts, formatMismatches(result.Mismatches))
	}

	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
