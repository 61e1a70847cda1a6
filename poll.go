package rossum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

// Observer is called once per poll attempt with the observed status. It is
// purely informational; the CLI uses it to print progress dots.
type Observer func(attempt uint, status Status)

// statusEnvelope is the slice of a status response the poller inspects.
type statusEnvelope struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// errStillProcessing drives the retry loop; it never escapes waitReady.
var errStillProcessing = errors.New("job still processing")

// waitReady polls statusFn at a fixed interval until the job reports a
// terminal status and returns that terminal body verbatim. The overall budget
// is maxAttempts queries; exhausting it while the job keeps processing yields
// ErrPollTimeout. Only the processing status is retried: transport failures
// and malformed bodies abort the wait immediately.
func waitReady(
	ctx context.Context,
	log *slog.Logger,
	statusFn func(context.Context) (json.RawMessage, error),
	interval time.Duration,
	maxAttempts uint,
	observe Observer,
) (json.RawMessage, error) {
	var terminal json.RawMessage
	var attempt uint

	err := retry.Do(
		func() error {
			attempt++
			raw, err := statusFn(ctx)
			if err != nil {
				return err
			}
			var env statusEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return fmt.Errorf("parse status response: %w", err)
			}
			if observe != nil {
				observe(attempt, env.Status)
			}
			log.Debug("polled job", "attempt", attempt, "status", env.Status)
			if env.Status == StatusProcessing {
				return errStillProcessing
			}
			terminal = raw
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, errStillProcessing) }),
	)
	if err != nil {
		if errors.Is(err, errStillProcessing) {
			log.Debug("poll budget exhausted", "attempts", attempt, "interval", interval)
			return nil, fmt.Errorf("%w (%d attempts at %s steps)", ErrPollTimeout, attempt, interval)
		}
		return nil, err
	}
	return terminal, nil
}
