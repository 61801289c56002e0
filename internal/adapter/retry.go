package adapter

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/gridboard/mobile-core/internal/logger"
)

// callWithRetry runs fn under the gateway's retry policy: an initial attempt
// plus up to retryCount retries separated by a constant retryBackoff. Only
// the absence of a response triggers a retry; as soon as fn yields an HTTP
// response it is returned to the caller regardless of status code. Each
// failed attempt is logged. When the budget is exhausted the last transport
// failure is classified via mapTransportError and returned.
func callWithRetry(
	ctx context.Context,
	log *logger.Logger,
	retryCount int,
	retryBackoff time.Duration,
	op string,
	fn func(ctx context.Context) (*resty.Response, error),
) (*resty.Response, error) {
	var resp *resty.Response
	attempt := 0

	backoff := retry.WithMaxRetries(uint64(retryCount), retry.NewConstant(retryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		var attemptErr error
		resp, attemptErr = fn(ctx)
		if attemptErr != nil {
			log.Warn().
				Str("op", op).
				Int("attempt", attempt).
				Int("budget", retryCount+1).
				Err(attemptErr).
				Msg("request attempt failed")
			return retry.RetryableError(attemptErr)
		}

		return nil
	})
	if err != nil {
		return nil, mapTransportError(err)
	}

	return resp, nil
}
