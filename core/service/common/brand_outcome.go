// Package common holds helpers shared by the generation services.
package common

import (
	"context"
	"errors"
	"fmt"

	"brand_server/core/domain"
	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"
)

// Outcome classifies a provider call result for the stats registry.
func Outcome(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return metrics.OutcomeRejected
	case errors.Is(err, resilience.ErrCallTimeout), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	case errors.Is(err, domain.ErrMalformedProviderResponse):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeFailure
	}
}

// ProviderError makes sure err carries one of the two provider sentinels.
// Guard failures (open breaker, timeout, panic) count as call failures.
func ProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMalformedProviderResponse) || errors.Is(err, domain.ErrProviderCallFailure) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", provider, domain.ErrProviderCallFailure, err)
}
