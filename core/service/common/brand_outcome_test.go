package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"brand_server/core/domain"
	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want metrics.Outcome
	}{
		{"nil", nil, metrics.OutcomeSuccess},
		{"open", fmt.Errorf("x: %w", resilience.ErrCircuitOpen), metrics.OutcomeRejected},
		{"timeout", resilience.ErrCallTimeout, metrics.OutcomeTimeout},
		{"deadline", context.DeadlineExceeded, metrics.OutcomeTimeout},
		{"malformed", fmt.Errorf("%w: no svg", domain.ErrMalformedProviderResponse), metrics.OutcomeMalformed},
		{"other", errors.New("dns"), metrics.OutcomeFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestProviderError(t *testing.T) {
	assert.NoError(t, ProviderError("p", nil))

	err := ProviderError("mistral", resilience.ErrCallTimeout)
	assert.ErrorIs(t, err, domain.ErrProviderCallFailure)
	assert.ErrorIs(t, err, resilience.ErrCallTimeout)

	malformed := fmt.Errorf("%w: bad", domain.ErrMalformedProviderResponse)
	assert.Same(t, malformed, ProviderError("p", malformed))
}
