package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errUpstream = errors.New("upstream exploded")

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"contract", ContractViolation(errUpstream), CodeContractViolation, http.StatusBadRequest},
		{"call failure", ProviderCallFailure("anthropic", errUpstream), CodeProviderCallFailure, http.StatusBadGateway},
		{"malformed", MalformedProviderResponse("anthropic", errUpstream), CodeMalformedProviderResponse, http.StatusBadGateway},
		{"not configured", ProviderNotConfigured("mistral"), CodeProviderNotConfigured, http.StatusServiceUnavailable},
		{"timeout", Timeout("suggest"), CodeTimeout, http.StatusGatewayTimeout},
		{"not found", NotFound("route"), CodeNotFound, http.StatusNotFound},
		{"config", ConfigError("PORT is empty"), CodeConfigError, http.StatusInternalServerError},
		{"rate limited", RateLimited(3), CodeRateLimited, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestUnwrapChain(t *testing.T) {
	wrapped := fmt.Errorf("suggest: %w", ProviderCallFailure("openai", errUpstream))

	assert.True(t, errors.Is(wrapped, errUpstream))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, http.StatusBadGateway, AsAppError(wrapped).Status)
	assert.Equal(t, "upstream exploded", AsAppError(wrapped).Cause())
}

func TestAsAppError_PlainErrorBecomesInternal(t *testing.T) {
	ae := AsAppError(errUpstream)
	assert.Equal(t, CodeInternalError, ae.Code)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Same(t, errUpstream, ae.Err)
}

func TestWithDetail(t *testing.T) {
	ae := New("PAYLOAD_TOO_LARGE", "too large", http.StatusRequestEntityTooLarge).WithDetail("max_size", 10)
	assert.Equal(t, 10, ae.Details["max_size"])
	assert.Equal(t, "[PAYLOAD_TOO_LARGE] too large", ae.Error())
}
