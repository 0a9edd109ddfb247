package domain

import "errors"

// Error taxonomy of the generation core. Callers match with errors.Is; the
// HTTP layer maps each to an apperr code.
var (
	// ErrProviderCallFailure is a network, auth or quota failure of one provider call.
	ErrProviderCallFailure = errors.New("provider call failed")

	// ErrMalformedProviderResponse is a successful call whose payload cannot be used.
	// It is never repaired.
	ErrMalformedProviderResponse = errors.New("malformed provider response")

	// ErrContractViolation is structurally invalid caller input.
	ErrContractViolation = errors.New("contract violation")

	// ErrInvalidHexColor is a color that is not six hex digits.
	ErrInvalidHexColor = errors.New("invalid hex color")

	// ErrProviderNotConfigured means no credentials exist for the requested provider.
	ErrProviderNotConfigured = errors.New("provider not configured")
)
