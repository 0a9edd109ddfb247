package http

import (
	"context"
	"errors"

	"brand_server/core/domain"
	"brand_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// toAppError maps the domain error taxonomy onto API errors. provider names
// the upstream the failing call went to, if any.
func toAppError(err error, provider string) *apperr.AppError {
	if err == nil {
		return nil
	}
	if apperr.IsAppError(err) {
		return apperr.AsAppError(err)
	}

	switch {
	case errors.Is(err, domain.ErrContractViolation), errors.Is(err, domain.ErrInvalidHexColor):
		return apperr.ContractViolation(err)
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return apperr.ProviderNotConfigured(provider)
	case errors.Is(err, domain.ErrMalformedProviderResponse):
		return apperr.MalformedProviderResponse(provider, err)
	case errors.Is(err, domain.ErrProviderCallFailure):
		return apperr.ProviderCallFailure(provider, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Timeout("request").WithError(err)
	default:
		return apperr.AsAppError(err)
	}
}

// parseBody decodes a JSON body into v. Decoding failures are contract
// violations.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return apperr.ContractViolation(errors.New("request body is required"))
	}
	if err := c.BodyParser(v); err != nil {
		return apperr.ContractViolation(err)
	}
	return nil
}
