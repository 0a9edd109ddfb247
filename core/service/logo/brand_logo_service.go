// Package logo fans a single brand brief out to every configured logo
// provider and merges whatever comes back into one bundle.
package logo

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"brand_server/core/agent/llm"
	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/core/port/out"
	"brand_server/core/service/common"
	"brand_server/pkg/logger"
	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"
)

// SlotSpec is one planned provider call.
type SlotSpec struct {
	Name    string
	Role    domain.SlotRole
	Family  domain.LogoFamily
	Variant int // 1-based position among same-family siblings, 0 for the primary
	Total   int // number of same-family siblings

	// Provider is reported even when Gen is nil.
	Provider string
	Gen      out.TextGenerator
	Guard    *resilience.Guard
}

// Config holds the per-call budget.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 500, Temperature: 1.0}
}

// Plan builds the standard slot layout: one text-family primary slot and
// variantCount vector-family variant slots. Either generator may be nil; its
// slots are then reported absent. Each provider gets one breaker shared by
// its slots.
func Plan(primary, variant out.TextGenerator, variantCount int, guardCfg resilience.GuardConfig) []SlotSpec {
	plan := make([]SlotSpec, 0, variantCount+1)

	gc := guardCfg
	gc.Name = domain.ProviderAnthropic
	plan = append(plan, SlotSpec{
		Name:     domain.ProviderAnthropic,
		Role:     domain.SlotRolePrimary,
		Family:   domain.LogoFamilyText,
		Provider: providerName(primary, domain.ProviderAnthropic),
		Gen:      primary,
		Guard:    guardFor(primary, gc),
	})

	gc = guardCfg
	gc.Name = domain.ProviderMistral
	vguard := guardFor(variant, gc)
	for i := 1; i <= variantCount; i++ {
		plan = append(plan, SlotSpec{
			Name:     fmt.Sprintf("%s-%d", domain.ProviderMistral, i),
			Role:     domain.SlotRoleVariant,
			Family:   domain.LogoFamilyVector,
			Variant:  i,
			Total:    variantCount,
			Provider: providerName(variant, domain.ProviderMistral),
			Gen:      variant,
			Guard:    vguard,
		})
	}
	return plan
}

func providerName(gen out.TextGenerator, fallback string) string {
	if gen == nil {
		return fallback
	}
	return gen.Name()
}

func guardFor(gen out.TextGenerator, cfg resilience.GuardConfig) *resilience.Guard {
	if gen == nil {
		return nil
	}
	return resilience.NewGuard(cfg)
}

// Service is the logo generation orchestrator.
type Service struct {
	plan  []SlotSpec
	stats *metrics.ProviderRegistry
	cfg   Config
}

var _ in.LogoService = (*Service)(nil)

// NewService creates an orchestrator over a fixed slot plan.
func NewService(plan []SlotSpec, stats *metrics.ProviderRegistry, cfg Config) *Service {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultConfig().Temperature
	}
	for i := range plan {
		if plan[i].Gen != nil && plan[i].Guard == nil {
			plan[i].Guard = resilience.NewGuard(resilience.DefaultGuardConfig(plan[i].Provider))
		}
	}
	return &Service{plan: plan, stats: stats, cfg: cfg}
}

// Slots returns the configured plan.
func (s *Service) Slots() []SlotSpec {
	out := make([]SlotSpec, len(s.plan))
	copy(out, s.plan)
	return out
}

// Configured reports whether at least one slot has a provider behind it.
func (s *Service) Configured() bool {
	for _, spec := range s.plan {
		if spec.Gen != nil {
			return true
		}
	}
	return false
}

// Generate runs one fan-out round. Only an invalid request is an error;
// provider failures leave their slot absent and the bundle is returned once
// every call has settled.
func (s *Service) Generate(ctx context.Context, req in.LogoRequest) (*domain.LogoBundle, error) {
	if err := req.Facts.Validate(); err != nil {
		return nil, err
	}
	font := strings.TrimSpace(req.Font)
	if font == "" {
		return nil, fmt.Errorf("%w: selectedFont is required", domain.ErrContractViolation)
	}
	color, err := domain.ParseHexColor(string(req.Color))
	if err != nil {
		return nil, fmt.Errorf("%w: selectedColor: %w", domain.ErrContractViolation, err)
	}

	genID := uuid.New().String()
	ctx = context.WithValue(ctx, logger.GenerationIDKey, genID)
	brief := llm.BuildLogoBrief(req.Facts, font, color)

	start := time.Now()
	slots := make([]domain.LogoSlot, len(s.plan))

	var wg sync.WaitGroup
	for i, spec := range s.plan {
		wg.Add(1)
		go func(idx int, spec SlotSpec) {
			defer wg.Done()
			slots[idx] = s.runSlot(ctx, spec, brief)
		}(i, spec)
	}
	wg.Wait()

	bundle := &domain.LogoBundle{
		GenerationID: genID,
		Slots:        slots,
		CreatedAt:    time.Now().UTC(),
	}

	logger.WithContext(ctx).WithFields(map[string]any{
		"slots":     len(slots),
		"populated": bundle.Populated(),
	}).WithDuration(time.Since(start)).Info("[LogoService] fan-out settled")

	return bundle, nil
}

func (s *Service) runSlot(ctx context.Context, spec SlotSpec, brief string) (slot domain.LogoSlot) {
	slot = domain.LogoSlot{
		Name:     spec.Name,
		Role:     spec.Role,
		Family:   spec.Family,
		Provider: spec.Provider,
		Variant:  spec.Variant,
	}
	start := time.Now()

	var err error
	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).WithField("stack", string(debug.Stack())).
				Error("[LogoService] slot %s panicked: %v", spec.Name, r)
			err = fmt.Errorf("%w: %v", resilience.ErrCallPanicked, r)
			slot.SVG = nil
		}
		s.settle(ctx, spec, &slot, err, time.Since(start))
	}()

	if spec.Gen == nil {
		err = domain.ErrProviderNotConfigured
		return slot
	}

	req := out.CompletionRequest{
		System:      systemPrompt(spec.Family),
		Prompt:      brief,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	if spec.Role == domain.SlotRoleVariant && spec.Total > 1 {
		req.Prompt += llm.VariantInstruction(spec.Variant, spec.Total)
	}

	raw, err := resilience.Call(ctx, spec.Guard, func(ctx context.Context) (string, error) {
		return spec.Gen.Complete(ctx, req)
	})
	if err != nil {
		err = common.ProviderError(spec.Provider, err)
		return slot
	}

	svg, err := llm.ExtractSVG(raw)
	if err != nil {
		return slot
	}
	slot.SVG = &svg
	return slot
}

// settle records the slot outcome: one stats entry and one log line.
func (s *Service) settle(ctx context.Context, spec SlotSpec, slot *domain.LogoSlot, err error, elapsed time.Duration) {
	slot.DurationMs = elapsed.Milliseconds()
	if err != nil {
		slot.Error = slotReason(err)
	}

	outcome := common.Outcome(err)
	if spec.Gen != nil && s.stats != nil {
		s.stats.Record(spec.Provider, outcome, elapsed, err)
	}

	log := logger.WithContext(ctx).WithFields(map[string]any{
		"slot":     spec.Name,
		"provider": spec.Provider,
		"family":   string(spec.Family),
		"outcome":  string(outcome),
	}).WithDuration(elapsed)
	if err != nil {
		log.WithError(err).Warn("[LogoService] slot absent")
		return
	}
	log.Info("[LogoService] slot populated")
}

// slotReason is the short reason shown to clients for an absent slot.
func slotReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return domain.ErrProviderNotConfigured.Error()
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return "provider temporarily unavailable"
	case errors.Is(err, resilience.ErrCallTimeout), errors.Is(err, context.DeadlineExceeded):
		return "provider timed out"
	case errors.Is(err, domain.ErrMalformedProviderResponse):
		return domain.ErrMalformedProviderResponse.Error()
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return domain.ErrProviderCallFailure.Error()
	}
}

func systemPrompt(f domain.LogoFamily) string {
	if f == domain.LogoFamilyText {
		return llm.TextLogoSystemPrompt
	}
	return llm.VectorLogoSystemPrompt
}
