// Package suggest turns brand facts into exactly three fonts and three colors.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"brand_server/core/agent/llm"
	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/core/port/out"
	"brand_server/core/service/common"
	"brand_server/pkg/colormath"
	"brand_server/pkg/logger"
	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"
)

// Config fixes the budget and creativity of the single provider call.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig matches the production defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 1000, Temperature: 0.7}
}

// Service handles font and color suggestion.
type Service struct {
	gen   out.TextGenerator
	guard *resilience.Guard
	stats *metrics.ProviderRegistry
	cfg   Config
}

var _ in.SuggestionService = (*Service)(nil)

// NewService creates a suggestion service. gen may be nil when no provider
// is configured; Suggest then fails with domain.ErrProviderNotConfigured.
func NewService(gen out.TextGenerator, guard *resilience.Guard, stats *metrics.ProviderRegistry, cfg Config) *Service {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultConfig().Temperature
	}
	if guard == nil && gen != nil {
		guard = resilience.NewGuard(resilience.DefaultGuardConfig(gen.Name()))
	}
	return &Service{gen: gen, guard: guard, stats: stats, cfg: cfg}
}

// Suggest issues exactly one provider call. Every failure is surfaced;
// nothing is retried, padded or repaired.
func (s *Service) Suggest(ctx context.Context, facts domain.BrandInputFacts) (*in.SuggestionResult, error) {
	if err := facts.Validate(); err != nil {
		return nil, err
	}
	if s.gen == nil {
		return nil, domain.ErrProviderNotConfigured
	}

	genID := uuid.New().String()
	ctx = context.WithValue(ctx, logger.GenerationIDKey, genID)
	log := logger.WithContext(ctx).WithFields(map[string]any{
		"provider": s.gen.Name(),
		"model":    s.gen.Model(),
	})

	req := out.CompletionRequest{
		System:      llm.SuggestionSystemPrompt,
		Prompt:      llm.BuildSuggestionPrompt(facts),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		JSON:        true,
	}

	start := time.Now()
	raw, err := resilience.Call(ctx, s.guard, func(ctx context.Context) (string, error) {
		return s.gen.Complete(ctx, req)
	})

	var suggestion domain.FontColorSuggestion
	if err == nil {
		suggestion, err = ParseSuggestion(raw)
	}
	elapsed := time.Since(start)
	if s.stats != nil {
		s.stats.Record(s.gen.Name(), common.Outcome(err), elapsed, err)
	}
	if err != nil {
		err = common.ProviderError(s.gen.Name(), err)
		log.WithError(err).WithDuration(elapsed).Warn("[SuggestService] suggestion failed")
		return nil, err
	}

	log.WithDuration(elapsed).Info("[SuggestService] suggestion ready")
	return &in.SuggestionResult{
		GenerationID: genID,
		Provider:     s.gen.Name(),
		Suggestion:   suggestion,
	}, nil
}

type rawSuggestion struct {
	Fonts  map[string]string `json:"fonts"`
	Colors map[string]string `json:"colors"`
}

// ParseSuggestion reads a provider reply. The reply must be one JSON object,
// optionally inside a single Markdown fence, holding option1..option3 for
// both fonts and colors.
func ParseSuggestion(raw string) (domain.FontColorSuggestion, error) {
	var result domain.FontColorSuggestion

	body := llm.StripFence(raw)
	var parsed rawSuggestion
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrMalformedProviderResponse, err)
	}

	fonts := make([]string, 0, len(domain.OptionKeys))
	colors := make([]domain.HexColor, 0, len(domain.OptionKeys))
	for _, key := range domain.OptionKeys {
		font, ok := parsed.Fonts[string(key)]
		font = strings.TrimSpace(font)
		if !ok || font == "" {
			return result, fmt.Errorf("%w: missing font %s", domain.ErrMalformedProviderResponse, key)
		}
		fonts = append(fonts, font)

		color, ok := parsed.Colors[string(key)]
		if !ok {
			return result, fmt.Errorf("%w: missing color %s", domain.ErrMalformedProviderResponse, key)
		}
		hex, valid := colormath.NormalizeHex(color)
		if !valid {
			return result, fmt.Errorf("%w: color %s %q is not a 6-digit hex value", domain.ErrMalformedProviderResponse, key, color)
		}
		colors = append(colors, domain.HexColor(hex))
	}

	result.Fonts = domain.Options[string]{Option1: fonts[0], Option2: fonts[1], Option3: fonts[2]}
	result.Colors = domain.Options[domain.HexColor]{Option1: colors[0], Option2: colors[1], Option3: colors[2]}
	return result, result.Validate()
}
