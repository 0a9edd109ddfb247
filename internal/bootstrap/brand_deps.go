package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"brand_server/adapter/out/cache"
	"brand_server/config"
	"brand_server/core/agent/llm"
	"brand_server/core/domain"
	"brand_server/core/port/out"
	"brand_server/core/service/export"
	"brand_server/core/service/logo"
	"brand_server/core/service/reconcile"
	"brand_server/core/service/suggest"
	"brand_server/pkg/httputil"
	"brand_server/pkg/logger"
	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"

	"github.com/redis/go-redis/v9"
)

// memoryCacheSize bounds the in-process export cache used without Redis.
const memoryCacheSize = 256

type Dependencies struct {
	Config *config.Config
	Redis  *redis.Client

	// Provider bookkeeping
	Stats     *metrics.ProviderRegistry
	Guards    []*resilience.Guard
	Providers map[string]bool

	// Services
	SuggestionService *suggest.Service
	LogoService       *logo.Service
	ReconcileService  *reconcile.Service
	PaletteService    *reconcile.PaletteService
	ExportService     *export.Service
	ExportCache       out.ExportCache
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{
		Config:    cfg,
		Stats:     metrics.NewProviderRegistry(500),
		Providers: make(map[string]bool),
	}
	var cleanups []func()

	guardCfg := resilience.GuardConfig{
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpen,
		CallTimeout: cfg.ProviderTimeout,
	}
	anthropicHTTP := httputil.NewOptimizedClient(httputil.AnthropicClientConfig())
	fanOutHTTP := httputil.NewOptimizedClient(httputil.FanOutClientConfig(cfg.LogoVariantCount))

	// Suggestion provider
	suggestGen, err := newSuggestGenerator(cfg, anthropicHTTP)
	if err != nil {
		return nil, nil, err
	}
	var suggestGuard *resilience.Guard
	if suggestGen != nil {
		gc := guardCfg
		gc.Name = cfg.SuggestProvider + ":suggest"
		suggestGuard = resilience.NewGuard(gc)
		deps.Guards = append(deps.Guards, suggestGuard)
	} else {
		logger.Warn("Suggestion provider %s not configured", cfg.SuggestProvider)
	}
	deps.Providers[cfg.SuggestProvider] = suggestGen != nil
	deps.SuggestionService = suggest.NewService(suggestGen, suggestGuard, deps.Stats, suggest.Config{
		MaxTokens:   cfg.SuggestMaxTokens,
		Temperature: cfg.SuggestTemperature,
	})

	// Logo fan-out
	var primary, variant out.TextGenerator
	if g, err := llm.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModelLogo, anthropicHTTP); err == nil {
		primary = g
	} else if !errors.Is(err, domain.ErrProviderNotConfigured) {
		return nil, nil, err
	}
	if g, err := llm.NewMistralGenerator(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralModel, fanOutHTTP); err == nil {
		variant = g
	} else if !errors.Is(err, domain.ErrProviderNotConfigured) {
		return nil, nil, err
	}
	deps.Providers[domain.ProviderAnthropic] = deps.Providers[domain.ProviderAnthropic] || primary != nil
	deps.Providers[domain.ProviderMistral] = deps.Providers[domain.ProviderMistral] || variant != nil

	plan := logo.Plan(primary, variant, cfg.LogoVariantCount, guardCfg)
	deps.LogoService = logo.NewService(plan, deps.Stats, logo.Config{
		MaxTokens:   cfg.LogoMaxTokens,
		Temperature: cfg.LogoTemperature,
	})
	seen := make(map[*resilience.Guard]bool)
	for _, spec := range deps.LogoService.Slots() {
		if spec.Guard != nil && !seen[spec.Guard] {
			seen[spec.Guard] = true
			deps.Guards = append(deps.Guards, spec.Guard)
		}
	}
	logger.Info("Logo fan-out planned: %d slots (anthropic=%t, mistral=%t)",
		len(plan), primary != nil, variant != nil)

	// Export cache: Redis when configured, in-process LRU otherwise
	if cfg.ExportCacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Warn("Redis connection failed, using in-memory export cache: %v", err)
		} else {
			deps.Redis = client
			deps.ExportCache = cache.NewRedisExportCache(client, "")
			cleanups = append(cleanups, func() { client.Close() })
			logger.Info("Export cache backed by Redis")
		}
	}
	if deps.ExportCache == nil {
		deps.ExportCache = cache.NewMemoryExportCache(memoryCacheSize, cfg.ExportCacheTTL)
	}

	deps.ReconcileService = reconcile.NewService()
	deps.PaletteService = reconcile.NewPaletteService()
	deps.ExportService = export.NewService(deps.ReconcileService, deps.ExportCache, cfg.ExportCacheTTL)

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return deps, cleanup, nil
}

// newSuggestGenerator returns nil, nil when the selected provider has no key.
func newSuggestGenerator(cfg *config.Config, client *http.Client) (out.TextGenerator, error) {
	var (
		gen out.TextGenerator
		err error
	)
	switch cfg.SuggestProvider {
	case domain.ProviderOpenAI:
		var g *llm.ChatGenerator
		if g, err = llm.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, client); err == nil {
			gen = g
		}
	case domain.ProviderMistral:
		var g *llm.ChatGenerator
		if g, err = llm.NewMistralGenerator(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralModel, client); err == nil {
			gen = g
		}
	default:
		var g *llm.AnthropicGenerator
		if g, err = llm.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel, client); err == nil {
			gen = g
		}
	}
	if errors.Is(err, domain.ErrProviderNotConfigured) {
		return nil, nil
	}
	return gen, err
}
