package http

import (
	"context"
	"sort"
	"time"

	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts a go-redis client to HealthChecker.
type RedisChecker struct {
	Client *redis.Client
}

func (r RedisChecker) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

type HealthHandler struct {
	deps      map[string]HealthChecker
	providers map[string]bool
	stats     *metrics.ProviderRegistry
	guards    []*resilience.Guard
}

// NewHealthHandler builds the probes. providers maps each provider name to
// whether credentials are present.
func NewHealthHandler(providers map[string]bool, stats *metrics.ProviderRegistry, guards ...*resilience.Guard) *HealthHandler {
	return &HealthHandler{
		deps:      make(map[string]HealthChecker),
		providers: providers,
		stats:     stats,
		guards:    guards,
	}
}

// WithDependency adds a checker consulted by /ready.
func (h *HealthHandler) WithDependency(name string, c HealthChecker) *HealthHandler {
	if c != nil {
		h.deps[name] = c
	}
	return h
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
	app.Get("/health/providers", h.Providers)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready fails when a dependency is down or no provider is configured.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			checks[name] = "healthy"
		}
	}

	anyProvider := false
	for name, ok := range h.providers {
		if ok {
			checks[name] = "configured"
			anyProvider = true
		} else {
			checks[name] = "not configured"
		}
	}
	if !anyProvider {
		allHealthy = false
	}

	status := "ready"
	statusCode := fiber.StatusOK
	if !allHealthy {
		status = "not ready"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type breakerStatus struct {
	Name                string `json:"name"`
	State               string `json:"state"`
	Requests            uint32 `json:"requests"`
	ConsecutiveFailures uint32 `json:"consecutiveFailures"`
}

// Providers reports call stats and breaker states.
func (h *HealthHandler) Providers(c *fiber.Ctx) error {
	breakers := make([]breakerStatus, 0, len(h.guards))
	for _, g := range h.guards {
		if g == nil {
			continue
		}
		counts := g.Counts()
		breakers = append(breakers, breakerStatus{
			Name:                g.Name(),
			State:               g.State(),
			Requests:            counts.Requests,
			ConsecutiveFailures: counts.ConsecutiveFailures,
		})
	}
	sort.Slice(breakers, func(i, j int) bool { return breakers[i].Name < breakers[j].Name })

	var stats []metrics.ProviderStats
	if h.stats != nil {
		stats = h.stats.Snapshot()
	}
	if stats == nil {
		stats = []metrics.ProviderStats{}
	}

	return c.JSON(fiber.Map{
		"configured": h.providers,
		"providers":  stats,
		"breakers":   breakers,
	})
}
