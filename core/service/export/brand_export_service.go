// Package export renders a reconciled brand kit into downloadable files.
package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/core/port/out"
	"brand_server/pkg/colormath"
	"brand_server/pkg/logger"
)

// Renderer produces one artifact format from a normalized kit.
type Renderer interface {
	Render(ctx context.Context, kit domain.BrandKit) ([]byte, error)
}

// CacheMetrics counts export cache lookups.
type CacheMetrics struct {
	Hits    atomic.Int64
	Misses  atomic.Int64
	Renders atomic.Int64
}

// Service dispatches exports to renderers and caches the results.
type Service struct {
	renderers map[domain.ExportFormat]Renderer
	cache     out.ExportCache // nil disables caching
	ttl       time.Duration
	flight    singleflight.Group
	metrics   CacheMetrics
}

var _ in.ExportService = (*Service)(nil)

// NewService wires the SVG, PNG and PDF renderers. cache may be nil.
func NewService(recon in.ReconcileService, cache out.ExportCache, ttl time.Duration) *Service {
	return &Service{
		renderers: map[domain.ExportFormat]Renderer{
			domain.ExportFormatSVG: NewSVGRenderer(recon),
			domain.ExportFormatPNG: NewPNGRenderer(),
			domain.ExportFormatPDF: NewPDFRenderer(recon),
		},
		cache: cache,
		ttl:   ttl,
	}
}

// Metrics exposes the cache counters.
func (s *Service) Metrics() *CacheMetrics { return &s.metrics }

// Export renders kit as format. Concurrent identical exports share one render.
func (s *Service) Export(ctx context.Context, kit domain.BrandKit, format domain.ExportFormat) (*in.ExportArtifact, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported export format %q", domain.ErrContractViolation, format)
	}
	kit, err := Normalize(kit)
	if err != nil {
		return nil, err
	}

	artifact := &in.ExportArtifact{
		FileName:    kit.FileName(format),
		ContentType: format.ContentType(),
	}

	key, err := CacheKey(kit, format)
	if err != nil {
		return nil, err
	}

	if data, ok := s.lookup(ctx, key); ok {
		artifact.Data = data
		artifact.Cached = true
		return artifact, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		start := time.Now()
		data, err := r.Render(ctx, kit)
		if err != nil {
			return nil, err
		}
		s.metrics.Renders.Add(1)
		logger.WithContext(ctx).WithFields(map[string]any{
			"format": string(format),
			"bytes":  len(data),
		}).WithDuration(time.Since(start)).Info("[ExportService] rendered")
		s.store(ctx, key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	artifact.Data = v.([]byte)
	return artifact, nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, out.ErrCacheMiss) {
			logger.WithContext(ctx).WithError(err).Warn("[ExportService] cache get failed")
		}
		s.metrics.Misses.Add(1)
		return nil, false
	}
	s.metrics.Hits.Add(1)
	return data, true
}

func (s *Service) store(ctx context.Context, key string, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.WithContext(ctx).WithError(err).Warn("[ExportService] cache set failed")
	}
}

// Normalize validates kit and fills the derived fields: canonical color and
// the color scheme of the selected color.
func Normalize(kit domain.BrandKit) (domain.BrandKit, error) {
	if err := kit.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidHexColor) {
			err = fmt.Errorf("%w: %w", domain.ErrContractViolation, err)
		}
		return kit, err
	}
	kit.CompanyName = strings.TrimSpace(kit.CompanyName)
	kit.Font = strings.TrimSpace(kit.Font)

	color, err := domain.ParseHexColor(string(kit.Color))
	if err != nil {
		return kit, fmt.Errorf("%w: %w", domain.ErrContractViolation, err)
	}
	kit.Color = color

	if kit.Scheme.Base != string(color) {
		scheme, _ := colormath.DeriveScheme(string(color))
		kit.Scheme = scheme
	}
	return kit, nil
}

// CacheKey is the format plus a digest of the kit's JSON encoding.
func CacheKey(kit domain.BrandKit, format domain.ExportFormat) (string, error) {
	b, err := json.Marshal(kit)
	if err != nil {
		return "", fmt.Errorf("encode kit: %w", err)
	}
	sum := sha256.Sum256(b)
	return string(format) + ":" + hex.EncodeToString(sum[:]), nil
}
