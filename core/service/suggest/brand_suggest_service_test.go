package suggest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand_server/core/domain"
	"brand_server/core/port/out"
	"brand_server/pkg/metrics"
	"brand_server/pkg/resilience"
)

type fakeGenerator struct {
	reply string
	err   error
	calls atomic.Int32
	last  out.CompletionRequest
}

func (f *fakeGenerator) Name() string  { return "fake" }
func (f *fakeGenerator) Model() string { return "fake-1" }
func (f *fakeGenerator) Complete(_ context.Context, req out.CompletionRequest) (string, error) {
	f.calls.Add(1)
	f.last = req
	return f.reply, f.err
}

func testFacts() domain.BrandInputFacts {
	return domain.BrandInputFacts{
		CompanyName:    "Acme",
		ProductType:    domain.ProductTypeSaaS,
		CompanyProfile: "Builds rockets",
		ProductValues:  []string{"Trust", "Speed"},
		Customers:      "Coyotes",
	}
}

const validReply = `{"fonts":{"option1":"Inter","option2":"Lora","option3":"Roboto Mono"},` +
	`"colors":{"option1":"#1A2B3C","option2":"ff0000","option3":"#00ff00"}}`

func newTestService(gen out.TextGenerator) (*Service, *metrics.ProviderRegistry) {
	stats := metrics.NewProviderRegistry(16)
	guard := resilience.NewGuard(resilience.DefaultGuardConfig("fake"))
	return NewService(gen, guard, stats, DefaultConfig()), stats
}

func TestSuggest_Success(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	svc, stats := newTestService(gen)

	res, err := svc.Suggest(context.Background(), testFacts())
	require.NoError(t, err)

	assert.NotEmpty(t, res.GenerationID)
	assert.Equal(t, "fake", res.Provider)
	assert.Equal(t, "Inter", res.Suggestion.Fonts.Option1)
	assert.Equal(t, "Roboto Mono", res.Suggestion.Fonts.Option3)
	assert.Equal(t, domain.HexColor("1a2b3c"), res.Suggestion.Colors.Option1)
	assert.Equal(t, domain.HexColor("ff0000"), res.Suggestion.Colors.Option2)

	assert.Equal(t, int32(1), gen.calls.Load())
	assert.True(t, gen.last.JSON)
	assert.Equal(t, 1000, gen.last.MaxTokens)
	assert.InDelta(t, 0.7, gen.last.Temperature, 1e-9)
	assert.Contains(t, gen.last.Prompt, "Acme")

	snap := stats.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(1), snap[0].Outcomes[metrics.OutcomeSuccess])
}

func TestSuggest_InvalidFactsMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{reply: validReply}
	svc, _ := newTestService(gen)

	facts := testFacts()
	facts.ProductValues = nil

	_, err := svc.Suggest(context.Background(), facts)
	assert.ErrorIs(t, err, domain.ErrContractViolation)
	assert.Equal(t, int32(0), gen.calls.Load())
}

func TestSuggest_ProviderFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection reset")}
	svc, stats := newTestService(gen)

	_, err := svc.Suggest(context.Background(), testFacts())
	assert.ErrorIs(t, err, domain.ErrProviderCallFailure)
	assert.Equal(t, int32(1), gen.calls.Load())

	snap := stats.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(1), snap[0].Outcomes[metrics.OutcomeFailure])
}

func TestSuggest_MalformedIsNotRetried(t *testing.T) {
	gen := &fakeGenerator{reply: `{"fonts":{"option1":"Inter"}}`}
	svc, stats := newTestService(gen)

	_, err := svc.Suggest(context.Background(), testFacts())
	assert.ErrorIs(t, err, domain.ErrMalformedProviderResponse)
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, int64(1), stats.Snapshot()[0].Outcomes[metrics.OutcomeMalformed])
}

func TestSuggest_NoProvider(t *testing.T) {
	svc := NewService(nil, nil, nil, DefaultConfig())
	_, err := svc.Suggest(context.Background(), testFacts())
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestParseSuggestion(t *testing.T) {
	t.Run("fenced reply", func(t *testing.T) {
		s, err := ParseSuggestion("```json\n" + validReply + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Lora", s.Fonts.Option2)
		assert.Equal(t, domain.HexColor("00ff00"), s.Colors.Option3)
	})

	t.Run("fonts are trimmed", func(t *testing.T) {
		s, err := ParseSuggestion(`{"fonts":{"option1":" Inter ","option2":"Lora","option3":"Arial"},` +
			`"colors":{"option1":"111111","option2":"222222","option3":"333333"}}`)
		require.NoError(t, err)
		assert.Equal(t, "Inter", s.Fonts.Option1)
	})

	malformed := map[string]string{
		"not json":      "Here are some fonts: Inter, Lora",
		"prose around":  "Sure! " + validReply,
		"missing color": `{"fonts":{"option1":"a","option2":"b","option3":"c"},"colors":{"option1":"111111","option2":"222222"}}`,
		"empty font":    `{"fonts":{"option1":"a","option2":"  ","option3":"c"},"colors":{"option1":"111111","option2":"222222","option3":"333333"}}`,
		"short hex":     `{"fonts":{"option1":"a","option2":"b","option3":"c"},"colors":{"option1":"#fff","option2":"222222","option3":"333333"}}`,
		"named color":   `{"fonts":{"option1":"a","option2":"b","option3":"c"},"colors":{"option1":"red","option2":"222222","option3":"333333"}}`,
		"empty reply":   "",
	}
	for name, raw := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSuggestion(raw)
			assert.ErrorIs(t, err, domain.ErrMalformedProviderResponse)
		})
	}
}
