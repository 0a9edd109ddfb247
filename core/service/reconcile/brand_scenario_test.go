package reconcile_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand_server/core/domain"
	"brand_server/core/port/in"
	"brand_server/core/port/out"
	"brand_server/core/service/logo"
	"brand_server/core/service/reconcile"
	"brand_server/core/service/suggest"
	"brand_server/pkg/resilience"
)

type scriptedGenerator struct {
	name  string
	reply string

	mu      sync.Mutex
	prompts []string
}

func (g *scriptedGenerator) Name() string  { return g.name }
func (g *scriptedGenerator) Model() string { return g.name + "-test" }
func (g *scriptedGenerator) Complete(_ context.Context, req out.CompletionRequest) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, req.Prompt)
	g.mu.Unlock()
	return g.reply, nil
}

func TestBrandFlow_SuggestGenerateReconcile(t *testing.T) {
	ctx := context.Background()
	facts := domain.BrandInputFacts{
		CompanyName:    "Acme",
		ProductType:    domain.ProductTypeSaaS,
		CompanyProfile: "Rocket supplies for desert logistics",
		ProductValues:  []string{"Trust", "Quality"},
		Customers:      "Coyotes",
	}

	suggester := &scriptedGenerator{name: domain.ProviderAnthropic, reply: "```json\n" +
		`{"fonts":{"option1":"Inter","option2":"Playfair Display","option3":"Roboto"},` +
		`"colors":{"option1":"#1A2B3C","option2":"445566","option3":"ff8800"}}` + "\n```"}
	suggestion, err := suggest.NewService(suggester, nil, nil, suggest.DefaultConfig()).Suggest(ctx, facts)
	require.NoError(t, err)

	state := domain.NewBrandState(facts, suggestion.Suggestion)
	assert.Equal(t, "Inter", state.SelectedFont())
	assert.Equal(t, domain.HexColor("1a2b3c"), state.SelectedColor())

	wordmark := &scriptedGenerator{name: domain.ProviderAnthropic,
		reply: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512"><text x="256" y="256" font-family="Inter" fill="#1a2b3c">Acme</text></svg>`}
	mark := &scriptedGenerator{name: domain.ProviderMistral,
		reply: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512"><g fill="#1a2b3c"><path d="M10 10L500 500"/></g></svg>`}

	plan := logo.Plan(wordmark, mark, 2, resilience.DefaultGuardConfig("scenario"))
	bundle, err := logo.NewService(plan, nil, logo.DefaultConfig()).Generate(ctx, in.LogoRequest{
		Facts: facts,
		Font:  state.SelectedFont(),
		Color: state.SelectedColor(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, bundle.Populated())
	require.Len(t, wordmark.prompts, 1)
	assert.Contains(t, wordmark.prompts[0], "Primary Font: Inter")
	assert.Contains(t, wordmark.prompts[0], "Primary Color: #1a2b3c")

	state.SetBundle(bundle)
	require.NoError(t, state.Select("option2", "option3"))

	recon := reconcile.NewService()
	wordmarkOut, err := recon.CurrentLogo(state)
	require.NoError(t, err)

	root := parseDoc(t, wordmarkOut)
	assert.Equal(t, "0 0 512 512", root.SelectAttrValue("viewBox", ""))
	texts := root.FindElements(".//text")
	require.NotEmpty(t, texts)
	for _, text := range texts {
		assert.True(t, strings.HasPrefix(text.SelectAttrValue("font-family", ""), "'Playfair Display'"))
		assert.Equal(t, "#ff8800", text.SelectAttrValue("fill", ""))
	}

	require.NoError(t, state.SelectSlot("mistral-2"))
	markOut, err := recon.CurrentLogo(state)
	require.NoError(t, err)

	root = parseDoc(t, markOut)
	assert.Equal(t, "0 0 512 512", root.SelectAttrValue("viewBox", ""))
	assert.Equal(t, "#ff8800", root.FindElement(".//g").SelectAttrValue("fill", ""))
	assert.Equal(t, "M10 10L500 500", root.FindElement(".//path").SelectAttrValue("d", ""))
}

func parseDoc(t *testing.T, doc string) *etree.Element {
	t.Helper()
	d := etree.NewDocument()
	require.NoError(t, d.ReadFromString(doc))
	require.NotNil(t, d.Root())
	return d.Root()
}
