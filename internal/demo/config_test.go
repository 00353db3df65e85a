package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlabs/agent-workshop/internal/logging"
	"github.com/finlabs/agent-workshop/internal/portfolio"
	"github.com/finlabs/agent-workshop/internal/tools"
)

func TestAllDemosResolve(t *testing.T) {
	ids := IDs()
	require.Len(t, ids, 10)

	for _, id := range ids {
		cfg, ok := Get(id)
		require.True(t, ok, id)
		assert.Equal(t, id, cfg.ID)
		assert.NotEmpty(t, cfg.SystemPrompt, id)
		assert.NotEmpty(t, cfg.Model, id)
		assert.NotEmpty(t, cfg.Suggestions, id)
	}
}

func TestUnknownDemo(t *testing.T) {
	_, ok := Get("math-advanced")
	assert.False(t, ok)
}

func TestBasicVariantsCarryNoTools(t *testing.T) {
	for _, id := range []string{"math-basic", "knowledge-basic"} {
		cfg, ok := Get(id)
		require.True(t, ok)
		assert.Empty(t, cfg.Tools, id)
	}
}

func TestMathEnhancedOmitsMultiply(t *testing.T) {
	cfg, ok := Get("math-enhanced")
	require.True(t, ok)
	assert.Contains(t, cfg.Tools, "add")
	assert.NotContains(t, cfg.Tools, "multiply")
}

func TestDemoToolsExistInCatalog(t *testing.T) {
	reg := tools.NewWorkshopRegistry(portfolio.NewStore(), "", logging.Nop())

	for _, id := range IDs() {
		cfg, _ := Get(id)
		scoped := reg.Scope(cfg.Tools)
		assert.Len(t, scoped, len(cfg.Tools), "demo %s references unknown tools", id)
	}
}

func TestPortfolioWriteSupersetOfRead(t *testing.T) {
	read, _ := Get("portfolio-read")
	write, _ := Get("portfolio-write")

	for _, name := range read.Tools {
		assert.Contains(t, write.Tools, name)
	}
	assert.Greater(t, len(write.Tools), len(read.Tools))
}

func TestToolsOverloadExcludesWorkingTools(t *testing.T) {
	cfg, _ := Get("tools-overload")
	assert.Len(t, cfg.Tools, 15)
	assert.NotContains(t, cfg.Tools, "get-stock-price")
	assert.NotContains(t, cfg.Tools, "convert-currency")
	assert.Contains(t, cfg.Tools, "portfolio-risk-assessment")
}

func TestSecurityVariantsDifferOnlyInSearchTool(t *testing.T) {
	normal, _ := Get("security-normal")
	malicious, _ := Get("security-malicious")

	assert.Contains(t, normal.Tools, "web-search-safe")
	assert.Contains(t, malicious.Tools, "web-search-compromised")
	assert.Contains(t, normal.Tools, "send-email")
	assert.Contains(t, malicious.Tools, "send-email")
}

func TestKnowledgeEnhancedEmbedsCurrentDate(t *testing.T) {
	cfg, _ := Get("knowledge-enhanced")
	assert.Contains(t, cfg.SystemPrompt, time.Now().Format("2006-01-02"))
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, 0.7, *cfg.Temperature)
	assert.Equal(t, 16000, cfg.MaxTokens)
}

func TestPDFSettings(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", PDFModel)
	assert.Equal(t, 4096, PDFMaxTokens)
	assert.Equal(t, 0.3, *PDFTemperature)

	for _, format := range []string{"excel", "markdown"} {
		assert.NotEmpty(t, PDFSystemPrompts[format])
		assert.True(t, strings.HasPrefix(PDFFormatInstructions[format], "\n\n"))
		assert.NotEmpty(t, PDFTool[format])
	}
}
