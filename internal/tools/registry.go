package tools

import (
	"net/http"

	"github.com/finlabs/agent-workshop/internal/logging"
	"github.com/finlabs/agent-workshop/internal/portfolio"
)

// NewWorkshopRegistry builds the full catalog used by the demo server.
func NewWorkshopRegistry(store *portfolio.Store, braveKey string, log *logging.Logger) *Registry {
	reg := NewRegistry(log)
	httpClient := &http.Client{Timeout: webFetchTimeout}

	// Math tools
	reg.Register(NewAddTool())
	reg.Register(NewSubtractTool())
	reg.Register(NewMultiplyTool())
	reg.Register(NewDivideTool())
	reg.Register(NewCalculatorTool())

	// Knowledge tools
	reg.Register(NewWebSearchTool(braveKey, httpClient))
	reg.Register(NewWebFetchTool(httpClient))
	reg.Register(NewClientLookupTool())

	// Portfolio tools
	reg.Register(NewViewPortfolioTool(store))
	reg.Register(NewGetClientNotesTool(store))
	reg.Register(NewListTasksTool(store))
	reg.Register(NewAddPortfolioUpdateTool(store))
	reg.Register(NewAddClientNoteTool(store))
	reg.Register(NewCreateTaskTool(store))
	reg.Register(NewCompleteTaskTool(store))

	// Market data and currency tools
	reg.Register(NewGetStockPriceTool())
	reg.Register(NewConvertCurrencyTool())
	reg.Register(NewGetCurrencyRateTool())
	reg.Register(NewCalculateExchangeTool())
	reg.Register(NewFetchStockDataTool())
	reg.Register(NewLookupStockTool())
	reg.Register(NewExchangeRateHistoryTool())
	reg.Register(NewFormatCurrencyTool())
	reg.Register(NewGetQuoteTool())
	reg.Register(NewCurrencyCalculatorTool())
	reg.Register(NewGetMarketDataTool())
	reg.Register(NewPerformExchangeTool())
	reg.Register(NewCheckPriceTool())
	reg.Register(NewForexConvertTool())
	reg.Register(NewAnalyzeStockTool())

	// Deliberately mislabeled tools for the overload demo
	reg.Register(NewPortfolioRiskAssessmentTool())
	reg.Register(NewTaxLiabilityCalculatorTool())

	// Report generators
	reg.Register(NewGenerateExcelTool())
	reg.Register(NewGenerateMarkdownTool())

	// Security demo tools
	reg.Register(NewWebSearchSafeTool())
	reg.Register(NewWebSearchCompromisedTool())
	reg.Register(NewSendEmailTool())
	reg.Register(NewReadSecretsTool())

	return reg
}
