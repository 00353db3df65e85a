package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Mock market data. A real deployment would call out to a quote service.
var mockStockPrices = map[string]float64{
	"AAPL":  175.5,
	"GOOGL": 142.8,
	"MSFT":  378.9,
	"TSLA":  248.4,
	"AMZN":  168.2,
}

var mockExchangeRates = map[string]float64{
	"USD-EUR": 0.92,
	"USD-GBP": 0.79,
	"USD-JPY": 149.5,
	"EUR-USD": 1.09,
	"GBP-USD": 1.27,
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }

// stockPriceLookup is the shared implementation behind get-stock-price and
// its misleadingly named twin.
func stockPriceLookup(symbol string) any {
	price, ok := mockStockPrices[strings.ToUpper(symbol)]
	if !ok {
		return map[string]any{"success": false, "error": fmt.Sprintf("Stock %s not found", symbol)}
	}
	return map[string]any{
		"success":   true,
		"symbol":    strings.ToUpper(symbol),
		"price":     price,
		"currency":  "USD",
		"timestamp": nowISO(),
	}
}

// currencyConversion is the shared implementation behind convert-currency
// and its misleadingly named twin.
func currencyConversion(amount float64, from, to string) any {
	rateKey := strings.ToUpper(from) + "-" + strings.ToUpper(to)
	rate, ok := mockExchangeRates[rateKey]
	if !ok {
		return map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Exchange rate for %s not available", rateKey),
		}
	}
	return map[string]any{
		"success":   true,
		"original":  map[string]any{"amount": amount, "currency": strings.ToUpper(from)},
		"converted": map[string]any{"amount": round2(amount * rate), "currency": strings.ToUpper(to)},
		"rate":      rate,
		"timestamp": nowISO(),
	}
}

// NewGetStockPriceTool returns the current mock price for a symbol.
func NewGetStockPriceTool() Tool {
	schema := objectSchema(map[string]Property{
		"symbol": {Type: "string", Description: "Stock ticker symbol"},
	}, "symbol")

	return newTool("get-stock-price", "Retrieve current market price for stocks", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Symbol string `json:"symbol"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			return stockPriceLookup(in.Symbol), nil
		})
}

// NewConvertCurrencyTool converts between currencies at mock rates.
func NewConvertCurrencyTool() Tool {
	schema := objectSchema(map[string]Property{
		"amount": {Type: "number", Description: "Amount to convert"},
		"from":   {Type: "string", Description: "Source currency code"},
		"to":     {Type: "string", Description: "Target currency code"},
	}, "amount", "from", "to")

	return newTool("convert-currency", "Convert between different currencies", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Amount *float64 `json:"amount"`
				From   string   `json:"from"`
				To     string   `json:"to"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Amount == nil {
				return nil, toolError("amount is required")
			}
			return currencyConversion(*in.Amount, in.From, in.To), nil
		})
}

// NewGetCurrencyRateTool returns the rate only, without converting.
func NewGetCurrencyRateTool() Tool {
	schema := objectSchema(map[string]Property{
		"from": {Type: "string", Description: "Base currency"},
		"to":   {Type: "string", Description: "Quote currency"},
	}, "from", "to")

	return newTool("get-currency-rate", "Retrieve current exchange rate between currencies (rate only, no conversion)", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				From string `json:"from"`
				To   string `json:"to"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			rateKey := strings.ToUpper(in.From) + "-" + strings.ToUpper(in.To)
			rate, ok := mockExchangeRates[rateKey]
			if !ok {
				return map[string]any{"success": false, "error": fmt.Sprintf("Rate for %s not found", rateKey)}, nil
			}
			return map[string]any{
				"success":     true,
				"from":        strings.ToUpper(in.From),
				"to":          strings.ToUpper(in.To),
				"rate":        rate,
				"description": fmt.Sprintf("1 %s = %v %s", strings.ToUpper(in.From), rate, strings.ToUpper(in.To)),
			}, nil
		})
}

// NewCalculateExchangeTool multiplies an amount by a caller-provided rate.
func NewCalculateExchangeTool() Tool {
	schema := objectSchema(map[string]Property{
		"amount": {Type: "number", Description: "Amount to calculate"},
		"rate":   {Type: "number", Description: "Exchange rate to apply"},
	}, "amount", "rate")

	return newTool("calculate-exchange", "Perform currency calculations with user-provided exchange rate", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Amount *float64 `json:"amount"`
				Rate   *float64 `json:"rate"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Amount == nil || in.Rate == nil {
				return nil, toolError("amount and rate are required")
			}
			product := *in.Amount * *in.Rate
			return map[string]any{
				"success":     true,
				"calculation": product,
				"formula":     fmt.Sprintf("%v × %v = %v", *in.Amount, *in.Rate, product),
				"note":        "This is just a calculator, you need to provide the rate",
			}, nil
		})
}

// NewFetchStockDataTool returns historical data, not the current price.
func NewFetchStockDataTool() Tool {
	schema := objectSchema(map[string]Property{
		"ticker":   {Type: "string", Description: "Stock ticker"},
		"dataType": {Type: "string", Enum: []string{"price", "volume", "history"}, Default: "price"},
	}, "ticker")

	return newTool("fetch-stock-data", "Retrieve historical stock data and trading volumes", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Ticker   string `json:"ticker"`
				DataType string `json:"dataType"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.DataType == "" {
				in.DataType = "price"
			}
			return map[string]any{
				"success":  true,
				"ticker":   strings.ToUpper(in.Ticker),
				"dataType": in.DataType,
				"data": map[string]any{
					"open":       172.3,
					"high":       176.2,
					"low":        171.5,
					"volume":     48293847,
					"52WeekHigh": 199.62,
					"52WeekLow":  164.08,
				},
				"note": "Historical market data - for current price use a different tool",
			}, nil
		})
}

// NewLookupStockTool returns company info, not the price.
func NewLookupStockTool() Tool {
	schema := objectSchema(map[string]Property{
		"query": {Type: "string", Description: "Stock symbol or company name"},
	}, "query")

	return newTool("lookup-stock", "Get company information and business details", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Query string `json:"query"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"results": []map[string]any{{
					"symbol":      strings.ToUpper(in.Query),
					"name":        "Apple Inc.",
					"exchange":    "NASDAQ",
					"sector":      "Technology",
					"marketCap":   "2.89T",
					"description": "Consumer electronics and software company",
				}},
				"note": "Company information - does not include current price",
			}, nil
		})
}

// NewExchangeRateHistoryTool returns historical rates.
func NewExchangeRateHistoryTool() Tool {
	schema := objectSchema(map[string]Property{
		"baseCurrency":  {Type: "string", Description: "Base currency code"},
		"quoteCurrency": {Type: "string", Description: "Quote currency code"},
		"period":        {Type: "string", Enum: []string{"1D", "1W", "1M", "1Y"}, Default: "1D"},
	}, "baseCurrency", "quoteCurrency")

	return newTool("exchange-rate-history", "Retrieve historical exchange rate data", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				BaseCurrency  string `json:"baseCurrency"`
				QuoteCurrency string `json:"quoteCurrency"`
				Period        string `json:"period"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Period == "" {
				in.Period = "1D"
			}
			return map[string]any{
				"success": true,
				"pair":    in.BaseCurrency + "/" + in.QuoteCurrency,
				"period":  in.Period,
				"history": []map[string]any{
					{"date": "2024-01-20", "rate": 0.921},
					{"date": "2024-01-21", "rate": 0.919},
					{"date": "2024-01-22", "rate": 0.92},
				},
				"average": 0.92,
				"trend":   "stable",
			}, nil
		})
}

// currencySymbols covers the mock rate table for display formatting.
var currencySymbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥",
}

// NewFormatCurrencyTool formats an amount for display, without converting.
func NewFormatCurrencyTool() Tool {
	schema := objectSchema(map[string]Property{
		"value":    {Type: "number", Description: "Numeric value"},
		"currency": {Type: "string", Description: "Currency code"},
	}, "value", "currency")

	return newTool("format-currency", "Format currency amounts for display", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Value    *float64 `json:"value"`
				Currency string   `json:"currency"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Value == nil {
				return nil, toolError("value is required")
			}

			code := strings.ToUpper(in.Currency)
			symbol, ok := currencySymbols[code]
			if !ok {
				symbol = code + " "
			}
			return map[string]any{
				"success":   true,
				"original":  *in.Value,
				"formatted": fmt.Sprintf("%s%.2f", symbol, *in.Value),
				"locale":    "en-US",
				"note":      "This only formats numbers, doesn't convert between currencies",
			}, nil
		})
}

// NewGetQuoteTool returns delayed quotes.
func NewGetQuoteTool() Tool {
	schema := objectSchema(map[string]Property{
		"symbol":    {Type: "string", Description: "Symbol to quote"},
		"quoteType": {Type: "string", Enum: []string{"stock", "forex", "crypto"}, Default: "stock"},
	}, "symbol")

	return newTool("get-quote", "Get delayed stock quotes (15-minute delay)", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Symbol    string `json:"symbol"`
				QuoteType string `json:"quoteType"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.QuoteType == "" {
				in.QuoteType = "stock"
			}
			if in.QuoteType != "stock" {
				return map[string]any{"success": false, "error": fmt.Sprintf("Quote type %s not supported", in.QuoteType)}, nil
			}
			return map[string]any{
				"success": true,
				"symbol":  in.Symbol,
				"quote": map[string]any{
					"bid":           175.48,
					"ask":           175.52,
					"last":          175.5,
					"change":        1.23,
					"percentChange": "+0.71%",
				},
				"delay": "15 minutes",
				"note":  "Delayed quotes - may not reflect current price",
			}, nil
		})
}

// NewCurrencyCalculatorTool does basic arithmetic, no conversion.
func NewCurrencyCalculatorTool() Tool {
	schema := objectSchema(map[string]Property{
		"operation": {Type: "string", Enum: []string{"add", "subtract", "multiply", "divide"}},
		"value1":    {Type: "number", Description: "First value"},
		"value2":    {Type: "number", Description: "Second value"},
	}, "operation", "value1", "value2")

	return newTool("currency-calculator", "Basic arithmetic calculator for currency amounts", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Operation string   `json:"operation"`
				Value1    *float64 `json:"value1"`
				Value2    *float64 `json:"value2"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Value1 == nil || in.Value2 == nil {
				return nil, toolError("value1 and value2 are required")
			}

			var result float64
			switch in.Operation {
			case "add":
				result = *in.Value1 + *in.Value2
			case "subtract":
				result = *in.Value1 - *in.Value2
			case "multiply":
				result = *in.Value1 * *in.Value2
			case "divide":
				result = *in.Value1 / *in.Value2
			default:
				return nil, toolError("unknown operation: " + in.Operation)
			}

			return map[string]any{
				"success":     true,
				"result":      result,
				"operation":   in.Operation,
				"calculation": fmt.Sprintf("%v %s %v = %v", *in.Value1, in.Operation, *in.Value2, result),
				"note":        "Basic calculator - doesn't handle currency conversion",
			}, nil
		})
}

// NewGetMarketDataTool returns general market data.
func NewGetMarketDataTool() Tool {
	schema := objectSchema(map[string]Property{
		"market":    {Type: "string", Description: "Market identifier"},
		"dataPoint": {Type: "string", Description: "Specific data to retrieve"},
	}, "market", "dataPoint")

	return newTool("get-market-data", "Retrieve general market indices and sector data", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Market    string `json:"market"`
				DataPoint string `json:"dataPoint"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			return map[string]any{
				"success":    true,
				"market":     in.Market,
				"dataPoint":  in.DataPoint,
				"value":      "Market closed",
				"lastUpdate": "4:00 PM EST",
				"note":       "General market data - use specific tools for stock prices",
			}, nil
		})
}

// NewPerformExchangeTool only handles crypto pairs, so it always declines.
func NewPerformExchangeTool() Tool {
	schema := objectSchema(map[string]Property{
		"amount": {Type: "number", Description: "Amount to exchange"},
		"pair":   {Type: "string", Description: "Trading pair (e.g., BTC/USD)"},
	}, "amount", "pair")

	return newTool("perform-exchange", "Exchange cryptocurrencies only", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Amount *float64 `json:"amount"`
				Pair   string   `json:"pair"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			return map[string]any{
				"success":    false,
				"error":      "This tool is for cryptocurrency exchanges only",
				"suggestion": "Use convertCurrency for fiat currency conversion",
			}, nil
		})
}

// NewCheckPriceTool returns historical closing prices.
func NewCheckPriceTool() Tool {
	schema := objectSchema(map[string]Property{
		"item": {Type: "string", Description: "Item to check price for"},
		"date": {Type: "string", Description: "Date for historical price"},
	}, "item")

	return newTool("check-price", "Check historical closing prices", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Item string `json:"item"`
				Date string `json:"date"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			date := in.Date
			if date == "" {
				date = "historical"
			}
			return map[string]any{
				"success": true,
				"item":    in.Item,
				"priceHistory": map[string]any{
					"2024-01-01": 168.5,
					"2024-01-15": 172.3,
					"current":    "Use getStockPrice for current price",
				},
				"date": date,
			}, nil
		})
}

// NewForexConvertTool only supports EUR to GBP.
func NewForexConvertTool() Tool {
	schema := objectSchema(map[string]Property{
		"sum":            {Type: "number", Description: "Sum to convert"},
		"sourceCurrency": {Type: "string", Description: "Source currency"},
		"targetCurrency": {Type: "string", Description: "Target currency"},
	}, "sum", "sourceCurrency", "targetCurrency")

	return newTool("forex-convert", "Convert between EUR and GBP only", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Sum            *float64 `json:"sum"`
				SourceCurrency string   `json:"sourceCurrency"`
				TargetCurrency string   `json:"targetCurrency"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Sum != nil && in.SourceCurrency == "EUR" && in.TargetCurrency == "GBP" {
				return map[string]any{
					"success":   true,
					"converted": *in.Sum * 0.86,
					"note":      "This tool only supports EUR/GBP conversion",
				}, nil
			}
			return map[string]any{
				"success":    false,
				"error":      "This tool only supports EUR to GBP conversion",
				"suggestion": "Use convertCurrency for other pairs",
			}, nil
		})
}

// NewAnalyzeStockTool returns technical analysis without a price.
func NewAnalyzeStockTool() Tool {
	schema := objectSchema(map[string]Property{
		"ticker": {Type: "string", Description: "Stock ticker to analyze"},
	}, "ticker")

	return newTool("analyze-stock", "Perform technical analysis without price data", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Ticker string `json:"ticker"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			return map[string]any{
				"success": true,
				"ticker":  in.Ticker,
				"analysis": map[string]any{
					"recommendation": "Buy",
					"targetPrice":    195.0,
					"rsi":            45.2,
					"movingAverage":  172.3,
					"sentiment":      "Bullish",
				},
				"note": "Analysis data only - current price not included",
			}, nil
		})
}

// NewPortfolioRiskAssessmentTool sounds like compliance analysis but is
// actually a stock price lookup. Part of the tool-overload demo.
func NewPortfolioRiskAssessmentTool() Tool {
	schema := objectSchema(map[string]Property{
		"complianceEntity": {Type: "string", Description: "Stock symbol for risk assessment"},
	}, "complianceEntity")

	return newTool("portfolio-risk-assessment",
		"Comprehensive portfolio risk analysis and regulatory compliance validation for investment decision-making",
		schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				ComplianceEntity string `json:"complianceEntity"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			return stockPriceLookup(in.ComplianceEntity), nil
		})
}

// NewTaxLiabilityCalculatorTool sounds like tax math but is actually a
// currency conversion. Part of the tool-overload demo.
func NewTaxLiabilityCalculatorTool() Tool {
	schema := objectSchema(map[string]Property{
		"taxableAmount":      {Type: "number", Description: "Transaction amount for tax calculation"},
		"sourceJurisdiction": {Type: "string", Description: "Source jurisdiction currency"},
		"targetJurisdiction": {Type: "string", Description: "Target jurisdiction currency"},
	}, "taxableAmount", "sourceJurisdiction", "targetJurisdiction")

	return newTool("tax-liability-calculator",
		"Calculate tax implications and jurisdictional liability for cross-border financial transactions",
		schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				TaxableAmount      *float64 `json:"taxableAmount"`
				SourceJurisdiction string   `json:"sourceJurisdiction"`
				TargetJurisdiction string   `json:"targetJurisdiction"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.TaxableAmount == nil {
				return nil, toolError("taxableAmount is required")
			}
			return currencyConversion(*in.TaxableAmount, in.SourceJurisdiction, in.TargetJurisdiction), nil
		})
}
