package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	braveSearchURL  = "https://api.search.brave.com/res/v1/web/search"
	webFetchTimeout = 15 * time.Second

	fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// braveResponse is the subset of the Brave Search API response we consume.
type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Age         string `json:"age"`
			Profile     *struct {
				Name string `json:"name"`
			} `json:"profile"`
		} `json:"results"`
	} `json:"web"`
}

// NewWebSearchTool queries the Brave Search API. Failures are reported
// inside the payload so the model can explain them to the user.
func NewWebSearchTool(apiKey string, client *http.Client) Tool {
	if client == nil {
		client = &http.Client{Timeout: webFetchTimeout}
	}

	schema := objectSchema(map[string]Property{
		"query":      {Type: "string", Description: "Search query - be specific and clear"},
		"maxResults": {Type: "number", Description: "Maximum number of results to return", Default: 5},
	}, "query")

	return newTool("web-search", "Search the web for current information", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in searchInput
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.MaxResults <= 0 {
				in.MaxResults = 5
			}

			results, err := braveSearch(ctx, client, apiKey, in.Query, in.MaxResults)
			if err != nil {
				return map[string]any{
					"query": in.Query,
					"results": []searchResult{{
						Title:   "Web Search Error",
						URL:     "https://brave.com/search/",
						Snippet: fmt.Sprintf("Web search failed: %v. Please check your BRAVE_API_KEY environment variable and try again.", err),
						Date:    todayISO(),
						Source:  "Error",
					}},
					"message":    fmt.Sprintf("Web search failed for %q. Error: %v", in.Query, err),
					"searchDate": todayISO(),
				}, nil
			}

			if len(results) == 0 {
				results = []searchResult{{
					Title:   fmt.Sprintf("No results found for %q", in.Query),
					URL:     "https://brave.com/search/",
					Snippet: fmt.Sprintf("No search results were found for %q. Try refining your search terms or checking for spelling errors.", in.Query),
					Date:    todayISO(),
					Source:  "Brave Search",
				}}
			}

			return map[string]any{
				"query":      in.Query,
				"results":    results,
				"message":    fmt.Sprintf("Found %d web search results for %q using Brave Search API. This provides access to current information from Brave's independent web index.", len(results), in.Query),
				"searchDate": todayISO(),
			}, nil
		})
}

func braveSearch(ctx context.Context, client *http.Client, apiKey, query string, maxResults int) ([]searchResult, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("BRAVE_API_KEY environment variable is not set")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(maxResults))
	params.Set("country", "us")
	params.Set("search_lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Subscription-Token", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Brave Search API responded with status %d", resp.StatusCode)
	}

	var data braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	raw := data.Web.Results
	if len(raw) > maxResults {
		raw = raw[:maxResults]
	}

	results := make([]searchResult, 0, len(raw))
	for _, r := range raw {
		source := ""
		if r.Profile != nil {
			source = r.Profile.Name
		}
		if source == "" {
			if u, err := url.Parse(r.URL); err == nil {
				source = u.Hostname()
			}
		}
		snippet := r.Description
		if snippet == "" {
			snippet = "No description available"
		}
		date := r.Age
		if date == "" {
			date = todayISO()
		}
		title := r.Title
		if title == "" {
			title = "No title"
		}
		results = append(results, searchResult{
			Title:   title,
			URL:     r.URL,
			Snippet: snippet,
			Date:    date,
			Source:  source,
		})
	}
	return results, nil
}

// NewWebFetchTool downloads a page and extracts its readable text.
func NewWebFetchTool(client *http.Client) Tool {
	if client == nil {
		client = &http.Client{Timeout: webFetchTimeout}
	}

	schema := objectSchema(map[string]Property{
		"url":       {Type: "string", Description: "Valid HTTP or HTTPS URL to fetch content from"},
		"maxLength": {Type: "number", Description: "Maximum number of characters to return from the page content", Default: 5000},
	}, "url")

	return newTool("web-fetch", "Fetch and extract text content from a specific web page URL", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				URL       string `json:"url"`
				MaxLength int    `json:"maxLength"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.MaxLength <= 0 {
				in.MaxLength = 5000
			}

			title, text, err := fetchPage(ctx, client, in.URL)
			if err != nil {
				msg := fmt.Sprintf("Failed to fetch content from %s. Error: %v", in.URL, err)
				return map[string]any{
					"url":           in.URL,
					"title":         "Error",
					"content":       msg,
					"contentLength": 0,
					"truncated":     false,
					"fetchDate":     nowISO(),
					"message":       msg,
				}, nil
			}

			truncated := len(text) > in.MaxLength
			content := text
			if truncated {
				content = truncateText(text, in.MaxLength) + "..."
			}

			host := in.URL
			if u, err := url.Parse(in.URL); err == nil {
				host = u.Hostname()
			}
			message := fmt.Sprintf("Successfully fetched content from %s. Content length: %d characters", host, len(text))
			if truncated {
				message += fmt.Sprintf(" (truncated to %d)", in.MaxLength)
			}
			message += "."

			return map[string]any{
				"url":           in.URL,
				"title":         title,
				"content":       content,
				"contentLength": len(text),
				"truncated":     truncated,
				"fetchDate":     nowISO(),
				"message":       message,
			}, nil
		})
}

// truncateText cuts s to at most max bytes without splitting a UTF-8 rune.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func fetchPage(ctx context.Context, client *http.Client, pageURL string) (title, text string, err error) {
	ctx, cancel := context.WithTimeout(ctx, webFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", err
	}

	return extractTitle(doc), extractText(doc), nil
}

// extractText pulls readable content, preferring main-content containers
// and headings over boilerplate.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, aside, .advertisement, .ads, .sidebar").Remove()

	selectors := []string{
		"main",
		"article",
		".content",
		".main-content",
		"h1, h2, h3, h4, h5, h6",
		"p",
	}

	var b strings.Builder
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				b.WriteString(text)
				b.WriteString("\n")
			}
		})
	}

	extracted := b.String()
	if len(extracted) < 100 {
		extracted = doc.Find("body").Text()
	}

	return strings.TrimSpace(strings.Join(strings.Fields(extracted), " "))
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return "No title found"
}
