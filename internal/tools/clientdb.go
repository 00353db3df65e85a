package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// clientRecord is an entry in the mock proprietary client database.
type clientRecord struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Industry          string `json:"industry"`
	AUM               string `json:"aum"`
	PrimaryContact    string `json:"primaryContact"`
	Email             string `json:"email"`
	LastMeeting       string `json:"lastMeeting"`
	PortfolioStrategy string `json:"portfolioStrategy"`
	RiskProfile       string `json:"riskProfile"`
	RecentActivity    string `json:"recentActivity"`
	ComplianceNotes   string `json:"complianceNotes"`
}

var clientDatabase = map[string]clientRecord{
	"ACME Corp": {
		ID:                "CLI001",
		Name:              "ACME Corporation",
		Industry:          "Technology",
		AUM:               "$2.4B",
		PrimaryContact:    "Sarah Chen",
		Email:             "sarah.chen@acme.com",
		LastMeeting:       "2024-12-15",
		PortfolioStrategy: "Growth-focused technology investments",
		RiskProfile:       "Moderate-Aggressive",
		RecentActivity:    "Increased allocation to AI/ML sector by 15%",
		ComplianceNotes:   "Requires ESG screening for all investments",
	},
	"Global Industries": {
		ID:                "CLI002",
		Name:              "Global Industries Holdings",
		Industry:          "Manufacturing",
		AUM:               "$850M",
		PrimaryContact:    "Michael Rodriguez",
		Email:             "m.rodriguez@globalind.com",
		LastMeeting:       "2024-11-28",
		PortfolioStrategy: "Diversified value investing with dividend focus",
		RiskProfile:       "Conservative",
		RecentActivity:    "Rotating from tech to industrial REITs",
		ComplianceNotes:   "Board approval required for investments >$10M",
	},
	"Venture Capital Partners": {
		ID:                "CLI003",
		Name:              "Venture Capital Partners LLC",
		Industry:          "Financial Services",
		AUM:               "$1.2B",
		PrimaryContact:    "Amanda Thompson",
		Email:             "athompson@vcpartners.com",
		LastMeeting:       "2024-12-20",
		PortfolioStrategy: "Early-stage venture capital and growth equity",
		RiskProfile:       "High",
		RecentActivity:    "Launching new fintech-focused fund",
		ComplianceNotes:   "Subject to 506(b) private placement restrictions",
	},
	"Pension Fund Authority": {
		ID:                "CLI004",
		Name:              "State Pension Fund Authority",
		Industry:          "Public Sector",
		AUM:               "$5.8B",
		PrimaryContact:    "Robert Kim",
		Email:             "robert.kim@pensionauth.gov",
		LastMeeting:       "2024-10-15",
		PortfolioStrategy: "Long-term liability matching with inflation protection",
		RiskProfile:       "Conservative-Moderate",
		RecentActivity:    "Increasing alternative investment allocation",
		ComplianceNotes:   "Must comply with state investment guidelines",
	},
	"Family Office Solutions": {
		ID:                "CLI005",
		Name:              "Family Office Solutions",
		Industry:          "Wealth Management",
		AUM:               "$480M",
		PrimaryContact:    "Elizabeth Davis",
		Email:             "e.davis@familyoffice.com",
		LastMeeting:       "2024-12-10",
		PortfolioStrategy: "Multi-generational wealth preservation",
		RiskProfile:       "Moderate",
		RecentActivity:    "Exploring direct private equity investments",
		ComplianceNotes:   "Family governance committee approval needed",
	},
}

const clientLookupDescription = `Look up detailed information about investment clients from the proprietary client database.

Available information includes:
- Client contact details and last meeting dates
- Assets under management (AUM) and portfolio strategies
- Risk profiles and investment preferences
- Recent activity and trading behavior
- Compliance requirements and restrictions

This simulates access to confidential client data that would never be in public training data.`

// NewClientLookupTool answers queries against the mock client database.
// Unknown names get fuzzy suggestions instead of a hard failure.
func NewClientLookupTool() Tool {
	schema := objectSchema(map[string]Property{
		"clientName": {Type: "string", Description: "Name of the client or organization to look up"},
		"infoType": {
			Type:        "string",
			Description: "Type of information to retrieve (default: overview)",
			Enum:        []string{"overview", "contact", "strategy", "activity", "compliance"},
		},
	}, "clientName")

	return newTool("client-lookup", clientLookupDescription, schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				ClientName string `json:"clientName"`
				InfoType   string `json:"infoType"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}

			client, ok := clientDatabase[in.ClientName]
			if !ok {
				return map[string]any{
					"found":       false,
					"message":     fmt.Sprintf("Client %q not found in database.", in.ClientName),
					"suggestions": clientSuggestions(in.ClientName),
				}, nil
			}

			var data any
			switch in.InfoType {
			case "contact":
				data = map[string]any{
					"primaryContact": client.PrimaryContact,
					"email":          client.Email,
					"lastMeeting":    client.LastMeeting,
				}
			case "strategy":
				data = map[string]any{
					"portfolioStrategy": client.PortfolioStrategy,
					"riskProfile":       client.RiskProfile,
					"aum":               client.AUM,
				}
			case "activity":
				data = map[string]any{
					"recentActivity": client.RecentActivity,
					"lastMeeting":    client.LastMeeting,
				}
			case "compliance":
				data = map[string]any{
					"complianceNotes": client.ComplianceNotes,
					"riskProfile":     client.RiskProfile,
				}
			default:
				data = client
			}

			return map[string]any{"found": true, "clientName": client.Name, "data": data}, nil
		})
}

// clientSuggestions returns partial-match candidates, falling back to the
// first few known clients when nothing matches.
func clientSuggestions(query string) []string {
	lower := strings.ToLower(query)
	var matches []string
	var all []string
	for name := range clientDatabase {
		all = append(all, name)
		nameLower := strings.ToLower(name)
		if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
			matches = append(matches, name)
		}
	}
	if len(matches) > 0 {
		sort.Strings(matches)
		return matches
	}
	sort.Strings(all)
	if len(all) > 3 {
		all = all[:3]
	}
	return all
}
