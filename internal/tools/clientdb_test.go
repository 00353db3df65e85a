package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLookupOverview(t *testing.T) {
	out := exec(t, NewClientLookupTool(), `{"clientName": "ACME Corp"}`)
	assert.Equal(t, true, out["found"])
	assert.Equal(t, "ACME Corporation", out["clientName"])

	record, ok := out["data"].(clientRecord)
	require.True(t, ok)
	assert.Equal(t, "CLI001", record.ID)
	assert.Equal(t, "$2.4B", record.AUM)
}

func TestClientLookupContactSlice(t *testing.T) {
	out := exec(t, NewClientLookupTool(), `{"clientName": "Global Industries", "infoType": "contact"}`)
	require.Equal(t, true, out["found"])

	data, ok := out["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Michael Rodriguez", data["primaryContact"])
	assert.Equal(t, "m.rodriguez@globalind.com", data["email"])
	assert.NotContains(t, data, "complianceNotes")
}

func TestClientLookupComplianceSlice(t *testing.T) {
	out := exec(t, NewClientLookupTool(), `{"clientName": "Pension Fund Authority", "infoType": "compliance"}`)
	data, ok := out["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Must comply with state investment guidelines", data["complianceNotes"])
}

func TestClientLookupNotFoundSuggests(t *testing.T) {
	out := exec(t, NewClientLookupTool(), `{"clientName": "ACME"}`)
	assert.Equal(t, false, out["found"])

	suggestions, ok := out["suggestions"].([]string)
	require.True(t, ok)
	assert.Contains(t, suggestions, "ACME Corp")
}

func TestClientLookupNoMatchFallsBackToKnownClients(t *testing.T) {
	out := exec(t, NewClientLookupTool(), `{"clientName": "Nobody Inc"}`)
	assert.Equal(t, false, out["found"])

	suggestions, ok := out["suggestions"].([]string)
	require.True(t, ok)
	assert.Len(t, suggestions, 3)
}
