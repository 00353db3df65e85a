package portfolio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestSeedState(t *testing.T) {
	s := NewStore()
	state := s.Snapshot()

	require.Len(t, state.Companies, 2)
	assert.Equal(t, "TechFlow AI", state.Companies[0].Name)
	assert.Equal(t, 18_500_000.0, state.Companies[0].CurrentValuation)
	assert.Equal(t, "GreenEnergy Solutions", state.Companies[1].Name)

	require.Len(t, state.ClientNotes, 1)
	assert.Equal(t, "1", state.ClientNotes[0].ID)

	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "high", state.Tasks[0].Priority)
	assert.False(t, state.Tasks[0].Completed)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()
	snap.Companies[0].Revenue = 0

	assert.Equal(t, 2_500_000.0, s.Snapshot().Companies[0].Revenue)
}

func TestAddUpdateExistingCompanyCaseInsensitive(t *testing.T) {
	s := NewStore()

	c := s.AddUpdate(UpdateInput{CompanyName: "techflow ai", Revenue: floatPtr(3_000_000)})
	assert.Equal(t, "TechFlow AI", c.Name)
	assert.Equal(t, 3_000_000.0, c.Revenue)
	// Untouched fields survive.
	assert.Equal(t, 18_500_000.0, c.CurrentValuation)
	assert.Equal(t, "AI/ML", c.Sector)

	assert.Len(t, s.Snapshot().Companies, 2)
}

func TestSequentialUpdatesMergeIntoOneRecord(t *testing.T) {
	s := NewStore()

	s.AddUpdate(UpdateInput{CompanyName: "acme corp", Revenue: floatPtr(5_000_000)})
	c := s.AddUpdate(UpdateInput{CompanyName: "ACME Corp", Valuation: floatPtr(9_000_000)})

	assert.Equal(t, 5_000_000.0, c.Revenue)
	assert.Equal(t, 9_000_000.0, c.CurrentValuation)

	count := 0
	for _, company := range s.Snapshot().Companies {
		if strings.EqualFold(company.Name, "acme corp") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddUpdateCreatesCompanyWithDefaults(t *testing.T) {
	s := NewStore()

	c := s.AddUpdate(UpdateInput{CompanyName: "NewCo"})
	assert.Equal(t, "Technology", c.Sector)
	assert.Equal(t, 1_000_000.0, c.CurrentValuation)
	assert.Equal(t, 0.0, c.Revenue)
	assert.Len(t, s.Snapshot().Companies, 3)
}

func TestAddNote(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	note := s.AddNote("TechFlow AI", "Raised bridge round.")
	assert.Equal(t, "1742040000000", note.ID)
	assert.Equal(t, "2025-03-15T12:00:00Z", note.CreatedAt)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
	assert.Len(t, s.Snapshot().ClientNotes, 2)
}

func TestAddTaskDefaultPriority(t *testing.T) {
	s := NewStore()

	task := s.AddTask("Follow up with founders", "")
	assert.Equal(t, "medium", task.Priority)
	assert.False(t, task.Completed)

	task = s.AddTask("Urgent call", "high")
	assert.Equal(t, "high", task.Priority)
}

func TestCompleteTask(t *testing.T) {
	s := NewStore()

	done := s.CompleteTask("1")
	require.NotNil(t, done)
	assert.True(t, done.Completed)
	assert.True(t, s.Snapshot().Tasks[0].Completed)

	assert.Nil(t, s.CompleteTask("does-not-exist"))
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.AddUpdate(UpdateInput{CompanyName: "NewCo"})
	s.AddNote("NewCo", "hello")
	s.CompleteTask("1")

	s.Reset()
	state := s.Snapshot()
	assert.Len(t, state.Companies, 2)
	assert.Len(t, state.ClientNotes, 1)
	assert.False(t, state.Tasks[0].Completed)
}
