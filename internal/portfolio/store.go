// Package portfolio holds the in-memory portfolio state shared by the
// write-demo tools and the portfolio HTTP endpoints. State lives for the
// server session and resets to the seed data on demand.
package portfolio

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Company is a portfolio holding.
type Company struct {
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	CurrentValuation float64 `json:"currentValuation"`
	Revenue          float64 `json:"revenue"`
}

// Note is a timestamped client note.
type Note struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Task is a follow-up item with a priority.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"createdAt"`
	Completed   bool   `json:"completed"`
}

// State is a point-in-time copy of the portfolio.
type State struct {
	Companies   []Company `json:"companies"`
	ClientNotes []Note    `json:"clientNotes"`
	Tasks       []Task    `json:"tasks"`
}

// UpdateInput is a partial company update. Nil fields are left unchanged
// on existing companies and filled with defaults on new ones.
type UpdateInput struct {
	CompanyName string
	Revenue     *float64
	Valuation   *float64
	Sector      string
}

// Defaults applied when an update creates a company.
const (
	defaultSector    = "Technology"
	defaultValuation = 1_000_000
)

// Store is the mutex-guarded portfolio state.
type Store struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
}

// NewStore creates a store populated with the seed portfolio.
func NewStore() *Store {
	s := &Store{now: time.Now}
	s.state = seedState()
	return s
}

func seedState() State {
	return State{
		Companies: []Company{
			{Name: "TechFlow AI", Sector: "AI/ML", CurrentValuation: 18_500_000, Revenue: 2_500_000},
			{Name: "GreenEnergy Solutions", Sector: "Clean Tech", CurrentValuation: 35_000_000, Revenue: 8_000_000},
		},
		ClientNotes: []Note{
			{
				ID:         "1",
				ClientName: "TechFlow AI",
				Content:    "Quarterly check-in completed.",
				CreatedAt:  "2024-12-01T10:00:00Z",
				UpdatedAt:  "2024-12-01T10:00:00Z",
			},
		},
		Tasks: []Task{
			{
				ID:          "1",
				Description: "Introduce TechFlow AI to Series B investors for European expansion",
				Priority:    "high",
				CreatedAt:   "2024-12-01T09:00:00Z",
				Completed:   false,
			},
		},
	}
}

// Snapshot returns a copy of the current state. Callers may mutate the
// returned slices freely.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Companies:   append([]Company(nil), s.state.Companies...),
		ClientNotes: append([]Note(nil), s.state.ClientNotes...),
		Tasks:       append([]Task(nil), s.state.Tasks...),
	}
}

// Reset restores the seed portfolio.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = seedState()
}

// AddUpdate updates a company by name (case-insensitive) or creates it
// when no match exists. Returns the resulting company record.
func (s *Store) AddUpdate(in UpdateInput) Company {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Companies {
		c := &s.state.Companies[i]
		if !strings.EqualFold(c.Name, in.CompanyName) {
			continue
		}
		if in.Revenue != nil {
			c.Revenue = *in.Revenue
		}
		if in.Valuation != nil {
			c.CurrentValuation = *in.Valuation
		}
		if in.Sector != "" {
			c.Sector = in.Sector
		}
		return *c
	}

	company := Company{
		Name:             in.CompanyName,
		Sector:           defaultSector,
		CurrentValuation: defaultValuation,
		Revenue:          0,
	}
	if in.Sector != "" {
		company.Sector = in.Sector
	}
	if in.Valuation != nil {
		company.CurrentValuation = *in.Valuation
	}
	if in.Revenue != nil {
		company.Revenue = *in.Revenue
	}
	s.state.Companies = append(s.state.Companies, company)
	return company
}

// AddNote appends a client note and returns it.
func (s *Store) AddNote(clientName, content string) Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	note := Note{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		ClientName: clientName,
		Content:    content,
		CreatedAt:  now.Format(time.RFC3339),
		UpdatedAt:  now.Format(time.RFC3339),
	}
	s.state.ClientNotes = append(s.state.ClientNotes, note)
	return note
}

// AddTask appends a task and returns it. Priority defaults to "medium".
func (s *Store) AddTask(description, priority string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if priority == "" {
		priority = "medium"
	}
	now := s.now().UTC()
	task := Task{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Description: description,
		Priority:    priority,
		CreatedAt:   now.Format(time.RFC3339),
	}
	s.state.Tasks = append(s.state.Tasks, task)
	return task
}

// CompleteTask marks the task with the given id as completed. Returns nil
// when no task matches.
func (s *Store) CompleteTask(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			s.state.Tasks[i].Completed = true
			t := s.state.Tasks[i]
			return &t
		}
	}
	return nil
}
