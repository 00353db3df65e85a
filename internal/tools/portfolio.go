package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finlabs/agent-workshop/internal/portfolio"
)

// localDate renders an RFC 3339 timestamp as a short display date.
func localDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("1/2/2006")
}

// NewViewPortfolioTool lists portfolio companies, optionally filtered by
// a name substring.
func NewViewPortfolioTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"companyName": {Type: "string", Description: "Optional: Filter by specific portfolio company name"},
	})

	return newTool("view-portfolio", "View current portfolio companies and their performance", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				CompanyName string `json:"companyName"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}

			companies := store.Snapshot().Companies
			if in.CompanyName != "" {
				filtered := companies[:0]
				for _, c := range companies {
					if strings.Contains(strings.ToLower(c.Name), strings.ToLower(in.CompanyName)) {
						filtered = append(filtered, c)
					}
				}
				companies = filtered
			}

			if len(companies) == 0 {
				message := "Portfolio is currently empty"
				if in.CompanyName != "" {
					message = "No portfolio companies found matching: " + in.CompanyName
				}
				return map[string]any{
					"message":    message,
					"companies":  []portfolio.Company{},
					"totalValue": 0,
				}, nil
			}

			var totalValue, totalRevenue float64
			for _, c := range companies {
				totalValue += c.CurrentValuation
				totalRevenue += c.Revenue
			}

			return map[string]any{
				"message":   fmt.Sprintf("Portfolio contains %d company(ies)", len(companies)),
				"companies": companies,
				"summary": map[string]any{
					"totalValue":     round2(totalValue),
					"totalRevenue":   round2(totalRevenue),
					"companiesCount": len(companies),
				},
			}, nil
		})
}

// NewGetClientNotesTool lists notes, optionally filtered by client name.
func NewGetClientNotesTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"clientName": {Type: "string", Description: "Optional: Filter notes for specific portfolio company"},
	})

	return newTool("get-client-notes", "Retrieve portfolio company meeting notes and interaction history", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				ClientName string `json:"clientName"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}

			notes := store.Snapshot().ClientNotes
			if in.ClientName != "" {
				filtered := notes[:0]
				for _, n := range notes {
					if strings.Contains(strings.ToLower(n.ClientName), strings.ToLower(in.ClientName)) {
						filtered = append(filtered, n)
					}
				}
				notes = filtered
			}

			if len(notes) == 0 {
				message := "No client notes available"
				if in.ClientName != "" {
					message = "No notes found for client: " + in.ClientName
				}
				return map[string]any{"message": message, "notes": []portfolio.Note{}}, nil
			}

			entries := make([]map[string]any, len(notes))
			for i, n := range notes {
				entries[i] = map[string]any{
					"id":           n.ID,
					"clientName":   n.ClientName,
					"content":      n.Content,
					"createdAt":    n.CreatedAt,
					"updatedAt":    n.UpdatedAt,
					"lastModified": localDate(n.UpdatedAt),
				}
			}

			suffix := ""
			if in.ClientName != "" {
				suffix = " for " + in.ClientName
			}
			return map[string]any{
				"message": fmt.Sprintf("Found %d note(s)%s", len(notes), suffix),
				"notes":   entries,
			}, nil
		})
}

// NewListTasksTool lists tasks with completion and priority filters.
func NewListTasksTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"showCompleted": {Type: "boolean", Description: "Include completed tasks in results", Default: false},
		"priority":      {Type: "string", Description: "Filter by task priority", Enum: []string{"low", "medium", "high"}},
	})

	return newTool("list-tasks", "List all tasks and action items for portfolio company management", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				ShowCompleted bool   `json:"showCompleted"`
				Priority      string `json:"priority"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}

			all := store.Snapshot().Tasks
			tasks := all[:0]
			for _, t := range all {
				if !in.ShowCompleted && t.Completed {
					continue
				}
				if in.Priority != "" && t.Priority != in.Priority {
					continue
				}
				tasks = append(tasks, t)
			}

			if len(tasks) == 0 {
				return map[string]any{"message": "No tasks found matching criteria", "tasks": []portfolio.Task{}}, nil
			}

			var pending, completed, highPending int
			entries := make([]map[string]any, len(tasks))
			for i, t := range tasks {
				if t.Completed {
					completed++
				} else {
					pending++
					if t.Priority == "high" {
						highPending++
					}
				}
				entries[i] = map[string]any{
					"id":          t.ID,
					"description": t.Description,
					"priority":    t.Priority,
					"completed":   t.Completed,
					"createdAt":   t.CreatedAt,
					"createdDate": localDate(t.CreatedAt),
				}
			}

			return map[string]any{
				"message": fmt.Sprintf("Found %d task(s) - %d pending, %d completed", len(tasks), pending, completed),
				"tasks":   entries,
				"summary": map[string]any{
					"total":        len(tasks),
					"pending":      pending,
					"completed":    completed,
					"highPriority": highPending,
				},
			}, nil
		})
}

// NewAddPortfolioUpdateTool records financial updates for a company,
// creating the company when it is new to the portfolio.
func NewAddPortfolioUpdateTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"companyName": {Type: "string", Description: "Name of the portfolio company"},
		"revenue":     {Type: "number", Description: "Optional: Updated revenue figure"},
		"valuation":   {Type: "number", Description: "Optional: Updated valuation"},
		"sector":      {Type: "string", Description: "Optional: Company sector"},
	}, "companyName")

	return newTool("add-portfolio-update", "Add financial updates or information about a portfolio company", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				CompanyName string   `json:"companyName"`
				Revenue     *float64 `json:"revenue"`
				Valuation   *float64 `json:"valuation"`
				Sector      string   `json:"sector"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.CompanyName == "" {
				return nil, toolError("companyName is required")
			}

			company := store.AddUpdate(portfolio.UpdateInput{
				CompanyName: in.CompanyName,
				Revenue:     in.Revenue,
				Valuation:   in.Valuation,
				Sector:      in.Sector,
			})

			return map[string]any{
				"success": true,
				"message": "Successfully updated portfolio company: " + company.Name,
				"company": company,
			}, nil
		})
}

// NewAddClientNoteTool records a note about a portfolio company.
func NewAddClientNoteTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"clientName": {Type: "string", Description: "Name of the portfolio company"},
		"content":    {Type: "string", Description: "Content of the note or meeting summary"},
	}, "clientName", "content")

	return newTool("add-client-note", "Add a new note about a portfolio company meeting or interaction", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				ClientName string `json:"clientName"`
				Content    string `json:"content"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.ClientName == "" || in.Content == "" {
				return nil, toolError("clientName and content are required")
			}

			note := store.AddNote(in.ClientName, in.Content)
			return map[string]any{
				"success": true,
				"message": "Successfully added note for " + in.ClientName,
				"note": map[string]any{
					"id":          note.ID,
					"clientName":  note.ClientName,
					"content":     note.Content,
					"createdAt":   note.CreatedAt,
					"createdDate": localDate(note.CreatedAt),
				},
			}, nil
		})
}

// NewCreateTaskTool creates a follow-up task.
func NewCreateTaskTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"description": {Type: "string", Description: "Description of the task to be completed"},
		"priority":    {Type: "string", Description: "Priority level of the task", Enum: []string{"low", "medium", "high"}, Default: "medium"},
	}, "description")

	return newTool("create-task", "Create a new task or action item for portfolio company management", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Description string `json:"description"`
				Priority    string `json:"priority"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Description == "" {
				return nil, toolError("description is required")
			}

			task := store.AddTask(in.Description, in.Priority)
			return map[string]any{
				"success": true,
				"message": fmt.Sprintf("Successfully created %s priority task", task.Priority),
				"task": map[string]any{
					"id":          task.ID,
					"description": task.Description,
					"priority":    task.Priority,
					"completed":   task.Completed,
					"createdAt":   task.CreatedAt,
					"createdDate": localDate(task.CreatedAt),
				},
			}, nil
		})
}

// NewCompleteTaskTool marks a task done. Unknown ids are reported inside
// the payload.
func NewCompleteTaskTool(store *portfolio.Store) Tool {
	schema := objectSchema(map[string]Property{
		"taskId": {Type: "string", Description: "ID of the task to mark as completed"},
	}, "taskId")

	return newTool("complete-task", "Mark a task as completed", schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				TaskID string `json:"taskId"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}

			task := store.CompleteTask(in.TaskID)
			if task == nil {
				return map[string]any{
					"success": false,
					"message": fmt.Sprintf("Task with ID %s not found", in.TaskID),
					"task":    nil,
				}, nil
			}

			return map[string]any{
				"success": true,
				"message": "Successfully completed task: " + task.Description,
				"task": map[string]any{
					"id":          task.ID,
					"description": task.Description,
					"priority":    task.Priority,
					"completed":   task.Completed,
					"createdAt":   task.CreatedAt,
					"createdDate": localDate(task.CreatedAt),
				},
			}, nil
		})
}
