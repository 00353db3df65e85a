package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// NewGenerateExcelTool structures extracted data for spreadsheet export.
// The payload is tagged so clients know to turn it into an .xlsx file.
func NewGenerateExcelTool() Tool {
	schema := objectSchema(map[string]Property{
		"data": {
			Type:        "array",
			Description: "Array of objects representing rows of data",
			Items:       &Property{Type: "object"},
		},
		"sheetName": {Type: "string", Description: "Name for the Excel sheet", Default: "Analysis"},
		"filename":  {Type: "string", Description: "Filename for the Excel file", Default: "pdf-analysis.xlsx"},
	}, "data")

	return newTool("generate-excel",
		"Structure data for Excel export - returns data that frontend will convert to Excel file",
		schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Data      []map[string]any `json:"data"`
				SheetName string           `json:"sheetName"`
				Filename  string           `json:"filename"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.SheetName == "" {
				in.SheetName = "Analysis"
			}
			if in.Filename == "" {
				in.Filename = "pdf-analysis.xlsx"
			}

			return map[string]any{
				"type":      "excel_data",
				"data":      in.Data,
				"sheetName": in.SheetName,
				"filename":  in.Filename,
				"message":   fmt.Sprintf("Prepared %d rows for Excel export as %q", len(in.Data), in.Filename),
			}, nil
		})
}

// NewGenerateMarkdownTool produces a downloadable markdown report payload.
func NewGenerateMarkdownTool() Tool {
	schema := objectSchema(map[string]Property{
		"title":    {Type: "string", Description: "Title for the markdown document"},
		"content":  {Type: "string", Description: "Markdown content with proper formatting"},
		"filename": {Type: "string", Description: "Filename for the markdown file", Default: "pdf-analysis.md"},
	}, "title", "content")

	return newTool("generate-markdown",
		"Generate formatted markdown content - returns content that frontend will convert to downloadable file",
		schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Title    string `json:"title"`
				Content  string `json:"content"`
				Filename string `json:"filename"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if in.Filename == "" {
				in.Filename = "pdf-analysis.md"
			}

			return map[string]any{
				"type":     "markdown_data",
				"content":  fmt.Sprintf("# %s\n\n%s", in.Title, in.Content),
				"filename": in.Filename,
				"message":  fmt.Sprintf("Generated markdown document %q", in.Filename),
			}, nil
		})
}
