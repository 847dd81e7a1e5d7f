package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"finch/internal/report"
)

// PDFReport renders report text to a PDF file on disk.
type PDFReport struct {
	renderer *report.Renderer
}

func NewPDFReport(renderer *report.Renderer) *PDFReport {
	return &PDFReport{renderer: renderer}
}

func (p *PDFReport) Name() string { return "generate_pdf_report" }
func (p *PDFReport) Description() string {
	return "Store a report as a PDF file. Markdown headings (###), bold (**) and italic (*) markers are rendered as styling, not literal text"
}

func (p *PDFReport) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Report title shown on the first page",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Full report text in markdown",
			},
			"filename": map[string]any{
				"type":        "string",
				"description": "Output file name ending in .pdf",
			},
		},
		"required":             []string{"title", "content", "filename"},
		"additionalProperties": false,
	}
}

func (p *PDFReport) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return "", fmt.Errorf("parsing generate_pdf_report input: %w", err)
	}
	if args.Content == "" {
		return "", fmt.Errorf("content is required")
	}
	if args.Title == "" {
		args.Title = "Stock Analysis Report"
	}
	if args.Filename == "" {
		args.Filename = report.Filename("report", "pdf")
	}

	path, err := p.renderer.Render(args.Title, args.Content, args.Filename)
	if err != nil {
		return "", err
	}

	slog.Info("pdf report generated", "path", path)
	return fmt.Sprintf("PDF report stored at %s", path), nil
}
