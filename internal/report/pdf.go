package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Renderer writes report markdown to PDF files under a base directory.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

func (r *Renderer) Dir() string { return r.dir }

// Render writes the markdown report as a PDF named filename under the
// renderer's directory and returns the full path.
func (r *Renderer) Render(title, markdown, filename string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "C", false)
	pdf.Ln(6)

	for _, line := range strings.Split(markdown, "\n") {
		level, spans := ParseLine(line)
		switch {
		case len(spans) == 0:
			pdf.Ln(3)
		case level > 0:
			size := 14.0
			if level >= 3 {
				size = 12.0
			}
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, 7, tr(spanText(spans)), "", "L", false)
			pdf.Ln(1)
		default:
			for _, s := range spans {
				pdf.SetFont("Helvetica", string(s.Style), 11)
				pdf.Write(5, tr(s.Text))
			}
			pdf.Ln(5)
		}
	}

	path := filepath.Join(r.dir, filename)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}
	return path, nil
}

func spanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
