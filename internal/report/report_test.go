package report

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleKeepsSectionOrder(t *testing.T) {
	out := Assemble("Stock Analysis Report", map[string]string{
		"conclusion":           "Done.",
		"executive_summary":    "Summary.",
		"fundamental_analysis": "Fundamentals.",
		"unknown_key":          "ignored",
	})

	sum := strings.Index(out, "### Executive Summary")
	fund := strings.Index(out, "### Fundamental Analysis")
	conc := strings.Index(out, "### Conclusion")
	require.True(t, sum >= 0 && fund >= 0 && conc >= 0)
	assert.Less(t, sum, fund)
	assert.Less(t, fund, conc)
	assert.NotContains(t, out, "ignored")
	assert.NotContains(t, out, "Risk Factors") // empty sections skipped
}

func TestParseLineHeading(t *testing.T) {
	level, spans := ParseLine("### Executive Summary")
	assert.Equal(t, 3, level)
	require.Len(t, spans, 1)
	assert.Equal(t, "Executive Summary", spans[0].Text)
}

func TestParseLineInlineStyles(t *testing.T) {
	_, spans := ParseLine("plain **bold** and *italic* end")
	var bold, italic, plain int
	for _, s := range spans {
		switch s.Style {
		case StyleBold:
			bold++
			assert.Equal(t, "bold", s.Text)
		case StyleItalic:
			italic++
			assert.Equal(t, "italic", s.Text)
		default:
			plain++
		}
	}
	assert.Equal(t, 1, bold)
	assert.Equal(t, 1, italic)
	assert.Equal(t, 3, plain)
}

func TestPlainStripsMarkers(t *testing.T) {
	out := Plain("### Title\n**bold** and *italic*")
	assert.Equal(t, "Title\nbold and italic", out)
}

func TestFilename(t *testing.T) {
	name := Filename("MSFT", "pdf")
	assert.True(t, strings.HasPrefix(name, "MSFT_report_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
}

func TestRendererWritesPDF(t *testing.T) {
	r := NewRenderer(t.TempDir())

	path, err := r.Render("Stock Analysis Report",
		"### Executive Summary\nSolid quarter with **strong** growth.", "out.pdf")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF-"))
}
