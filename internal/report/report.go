package report

import (
	"fmt"
	"strings"
	"time"
)

// Section is one titled block of the final report.
type Section struct {
	Key   string
	Title string
}

// Sections is the fixed report section order.
var Sections = []Section{
	{"executive_summary", "Executive Summary"},
	{"company_overview", "Company Overview"},
	{"industry_analysis", "Industry Analysis"},
	{"fundamental_analysis", "Fundamental Analysis"},
	{"technical_analysis", "Technical Analysis"},
	{"sentiment_analysis", "Sentiment Analysis"},
	{"risk_analysis", "Risk Analysis"},
	{"investment_recommendations", "Investment Recommendations"},
	{"risk_factors", "Risk Factors"},
	{"conclusion", "Conclusion"},
}

// Assemble builds a markdown document from section contents keyed by
// section key, in the fixed order. Empty sections are skipped.
func Assemble(title string, content map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", title)
	for _, s := range Sections {
		text := strings.TrimSpace(content[s.Key])
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n%s\n", s.Title, text)
	}
	return b.String()
}

// Filename builds a report file name for a symbol, e.g.
// MSFT_report_20250830_120000.pdf.
func Filename(symbol, ext string) string {
	return fmt.Sprintf("%s_report_%s.%s", symbol, time.Now().Format("20060102_150405"), ext)
}
