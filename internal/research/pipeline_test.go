package research

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"finch/internal/agent"
	"finch/internal/db"
	"finch/internal/history"
	"finch/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	name    string
	outputs map[string]string
	calls   *callLog
	pdfDir  string
}

type callLog struct {
	mu    sync.Mutex
	names []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *callLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.names {
		if c == name {
			n++
		}
	}
	return n
}

func (r *fakeRunner) Run(ctx context.Context, runID, message string, emit func(agent.Event)) (string, error) {
	r.calls.add(r.name)
	if r.name == "pdf" && r.pdfDir != "" {
		// Mimic the generate_pdf_report tool side effect.
		path := filepath.Join(r.pdfDir, "goog_report.pdf")
		if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
			return "", err
		}
		emit(agent.Event{Type: agent.EventToolResult, Agent: r.name, Data: path})
	}
	emit(agent.Event{Type: agent.EventDone, Agent: r.name})
	return r.outputs[r.name], nil
}

type fakeBuilder struct {
	outputs map[string]string
	calls   *callLog
	pdfDir  string
}

func (b *fakeBuilder) Build(name string) (agent.Runner, error) {
	return &fakeRunner{name: name, outputs: b.outputs, calls: b.calls, pdfDir: b.pdfDir}, nil
}

func scriptedOutputs(review string) map[string]string {
	return map[string]string{
		"corporate":      "/tmp/data/goog_corporate_info_20260101_120000.json",
		"industry":       "/tmp/data/goog_industry_info_20260101_120000.json",
		"fundamental":    "Strong revenue growth and healthy margins.",
		"technical":      "Price above the 200-day moving average.",
		"sentiment":      "News flow is mildly positive.",
		"risk":           "Volatility near sector average.",
		"recommendation": `{"ticker": "GOOG", "recommendation": "buy"}`,
		"writer":         "## Stock Analysis Report (Preliminary)\n\n### Executive Summary\nSolid.",
		"reviewer":       review,
		"refactor":       "## Stock Analysis Report (Final)\n\n### Executive Summary\nSolid, revised.",
		"pdf":            "Report stored as a PDF.",
	}
}

func newHistory(t *testing.T) *history.Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "finch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate())
	return history.NewStore(database)
}

func TestPipelineReviewPassKeepsDraft(t *testing.T) {
	reportsDir := t.TempDir()
	builder := &fakeBuilder{
		outputs: scriptedOutputs("No major issues found."),
		calls:   &callLog{},
		pdfDir:  reportsDir,
	}
	hist := newHistory(t)
	renderer := report.NewRenderer(reportsDir)
	p := NewPipeline(builder, hist, renderer)

	var events []agent.Event
	res, err := p.Run(context.Background(), "goog", true, func(e agent.Event) { events = append(events, e) })
	require.NoError(t, err)

	assert.Equal(t, "GOOG", res.Symbol)
	assert.Equal(t, Recommendation{Ticker: "GOOG", Recommendation: "buy"}, res.Recommendation)
	assert.Contains(t, res.Report, "Stock Analysis Report (Preliminary)")
	assert.Equal(t, 0, builder.calls.count("refactor"))
	assert.NotEmpty(t, events)

	b, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, res.Report, string(b))

	pdf, err := os.ReadFile(res.PDFPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	detail, err := hist.GetRun(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, "done", detail.Run.Status)

	stages := make(map[string]string)
	for _, s := range detail.Stages {
		stages[s.Name] = s.Content
	}
	for _, key := range []string{
		"corporate_info_file_path", "industry_info_file_path",
		"fundamental_analysis", "technical_analysis", "sentiment_analysis",
		"risk_analysis", "merged_analysis", "equity_recommendation",
		"generated_report", "review_comments", "final_report",
		"pdf_report_path",
	} {
		assert.Contains(t, stages, key)
	}
	assert.Contains(t, stages["merged_analysis"], "## Fundamental Analysis")
}

func TestPipelineReviewCommentsTriggerRefactor(t *testing.T) {
	builder := &fakeBuilder{
		outputs: scriptedOutputs("- Executive summary too thin\n- Add valuation context"),
		calls:   &callLog{},
	}
	p := NewPipeline(builder, nil, nil)

	res, err := p.Run(context.Background(), "GOOG", false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, builder.calls.count("refactor"))
	assert.Contains(t, res.Report, "Stock Analysis Report (Final)")
	assert.Empty(t, res.ReportPath)
}

func TestPipelineRejectsEmptySymbol(t *testing.T) {
	p := NewPipeline(&fakeBuilder{calls: &callLog{}}, nil, nil)
	_, err := p.Run(context.Background(), "  ", false, nil)
	assert.Error(t, err)
}

func TestParseRecommendation(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Recommendation
	}{
		{"plain", `{"ticker": "MSFT", "recommendation": "sell"}`, Recommendation{"MSFT", "sell"}},
		{"fenced", "```json\n{\"ticker\": \"MSFT\", \"recommendation\": \"Buy\"}\n```", Recommendation{"MSFT", "buy"}},
		{"prose around", `Here you go: {"ticker": "MSFT", "recommendation": "hold"} as requested.`, Recommendation{"MSFT", "hold"}},
		{"no json", "I think it is a buy.", Recommendation{"MSFT", "hold"}},
		{"unknown verb", `{"ticker": "MSFT", "recommendation": "accumulate"}`, Recommendation{"MSFT", "hold"}},
		{"empty ticker", `{"ticker": "", "recommendation": "buy"}`, Recommendation{"MSFT", "buy"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseRecommendation("MSFT", tc.text))
		})
	}
}

func TestCleanReport(t *testing.T) {
	fenced := "```markdown\n## Report\n\nBody.\n```"
	assert.Equal(t, "## Report\n\nBody.", cleanReport(fenced))
	assert.Equal(t, "## Report", cleanReport("  ## Report\n"))
}

func TestMergeAnalysisSectionOrder(t *testing.T) {
	merged := mergeAnalysis("GOOG",
		map[string]string{"corporate": "corp path", "industry": "ind path"},
		map[string]string{"fundamental": "funds", "risk": "risks"})

	iCorp := strings.Index(merged, "## Company Overview")
	iFund := strings.Index(merged, "## Fundamental Analysis")
	iRisk := strings.Index(merged, "## Risk Analysis")
	require.True(t, iCorp >= 0 && iFund >= 0 && iRisk >= 0)
	assert.Less(t, iCorp, iFund)
	assert.Less(t, iFund, iRisk)
	assert.NotContains(t, merged, "## Technical Analysis")
}
