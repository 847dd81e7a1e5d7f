package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"finch/internal/agent"
	"finch/internal/history"
	"finch/internal/report"
	"finch/internal/trace"

	"golang.org/x/sync/errgroup"
)

// Builder creates a runner for a named agent profile. Satisfied by
// agent.RunnerFactory.
type Builder interface {
	Build(profileName string) (agent.Runner, error)
}

type Recommendation struct {
	Ticker         string `json:"ticker"`
	Recommendation string `json:"recommendation"`
}

type Result struct {
	RunID          string
	Symbol         string
	Recommendation Recommendation
	Report         string
	ReportPath     string
	PDFPath        string
}

// Pipeline threads a ticker symbol through the research teams: search
// and analysis agents fan out concurrently, their outputs merge into
// one document, and the recommendation and writing agents run over it
// in sequence. Stage outputs are recorded in the run history.
type Pipeline struct {
	builder  Builder
	hist     *history.Store
	renderer *report.Renderer
}

func NewPipeline(builder Builder, hist *history.Store, renderer *report.Renderer) *Pipeline {
	return &Pipeline{builder: builder, hist: hist, renderer: renderer}
}

func (p *Pipeline) Run(ctx context.Context, symbol string, pdf bool, emit func(agent.Event)) (*Result, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if emit == nil {
		emit = func(agent.Event) {}
	}

	runID := fmt.Sprintf("%s_%s", strings.ToLower(symbol), time.Now().Format("20060102_150405"))
	ctx, span := trace.Tracer().Start(ctx, "research.pipeline")
	defer span.End()

	if p.hist != nil {
		if err := p.hist.EnsureRun(ctx, runID, symbol); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
	}

	res, err := p.run(ctx, runID, symbol, pdf, emit)
	if p.hist != nil {
		status := "done"
		if err != nil {
			status = "failed"
		}
		if herr := p.hist.FinishRun(ctx, runID, status); herr != nil {
			slog.Warn("finishing run record", "run_id", runID, "error", herr)
		}
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, runID, symbol string, pdf bool, emit func(agent.Event)) (*Result, error) {
	// Search team: corporate and industry snapshots in parallel.
	searchOut, err := p.fanOut(ctx, runID, SearchTeam, symbol, emit)
	if err != nil {
		return nil, err
	}

	// Analysis team: all four analysts in parallel.
	analysisOut, err := p.fanOut(ctx, runID, AnalysisTeam, fmt.Sprintf("Analyze the stock %s.", symbol), emit)
	if err != nil {
		return nil, err
	}

	merged := mergeAnalysis(symbol, searchOut, analysisOut)
	if err := p.saveStage(ctx, runID, "merged_analysis", merged); err != nil {
		return nil, err
	}

	recText, err := p.runAgent(ctx, runID, "recommendation", merged, emit)
	if err != nil {
		return nil, err
	}
	rec := parseRecommendation(symbol, recText)
	if err := p.saveStage(ctx, runID, "equity_recommendation", recText); err != nil {
		return nil, err
	}

	writerInput := fmt.Sprintf("Merged analysis:\n\n%s\n\nEquity product recommendation: %s (%s)",
		merged, rec.Recommendation, rec.Ticker)
	draft, err := p.runAgent(ctx, runID, "writer", writerInput, emit)
	if err != nil {
		return nil, err
	}

	review, err := p.runAgent(ctx, runID, "reviewer", draft, emit)
	if err != nil {
		return nil, err
	}

	final := draft
	if strings.Contains(review, "No major issues") {
		slog.Info("review passed, keeping draft", "run_id", runID)
		if err := p.saveStage(ctx, runID, "final_report", final); err != nil {
			return nil, err
		}
	} else {
		refactorInput := fmt.Sprintf("Original report:\n\n%s\n\nReview comments:\n\n%s", draft, review)
		final, err = p.runAgent(ctx, runID, "refactor", refactorInput, emit)
		if err != nil {
			return nil, err
		}
	}
	final = cleanReport(final)

	result := &Result{
		RunID:          runID,
		Symbol:         symbol,
		Recommendation: rec,
		Report:         final,
	}
	if p.renderer != nil {
		if err := p.export(result); err != nil {
			return nil, err
		}
		if pdf {
			if err := p.exportPDF(ctx, runID, result, emit); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// fanOut runs each named agent with the same input and collects their
// outputs keyed by the profile's output key.
func (p *Pipeline) fanOut(ctx context.Context, runID string, agents []string, input string, emit func(agent.Event)) (map[string]string, error) {
	outputs := make(map[string]string, len(agents))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range agents {
		g.Go(func() error {
			out, err := p.runAgent(ctx, runID, name, input, emit)
			if err != nil {
				return err
			}
			mu.Lock()
			outputs[name] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (p *Pipeline) runAgent(ctx context.Context, runID, name, input string, emit func(agent.Event)) (string, error) {
	runner, err := p.builder.Build(name)
	if err != nil {
		return "", err
	}

	slog.Info("running agent", "run_id", runID, "agent", name)
	out, err := runner.Run(ctx, runID, input, emit)
	if err != nil {
		return "", fmt.Errorf("agent %s: %w", name, err)
	}
	if err := p.saveStage(ctx, runID, stageName(name), out); err != nil {
		return "", err
	}
	return out, nil
}

func (p *Pipeline) saveStage(ctx context.Context, runID, name, content string) error {
	if p.hist == nil {
		return nil
	}
	if err := p.hist.SaveStage(ctx, runID, name, content); err != nil {
		return fmt.Errorf("saving stage %s: %w", name, err)
	}
	return nil
}

// stageName maps an agent name to its output key so stage records line
// up with the keys agents are declared with.
func stageName(agentName string) string {
	for _, prof := range Profiles() {
		if prof.Name == agentName && prof.OutputKey != "" {
			return prof.OutputKey
		}
	}
	return agentName
}

var analysisSections = []struct{ agent, heading string }{
	{"corporate", "Company Overview"},
	{"industry", "Industry Analysis"},
	{"fundamental", "Fundamental Analysis"},
	{"technical", "Technical Analysis"},
	{"sentiment", "Sentiment Analysis"},
	{"risk", "Risk Analysis"},
}

func mergeAnalysis(symbol string, searchOut, analysisOut map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Merged Analysis: %s\n", symbol)
	for _, sec := range analysisSections {
		out, ok := searchOut[sec.agent]
		if !ok {
			out, ok = analysisOut[sec.agent]
		}
		if !ok || strings.TrimSpace(out) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", sec.heading, strings.TrimSpace(out))
	}
	return b.String()
}

// parseRecommendation extracts the {ticker, recommendation} object from
// the agent's answer. Anything unparseable degrades to hold.
func parseRecommendation(symbol, text string) Recommendation {
	rec := Recommendation{Ticker: symbol, Recommendation: "hold"}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		slog.Warn("recommendation output has no JSON object, defaulting to hold", "symbol", symbol)
		return rec
	}

	var parsed Recommendation
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		slog.Warn("unparseable recommendation JSON, defaulting to hold", "symbol", symbol, "error", err)
		return rec
	}

	switch strings.ToLower(strings.TrimSpace(parsed.Recommendation)) {
	case "buy", "sell", "hold":
		rec.Recommendation = strings.ToLower(strings.TrimSpace(parsed.Recommendation))
	default:
		slog.Warn("unknown recommendation value, defaulting to hold",
			"symbol", symbol, "value", parsed.Recommendation)
	}
	if strings.TrimSpace(parsed.Ticker) != "" {
		rec.Ticker = strings.TrimSpace(parsed.Ticker)
	}
	return rec
}

// cleanReport strips a wrapping markdown code fence, which models
// sometimes add around the whole report.
func cleanReport(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	return text
}

func (p *Pipeline) export(res *Result) error {
	dir := p.renderer.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating reports dir: %w", err)
	}

	mdPath := filepath.Join(dir, report.Filename(res.Symbol, "md"))
	if err := os.WriteFile(mdPath, []byte(res.Report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	res.ReportPath = mdPath
	return nil
}

// exportPDF hands the final report to the pdf agent, which stores it
// through the generate_pdf_report tool, then locates the file it wrote.
func (p *Pipeline) exportPDF(ctx context.Context, runID string, res *Result, emit func(agent.Event)) error {
	start := time.Now()
	input := fmt.Sprintf("Store this final report as a PDF using the filename %q.\n\n%s",
		report.Filename(res.Symbol, "pdf"), res.Report)
	if _, err := p.runAgent(ctx, runID, "pdf", input, emit); err != nil {
		return err
	}
	res.PDFPath = newestPDF(p.renderer.Dir(), start)
	if res.PDFPath == "" {
		slog.Warn("pdf agent finished without storing a report", "run_id", runID)
	}
	return nil
}

// newestPDF returns the most recently written .pdf under dir that was
// modified at or after start, allowing for filesystem second
// granularity.
func newestPDF(dir string, start time.Time) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	cutoff := start.Truncate(time.Second)

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pdf") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().Before(cutoff) {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}
	return newest
}
