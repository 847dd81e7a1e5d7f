package gateway

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finch/internal/agent"
)

type researchRequest struct {
	Symbol string `json:"symbol"`
	PDF    bool   `json:"pdf"`
}

// handleResearch runs the pipeline for one symbol, streaming agent
// events over SSE and closing with a result (or error) event.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if req.Symbol == "" {
		http.Error(w, `{"error":"symbol is required"}`, http.StatusBadRequest)
		return
	}

	sse := NewSSEWriter(w)

	res, err := s.pipeline.Run(r.Context(), req.Symbol, req.PDF, func(ev agent.Event) {
		switch ev.Type {
		case agent.EventToken:
			sse.Send("token", map[string]string{"agent": ev.Agent, "content": ev.Data.(string)})
		case agent.EventToolCall:
			sse.Send("tool_call", map[string]any{"agent": ev.Agent, "data": ev.Data})
		case agent.EventToolResult:
			sse.Send("tool_result", map[string]any{"agent": ev.Agent, "data": ev.Data})
		case agent.EventDone:
			sse.Send("agent_done", map[string]string{"agent": ev.Agent})
		case agent.EventError:
			sse.Send("agent_error", map[string]any{"agent": ev.Agent, "error": ev.Data})
		}
	})
	if err != nil {
		sse.Send("error", map[string]string{"error": err.Error()})
		return
	}

	sse.Send("result", map[string]any{
		"run_id":         res.RunID,
		"symbol":         res.Symbol,
		"recommendation": res.Recommendation,
		"report":         res.Report,
		"report_path":    res.ReportPath,
		"pdf_path":       res.PDFPath,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	runs, err := s.hist.ListRuns(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"listing runs failed"}`, http.StatusInternalServerError)
		return
	}

	type runJSON struct {
		ID        string `json:"id"`
		Symbol    string `json:"symbol"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, runJSON{
			ID:        run.ID,
			Symbol:    run.Symbol,
			Status:    run.Status,
			CreatedAt: run.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	writeJSON(w, map[string]any{"runs": out})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	detail, err := s.hist.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, `{"error":"run not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"loading run failed"}`, http.StatusInternalServerError)
		return
	}

	stages := make([]map[string]string, 0, len(detail.Stages))
	for _, st := range detail.Stages {
		stages = append(stages, map[string]string{"name": st.Name, "content": st.Content})
	}
	writeJSON(w, map[string]any{
		"id":     detail.Run.ID,
		"symbol": detail.Run.Symbol,
		"status": detail.Run.Status,
		"stages": stages,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
