package gateway

import (
	"net/http"

	"finch/internal/history"
	"finch/internal/research"
)

type Server struct {
	pipeline *research.Pipeline
	hist     *history.Store
	mux      *http.ServeMux
}

func NewServer(pipeline *research.Pipeline, hist *history.Store) *Server {
	s := &Server{
		pipeline: pipeline,
		hist:     hist,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /v1/research", s.handleResearch)
	s.mux.HandleFunc("GET /v1/runs", s.handleListRuns)
	s.mux.HandleFunc("GET /v1/runs/{id}", s.handleGetRun)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
