package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sonnet-engine/backend/internal/engine"
	"github.com/sonnet-engine/backend/internal/metrics"
	"github.com/sonnet-engine/backend/internal/search"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, m *metrics.Metrics, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes(m)
	return s
}

func (s *Server) routes(m *metrics.Metrics) {
	s.Router.HandleFunc("/api/v1/search", s.handleSearch)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
	if m != nil {
		s.Router.Handle("/metrics", m.Handler())
	}
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	return http.ListenAndServe(addr, s.Router)
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchResponse struct {
	Query   string       `json:"query"`
	Results []SonnetView `json:"results"`
}

type SonnetView struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

type StatusResponse struct {
	Ready     bool   `json:"ready"`
	Documents int    `json:"documents"`
	Terms     int    `json:"terms"`
	Searches  int64  `json:"searches"`
	Uptime    string `json:"uptime"`
}

// Handlers

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	hits := s.Engine.Search(query)

	// An empty result set is a normal 200, not an error.
	response := SearchResponse{
		Query:   query,
		Results: make([]SonnetView, len(hits)),
	}
	for i, hit := range hits {
		response.Results[i] = sonnetView(hit)
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := s.Engine.Stats()
	resp := StatusResponse{
		Ready:     s.Engine.Ready(),
		Documents: stats.Documents,
		Terms:     stats.Terms,
		Searches:  stats.Searches,
		Uptime:    "0s",
	}
	if !stats.StartTime.IsZero() {
		resp.Uptime = time.Since(stats.StartTime).String()
	}

	jsonResponse(w, http.StatusOK, resp)
}

func sonnetView(doc search.Document) SonnetView {
	return SonnetView{
		ID:    doc.ID,
		Title: doc.Title,
		Lines: doc.Lines,
	}
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
