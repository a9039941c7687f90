package web

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/covscore/covscore/internal/adapters/outbound/report"
	"github.com/covscore/covscore/internal/domain"
)

//go:embed index.html.tmpl
var indexTemplate string

var indexPage = template.Must(template.New("index").Parse(indexTemplate))

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse is the body of every JSON API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

type indexData struct {
	Notice string
	Report string
}

// registerRoutes sets up the page and API routes on the given mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyzeForm)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyzeAPI)
	mux.HandleFunc("GET /api/health", s.handleHealth)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writeIndex(w, http.StatusOK, indexData{})
}

// handleAnalyzeForm analyzes the pasted "report" field and answers with the
// rendered HTML report, or the form again with a notice.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.writeIndex(w, requestErrorStatus(err), indexData{Notice: "Could not read the submitted form."})
		return
	}

	text := r.PostForm.Get("report")
	a, err := s.svc.Analyze("pasted report", []byte(text))
	if err != nil {
		s.writeIndex(w, http.StatusBadRequest, indexData{Notice: domain.Describe(err), Report: text})
		return
	}

	page, err := report.RenderHTML([]*domain.Analysis{a}, s.cfg.Lowest)
	if err != nil {
		s.logger.Error("rendering report", "error", err)
		http.Error(w, "rendering report failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, page) //nolint:errcheck
}

// handleAnalyzeAPI analyzes a raw report request body and returns the
// Analysis as JSON.
func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeError(w, requestErrorStatus(err), "could not read request body")
		return
	}

	a, err := s.svc.Analyze("request", body)
	if err != nil {
		if domain.IsInputError(err) {
			writeError(w, http.StatusBadRequest, domain.Describe(err))
			return
		}
		s.logger.Error("analyzing report", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.cfg.Version})
}

func (s *Server) writeIndex(w http.ResponseWriter, status int, data indexData) {
	var buf bytes.Buffer
	if err := indexPage.Execute(&buf, data); err != nil {
		s.logger.Error("rendering index", "error", err)
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w) //nolint:errcheck
}

func requestErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
