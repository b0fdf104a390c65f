package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/domain"
	chatuc "github.com/fundedfolk/supportbot/internal/usecase/chat"
	healthuc "github.com/fundedfolk/supportbot/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the chat service over HTTP.
type Server struct {
	chat          *chatuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chat *chatuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		chat:   chat,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, "Message cannot be empty"),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, "RAG system not initialized"),
	}
	return s
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type chatDetailedResponse struct {
	chatResponse
	Complexity         string `json:"complexity"`
	SearchResultsCount int    `json:"search_results_count"`
	ProcessingTimeMS   int64  `json:"processing_time_ms"`
}

type bannerResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

type healthResponse struct {
	Status         string `json:"status"`
	IndexLoaded    bool   `json:"index_loaded"`
	DocumentsCount int    `json:"documents_count"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.chat.Ask(r.Context(), req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  answer.Text,
		ModelUsed: answer.Model,
		SessionID: orGeneratedSession(req.SessionID),
		Status:    "success",
	})
}

// ChatDetailed handles POST /chat/detailed.
func (s *Server) ChatDetailed(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.chat.Ask(r.Context(), req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatDetailedResponse{
		chatResponse: chatResponse{
			Response:  answer.Text,
			ModelUsed: answer.Model,
			SessionID: orGeneratedSession(req.SessionID),
			Status:    "success",
		},
		Complexity:         string(answer.Complexity),
		SearchResultsCount: answer.ResultCount,
		ProcessingTimeMS:   answer.Elapsed.Milliseconds(),
	})
}

// Banner handles GET /.
func (s *Server) Banner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, bannerResponse{
		Service:   s.health.Name(),
		Version:   s.health.Version(),
		Status:    "online",
		Endpoints: []string{"/chat", "/chat/detailed", "/health", "/metrics"},
	})
}

// HealthCheck handles GET /health. Always 200: status conveys readiness.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         string(report.Status),
		IndexLoaded:    report.IndexLoaded,
		DocumentsCount: report.DocumentsCount,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// orGeneratedSession keeps a caller-provided session id opaque and
// mints one when absent.
func orGeneratedSession(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, detail string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, detail)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
