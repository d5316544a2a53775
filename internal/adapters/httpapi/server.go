package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
)

const maxBodySize = 10 << 20

type Services struct {
	Ingest    *application.IngestService
	Dashboard *application.DashboardService
	Journal   *application.JournalService
}

type Server struct {
	ingest    *application.IngestService
	dashboard *application.DashboardService
	journal   *application.JournalService
	apiKey    string
	logger    *slog.Logger
}

// NewServer builds the JSON API. Write endpoints reject every request when
// apiKey is empty.
func NewServer(services Services, apiKey string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		ingest:    services.Ingest,
		dashboard: services.Dashboard,
		journal:   services.Journal,
		apiKey:    apiKey,
		logger:    logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/agents", s.handleOverview)
	mux.HandleFunc("POST /api/agents", s.requireAPIKey(s.handlePushSnapshots))
	mux.HandleFunc("GET /api/agents/summary", s.handleSummary)
	mux.HandleFunc("GET /api/agents/status", s.handleLiveStatus)
	mux.HandleFunc("POST /api/agents/collect", s.requireAPIKey(s.handleCollect))
	mux.HandleFunc("POST /api/agents/kill", s.requireAPIKey(s.handleKill))

	mux.HandleFunc("GET /api/agents/events", s.handleListEvents)
	mux.HandleFunc("POST /api/agents/events", s.requireAPIKey(s.handleLogEvent))
	mux.HandleFunc("GET /api/agents/tasks", s.handleListTasks)
	mux.HandleFunc("GET /api/agents/comms", s.handleListComms)
	mux.HandleFunc("POST /api/agents/comms", s.requireAPIKey(s.handleLogComms))

	mux.HandleFunc("GET /api/agents/activities", withCORS(s.handleListActivities))
	mux.HandleFunc("POST /api/agents/activities", withCORS(s.requireAPIKey(s.handleLogActivity)))
	mux.HandleFunc("OPTIONS /api/agents/activities", withCORS(handlePreflight))

	return recoveryMiddleware(s.logger, s.accessLog(bodySizeMiddleware(mux)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognised is
// logged and reported as a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	writeErrorMessage(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidBatch),
		errors.Is(err, domain.ErrInvalidEvent),
		errors.Is(err, domain.ErrInvalidComm),
		errors.Is(err, domain.ErrInvalidActivity),
		errors.Is(err, domain.ErrAgentRequired),
		errors.Is(err, domain.ErrUnknownAgent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidJSON
	}
	return nil
}

var errInvalidJSON = errors.New("invalid JSON body")
