package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	events, err := s.journal.ListEvents(r.Context(), domain.AgentID(query.Get("agent")), intParam(query.Get("limit")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTOs(events))
}

func (s *Server) handleLogEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidEvent, err))
		return
	}

	stored, err := s.journal.LogEvent(r.Context(), req.event())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(stored))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.journal.ListTasks(r.Context(), intParam(r.URL.Query().Get("limit")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

func (s *Server) handleListComms(w http.ResponseWriter, r *http.Request) {
	comms, err := s.journal.ListComms(r.Context(), intParam(r.URL.Query().Get("limit")))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommDTOs(comms))
}

// handleLogComms accepts a single comm object or an array of them.
func (s *Server) handleLogComms(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidComm, err))
		return
	}

	var reqs []commRequest
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidComm, err))
			return
		}
	} else {
		var single commRequest
		if err := json.Unmarshal(trimmed, &single); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidComm, err))
			return
		}
		reqs = []commRequest{single}
	}

	comms := make([]domain.Comm, 0, len(reqs))
	for _, req := range reqs {
		comms = append(comms, req.comm())
	}

	stored, err := s.journal.LogComms(r.Context(), comms)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": len(stored)})
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	activities, err := s.journal.ListActivities(r.Context(), ports.ActivityQuery{
		Agent:  domain.AgentID(query.Get("agent")),
		Type:   domain.ActivityType(query.Get("type")),
		Limit:  intParam(query.Get("limit")),
		Offset: intParam(query.Get("offset")),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]activityDTO, 0, len(activities))
	for _, activity := range activities {
		out = append(out, toActivityDTO(activity))
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": out, "count": len(out)})
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidActivity, err))
		return
	}

	stored, err := s.journal.LogActivity(r.Context(), req.activity())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"activity": toActivityDTO(stored)})
}

// intParam returns 0 for missing or malformed values so the services apply
// their defaults.
func intParam(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
