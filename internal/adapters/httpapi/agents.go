package httpapi

import (
	"fmt"
	"net/http"

	"github.com/bnema/mission-control/internal/adapters/upstream"
	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.dashboard.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"agents":  toSnapshotMap(overview.Agents),
		"board":   toBoardDTO(overview.Board),
		"events":  toEventDTOs(overview.Events),
		"tasks":   toTaskDTOs(overview.Tasks),
		"comms":   toCommDTOs(overview.Comms),
		"summary": toSummaryDTO(overview.Summary),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.dashboard.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

func (s *Server) handleLiveStatus(w http.ResponseWriter, r *http.Request) {
	live, err := s.dashboard.Live(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"agents":    toSnapshotMap(live.Agents),
		"summary":   toSummaryDTO(live.Summary),
		"fetchedAt": live.FetchedAt.UTC(),
	})
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	var batch upstream.SessionBatch
	if err := decodeJSON(r, &batch); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "sessions array required")
		return
	}

	records, err := batch.Records()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.ingest.Ingest(r.Context(), records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCollectResponse(result))
}

func (s *Server) handlePushSnapshots(w http.ResponseWriter, r *http.Request) {
	var req pushSnapshotsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidBatch, err))
		return
	}

	if req.Agents == nil {
		s.writeError(w, r, fmt.Errorf("%w: agents array required", domain.ErrInvalidBatch))
		return
	}

	commands := make([]application.PushSnapshotCommand, 0, len(*req.Agents))
	for _, agent := range *req.Agents {
		commands = append(commands, agent.command())
	}

	count, err := s.dashboard.StoreSnapshots(r.Context(), commands)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}

func (s *Server) handleKill(w http.ResponseWriter, r *http.Request) {
	var req killRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := s.journal.RequestKill(r.Context(), application.KillCommand{
		Agent:  domain.AgentID(req.Agent),
		Reason: req.Reason,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": fmt.Sprintf("Kill request logged for %s. Will be processed on next collection cycle.", event.Agent),
	})
}
