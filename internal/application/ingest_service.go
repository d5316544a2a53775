package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
)

type IngestService struct {
	normalizer domain.Normalizer
	evaluator  domain.AlertEvaluator
	snapshots  ports.SnapshotStore
	events     ports.EventStore
	sessions   ports.SessionSource
	clock      ports.Clock
	logger     *slog.Logger
}

func NewIngestService(
	roster domain.Roster,
	cfg IngestConfig,
	snapshots ports.SnapshotStore,
	events ports.EventStore,
	sessions ports.SessionSource,
	clock ports.Clock,
	logger *slog.Logger,
) *IngestService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &IngestService{
		normalizer: domain.NewNormalizer(roster, cfg.Normalizer),
		evaluator:  domain.NewAlertEvaluator(cfg.AlertThreshold, cfg.AlertPolicy),
		snapshots:  snapshots,
		events:     events,
		sessions:   sessions,
		clock:      clock,
		logger:     logger,
	}
}

// Ingest normalizes a batch of session records, persists one snapshot per
// accepted record and records a context alert for every snapshot above the
// threshold. A failed write only affects its own record.
func (s *IngestService) Ingest(ctx context.Context, records []domain.SessionRecord) (IngestResult, error) {
	if err := ctx.Err(); err != nil {
		return IngestResult{}, err
	}

	now := s.clock.Now()
	result := IngestResult{
		Accepted: make([]domain.AgentSnapshot, 0, len(records)),
		Alerts:   []domain.AlertEvent{},
	}

	for _, record := range records {
		snapshot, ok := s.normalizer.Normalize(record, now)
		if !ok {
			result.Dropped++
			continue
		}

		var previous *domain.AgentSnapshot
		if s.evaluator.NeedsPrevious() {
			previous = s.currentSnapshot(ctx, snapshot.Agent)
		}

		if err := s.snapshots.Append(ctx, snapshot); err != nil {
			s.logger.Warn("persist snapshot failed", "agent", snapshot.Agent, "session_key", snapshot.SessionKey, "err", err)
		} else {
			result.Accepted = append(result.Accepted, snapshot)
		}

		alert, ok := s.evaluator.Evaluate(snapshot, previous)
		if !ok {
			continue
		}
		result.Alerts = append(result.Alerts, alert)

		if _, err := s.events.Append(ctx, alert.Event()); err != nil {
			s.logger.Warn("persist context alert failed", "agent", alert.Agent, "context_percent", alert.ContextPercent, "err", err)
		}
	}

	s.logger.Info("ingested session batch",
		"records", len(records),
		"accepted", len(result.Accepted),
		"dropped", result.Dropped,
		"alerts", len(result.Alerts),
	)

	return result, nil
}

// Collect pulls the current sessions from the upstream source and ingests them.
func (s *IngestService) Collect(ctx context.Context) (IngestResult, error) {
	records, err := fetchSessions(ctx, s.sessions)
	if err != nil {
		return IngestResult{}, err
	}

	return s.Ingest(ctx, records)
}

func (s *IngestService) currentSnapshot(ctx context.Context, agent domain.AgentID) *domain.AgentSnapshot {
	snapshot, err := s.snapshots.Latest(ctx, agent)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			s.logger.Warn("load current snapshot failed", "agent", agent, "err", err)
		}
		return nil
	}

	return &snapshot
}

func fetchSessions(ctx context.Context, source ports.SessionSource) ([]domain.SessionRecord, error) {
	if source == nil {
		return nil, domain.ErrUpstreamNotConfigured
	}

	records, err := source.FetchSessions(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamNotConfigured) || errors.Is(err, domain.ErrUpstreamUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	return records, nil
}
