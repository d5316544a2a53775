package httpapi

import (
	"time"

	"github.com/bnema/mission-control/internal/adapters/upstream"
	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type snapshotDTO struct {
	Agent          domain.AgentID     `json:"agent"`
	SessionKey     string             `json:"sessionKey"`
	Status         domain.AgentStatus `json:"status"`
	Model          *string            `json:"model"`
	TotalTokens    int64              `json:"totalTokens"`
	ContextTokens  int64              `json:"contextTokens"`
	ContextPercent float64            `json:"contextPercent"`
	InputTokens    int64              `json:"inputTokens"`
	OutputTokens   int64              `json:"outputTokens"`
	LastMessageAt  *time.Time         `json:"lastMessageAt"`
	LastChannel    *string            `json:"lastChannel"`
	CurrentTask    *string            `json:"currentTask"`
	SnapshotAt     *time.Time         `json:"snapshotAt,omitempty"`
}

func toSnapshotDTO(s domain.AgentSnapshot) snapshotDTO {
	return snapshotDTO{
		Agent:          s.Agent,
		SessionKey:     s.SessionKey,
		Status:         s.Status,
		Model:          optionalString(s.Model),
		TotalTokens:    s.TotalTokens,
		ContextTokens:  s.ContextTokens,
		ContextPercent: s.ContextPercent,
		InputTokens:    s.InputTokens,
		OutputTokens:   s.OutputTokens,
		LastMessageAt:  optionalTime(s.LastMessageAt),
		LastChannel:    optionalString(s.LastChannel),
		CurrentTask:    optionalString(s.CurrentTask),
		SnapshotAt:     optionalTime(s.SnapshotAt),
	}
}

func toSnapshotMap(snapshots map[domain.AgentID]domain.AgentSnapshot) map[domain.AgentID]snapshotDTO {
	out := make(map[domain.AgentID]snapshotDTO, len(snapshots))
	for id, snapshot := range snapshots {
		out[id] = toSnapshotDTO(snapshot)
	}
	return out
}

type summaryDTO struct {
	TotalTokens     int64           `json:"totalTokens"`
	AgentCount      int             `json:"agentCount"`
	AvgContext      float64         `json:"avgContext"`
	MaxContextAgent *domain.AgentID `json:"maxContextAgent"`
	MaxContextPct   float64         `json:"maxContextPct"`
}

func toSummaryDTO(s domain.TeamSummary) summaryDTO {
	dto := summaryDTO{
		TotalTokens:   s.TotalTokens,
		AgentCount:    s.AgentCount,
		AvgContext:    s.AvgContext,
		MaxContextPct: s.MaxContextPct,
	}
	if s.MaxContextAgent != "" {
		agent := s.MaxContextAgent
		dto.MaxContextAgent = &agent
	}
	return dto
}

type boardCardDTO struct {
	Agent    domain.AgentID     `json:"agent"`
	Name     string             `json:"name"`
	Role     string             `json:"role,omitempty"`
	Status   domain.AgentStatus `json:"status"`
	Snapshot *snapshotDTO       `json:"snapshot"`
}

func toBoardDTO(cards []application.AgentCard) []boardCardDTO {
	out := make([]boardCardDTO, 0, len(cards))
	for _, card := range cards {
		dto := boardCardDTO{
			Agent:  card.Agent.ID,
			Name:   card.Agent.Name,
			Role:   card.Agent.Role,
			Status: card.Status,
		}
		if card.Snapshot != nil {
			snapshot := toSnapshotDTO(*card.Snapshot)
			dto.Snapshot = &snapshot
		}
		out = append(out, dto)
	}
	return out
}

type eventDTO struct {
	ID         string           `json:"id"`
	Agent      domain.AgentID   `json:"agent"`
	EventType  domain.EventType `json:"eventType"`
	Summary    string           `json:"summary"`
	TokensUsed int64            `json:"tokensUsed"`
	Cost       float64          `json:"cost"`
	Metadata   map[string]any   `json:"metadata"`
	CreatedAt  time.Time        `json:"createdAt"`
}

func toEventDTOs(events []domain.Event) []eventDTO {
	out := make([]eventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out
}

func toEventDTO(e domain.Event) eventDTO {
	return eventDTO{
		ID:         e.ID,
		Agent:      e.Agent,
		EventType:  e.Type,
		Summary:    e.Summary,
		TokensUsed: e.TokensUsed,
		Cost:       e.Cost,
		Metadata:   e.Metadata,
		CreatedAt:  e.CreatedAt,
	}
}

type eventRequest struct {
	Agent      string         `json:"agent"`
	EventType  string         `json:"eventType"`
	Summary    string         `json:"summary"`
	TokensUsed int64          `json:"tokensUsed"`
	Cost       float64        `json:"cost"`
	Metadata   map[string]any `json:"metadata"`
}

func (r eventRequest) event() domain.Event {
	return domain.Event{
		Agent:      domain.AgentID(r.Agent),
		Type:       domain.EventType(r.EventType),
		Summary:    r.Summary,
		TokensUsed: r.TokensUsed,
		Cost:       r.Cost,
		Metadata:   r.Metadata,
	}
}

type taskDTO struct {
	ID          string            `json:"id"`
	Agent       domain.AgentID    `json:"agent"`
	Summary     string            `json:"summary"`
	Status      domain.TaskStatus `json:"status"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt *time.Time        `json:"completedAt"`
	TokensUsed  int64             `json:"tokensUsed"`
}

func toTaskDTOs(tasks []domain.Task) []taskDTO {
	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskDTO{
			ID:          t.ID,
			Agent:       t.Agent,
			Summary:     t.Summary,
			Status:      t.Status,
			StartedAt:   t.StartedAt,
			CompletedAt: optionalTime(t.CompletedAt),
			TokensUsed:  t.TokensUsed,
		})
	}
	return out
}

type commDTO struct {
	ID        string         `json:"id"`
	From      domain.AgentID `json:"from"`
	To        domain.AgentID `json:"to"`
	Message   string         `json:"message"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toCommDTOs(comms []domain.Comm) []commDTO {
	out := make([]commDTO, 0, len(comms))
	for _, c := range comms {
		out = append(out, commDTO{
			ID:        c.ID,
			From:      c.From,
			To:        c.To,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}

type commRequest struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (r commRequest) comm() domain.Comm {
	comm := domain.Comm{
		From:    domain.AgentID(r.From),
		To:      domain.AgentID(r.To),
		Message: r.Message,
	}
	if r.CreatedAt != nil {
		comm.CreatedAt = r.CreatedAt.UTC()
	}
	return comm
}

// Activities keep the snake_case field names their producers already send.
type activityDTO struct {
	ID           string              `json:"id"`
	Agent        domain.AgentID      `json:"agent"`
	ActivityType domain.ActivityType `json:"activity_type"`
	Summary      string              `json:"summary"`
	Detail       *string             `json:"detail"`
	Metadata     map[string]any      `json:"metadata"`
	CreatedAt    time.Time           `json:"created_at"`
}

func toActivityDTO(a domain.Activity) activityDTO {
	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return activityDTO{
		ID:           a.ID,
		Agent:        a.Agent,
		ActivityType: a.Type,
		Summary:      a.Summary,
		Detail:       optionalString(a.Detail),
		Metadata:     metadata,
		CreatedAt:    a.CreatedAt,
	}
}

type activityRequest struct {
	Agent        string         `json:"agent"`
	ActivityType string         `json:"activity_type"`
	Summary      string         `json:"summary"`
	Detail       string         `json:"detail"`
	Metadata     map[string]any `json:"metadata"`
}

func (r activityRequest) activity() domain.Activity {
	return domain.Activity{
		Agent:    domain.AgentID(r.Agent),
		Type:     domain.ActivityType(r.ActivityType),
		Summary:  r.Summary,
		Detail:   r.Detail,
		Metadata: r.Metadata,
	}
}

// pushSnapshotsRequest keeps Agents as a pointer so a missing field is told
// apart from an empty array.
type pushSnapshotsRequest struct {
	Agents *[]pushSnapshotDTO `json:"agents"`
}

type pushSnapshotDTO struct {
	Agent         string              `json:"agent"`
	SessionKey    string              `json:"sessionKey"`
	Status        string              `json:"status"`
	Model         string              `json:"model"`
	TotalTokens   upstream.TokenCount `json:"totalTokens"`
	ContextTokens upstream.TokenCount `json:"contextTokens"`
	InputTokens   upstream.TokenCount `json:"inputTokens"`
	OutputTokens  upstream.TokenCount `json:"outputTokens"`
	LastMessageAt *time.Time          `json:"lastMessageAt"`
	LastChannel   string              `json:"lastChannel"`
	CurrentTask   string              `json:"currentTask"`
}

func (d pushSnapshotDTO) command() application.PushSnapshotCommand {
	cmd := application.PushSnapshotCommand{
		Agent:         domain.AgentID(d.Agent),
		SessionKey:    d.SessionKey,
		Status:        domain.AgentStatus(d.Status),
		Model:         d.Model,
		TotalTokens:   int64(d.TotalTokens),
		ContextTokens: int64(d.ContextTokens),
		InputTokens:   int64(d.InputTokens),
		OutputTokens:  int64(d.OutputTokens),
		LastChannel:   d.LastChannel,
		CurrentTask:   d.CurrentTask,
	}
	if d.LastMessageAt != nil {
		cmd.LastMessageAt = d.LastMessageAt.UTC()
	}
	return cmd
}

type collectedDTO struct {
	Agent          domain.AgentID     `json:"agent"`
	Status         domain.AgentStatus `json:"status"`
	ContextPercent float64            `json:"contextPercent"`
}

type alertDTO struct {
	Agent          domain.AgentID `json:"agent"`
	ContextPercent float64        `json:"contextPercent"`
}

type collectResponse struct {
	OK        bool           `json:"ok"`
	Collected []collectedDTO `json:"collected"`
	Alerts    []alertDTO     `json:"alerts"`
}

func toCollectResponse(result application.IngestResult) collectResponse {
	resp := collectResponse{
		OK:        true,
		Collected: make([]collectedDTO, 0, len(result.Accepted)),
		Alerts:    make([]alertDTO, 0, len(result.Alerts)),
	}
	for _, snapshot := range result.Accepted {
		resp.Collected = append(resp.Collected, collectedDTO{
			Agent:          snapshot.Agent,
			Status:         snapshot.Status,
			ContextPercent: snapshot.ContextPercent,
		})
	}
	for _, alert := range result.Alerts {
		resp.Alerts = append(resp.Alerts, alertDTO{Agent: alert.Agent, ContextPercent: alert.ContextPercent})
	}
	return resp
}

type killRequest struct {
	Agent  string `json:"agent"`
	Reason string `json:"reason"`
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
