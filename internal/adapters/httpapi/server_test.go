package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/mission-control/internal/adapters/repo/sqlite"
	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "secret-key"

var serverNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

type serverFixture struct {
	handler  http.Handler
	sessions *mocks.MockSessionSource
}

func newServerFixture(t *testing.T) serverFixture {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "mc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(serverNow).Maybe()
	sessions := mocks.NewMockSessionSource(t)

	roster := domain.DefaultRoster()
	snapshots := sqlite.NewSnapshotRepository(db)
	events := sqlite.NewEventRepository(db)
	comms := sqlite.NewCommRepository(db)
	activities := sqlite.NewActivityRepository(db)

	server := NewServer(Services{
		Ingest:    application.NewIngestService(roster, application.DefaultIngestConfig(), snapshots, events, sessions, clock, nil),
		Dashboard: application.NewDashboardService(roster, domain.DefaultNormalizerConfig(), snapshots, events, comms, sessions, clock, nil),
		Journal:   application.NewJournalService(events, comms, activities, clock, nil),
	}, testAPIKey, nil)

	return serverFixture{handler: server.Handler(), sessions: sessions}
}

func (f serverFixture) do(t *testing.T, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("X-Api-Key", testAPIKey)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestWriteEndpointsRequireAPIKey(t *testing.T) {
	f := newServerFixture(t)

	for _, target := range []string{
		"/api/agents",
		"/api/agents/collect",
		"/api/agents/events",
		"/api/agents/comms",
		"/api/agents/activities",
		"/api/agents/kill",
	} {
		t.Run(target, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, target, `{}`, false)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}
}

func TestBearerTokenIsAccepted(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/agents/kill", strings.NewReader(`{"agent":"kai"}`))
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmptyAPIKeyRejectsWrites(t *testing.T) {
	server := NewServer(Services{}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/agents/kill", strings.NewReader(`{"agent":"kai"}`))
	req.Header.Set("X-Api-Key", "")
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCollectIngestsRosteredSessionsAndRaisesAlerts(t *testing.T) {
	f := newServerFixture(t)
	updatedAt := serverNow.Add(-time.Minute).UnixMilli()

	body := `{"sessions":[
		{"key":"agent:kai:main","updatedAt":` + jsonInt(updatedAt) + `,"totalTokens":850000,"contextTokens":1000000,"abortedLastRun":false},
		{"key":"agent:researcher:main","updatedAt":` + jsonInt(updatedAt) + `,"totalTokens":100000,"contextTokens":1000000},
		{"key":"agent:unknown:main","updatedAt":` + jsonInt(updatedAt) + `,"totalTokens":999999,"contextTokens":1000000}
	]}`
	rec := f.do(t, http.MethodPost, "/api/agents/collect", body, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp collectResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.OK)
	assert.ElementsMatch(t, []collectedDTO{
		{Agent: "kai", Status: domain.StatusWorking, ContextPercent: 85},
		{Agent: "dora", Status: domain.StatusOnline, ContextPercent: 10},
	}, resp.Collected)
	assert.Equal(t, []alertDTO{{Agent: "kai", ContextPercent: 85}}, resp.Alerts)

	events := f.do(t, http.MethodGet, "/api/agents/events?agent=kai", "", false)
	require.Equal(t, http.StatusOK, events.Code)
	var logged []eventDTO
	decodeBody(t, events, &logged)
	require.Len(t, logged, 1)
	assert.Equal(t, domain.EventContextAlert, logged[0].EventType)
	assert.Equal(t, "kai reached 85% of context (850000/1000000 tokens)", logged[0].Summary)

	summary := f.do(t, http.MethodGet, "/api/agents/summary", "", false)
	require.Equal(t, http.StatusOK, summary.Code)
	assert.JSONEq(t, `{"totalTokens":950000,"agentCount":2,"avgContext":47.5,"maxContextAgent":"kai","maxContextPct":85}`, summary.Body.String())
}

func TestCollectToleratesNonIntegerTokenCounts(t *testing.T) {
	f := newServerFixture(t)
	updatedAt := jsonInt(serverNow.Add(-time.Minute).UnixMilli())

	body := `{"sessions":[
		{"key":"agent:kai:main","updatedAt":` + updatedAt + `,"totalTokens":850000,"contextTokens":1e6,"abortedLastRun":false},
		{"key":"agent:main:main","updatedAt":` + updatedAt + `,"totalTokens":1.5,"contextTokens":"oops","inputTokens":-7}
	]}`
	rec := f.do(t, http.MethodPost, "/api/agents/collect", body, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp collectResponse
	decodeBody(t, rec, &resp)
	assert.ElementsMatch(t, []collectedDTO{
		{Agent: "kai", Status: domain.StatusWorking, ContextPercent: 85},
		{Agent: "noah", Status: domain.StatusOnline, ContextPercent: 0},
	}, resp.Collected)

	overview := f.do(t, http.MethodGet, "/api/agents", "", false)
	var stored struct {
		Agents map[string]snapshotDTO `json:"agents"`
	}
	decodeBody(t, overview, &stored)
	require.Contains(t, stored.Agents, "noah")
	assert.Equal(t, int64(1), stored.Agents["noah"].TotalTokens)
	assert.Equal(t, int64(1_000_000), stored.Agents["noah"].ContextTokens)
	assert.Zero(t, stored.Agents["noah"].InputTokens)
}

func TestCollectRejectsMissingSessions(t *testing.T) {
	f := newServerFixture(t)

	for name, body := range map[string]string{
		"missing":   `{}`,
		"not array": `{"sessions":{"key":"agent:kai:main"}}`,
		"not json":  `nope`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/agents/collect", body, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "sessions array required")
		})
	}
}

func TestOverviewListsOfflineAgentsOnBoard(t *testing.T) {
	f := newServerFixture(t)

	push := f.do(t, http.MethodPost, "/api/agents", `{"agents":[{"agent":"kai","status":"working","model":"claude-opus","totalTokens":500000,"contextTokens":1000000}]}`, true)
	require.Equal(t, http.StatusOK, push.Code, push.Body.String())
	assert.JSONEq(t, `{"ok":true,"count":1}`, push.Body.String())

	rec := f.do(t, http.MethodGet, "/api/agents", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Agents  map[string]snapshotDTO `json:"agents"`
		Board   []boardCardDTO         `json:"board"`
		Events  []eventDTO             `json:"events"`
		Tasks   []taskDTO              `json:"tasks"`
		Comms   []commDTO              `json:"comms"`
		Summary summaryDTO             `json:"summary"`
	}
	decodeBody(t, rec, &resp)

	require.Contains(t, resp.Agents, "kai")
	assert.Equal(t, 50.0, resp.Agents["kai"].ContextPercent)
	assert.Equal(t, "agent:kai:main", resp.Agents["kai"].SessionKey)
	require.Len(t, resp.Board, 3)
	assert.Equal(t, domain.AgentID("noah"), resp.Board[0].Agent)
	assert.Equal(t, domain.StatusOffline, resp.Board[0].Status)
	assert.Nil(t, resp.Board[0].Snapshot)
	assert.Equal(t, domain.StatusWorking, resp.Board[1].Status)
	assert.Equal(t, 1, resp.Summary.AgentCount)
	assert.Empty(t, resp.Events)
	assert.Empty(t, resp.Tasks)
	assert.Empty(t, resp.Comms)
}

func TestPushSnapshotsAcceptsEmptyBatch(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/agents", `{"agents":[]}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"ok":true,"count":0}`, rec.Body.String())

	missing := f.do(t, http.MethodPost, "/api/agents", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Contains(t, missing.Body.String(), "agents array required")
}

func TestPushSnapshotsRejectsUnknownAgent(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/agents", `{"agents":[{"agent":"ghost","status":"idle"}]}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown agent")
}

func TestLiveStatusMapsUpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not configured", err: domain.ErrUpstreamNotConfigured, want: http.StatusInternalServerError},
		{name: "unavailable", err: errors.New("connection refused"), want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)
			f.sessions.EXPECT().FetchSessions(mock.Anything).Return(nil, tt.err).Once()

			rec := f.do(t, http.MethodGet, "/api/agents/status", "", false)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLiveStatusSummarizesWithoutPersisting(t *testing.T) {
	f := newServerFixture(t)
	f.sessions.EXPECT().FetchSessions(mock.Anything).Return([]domain.SessionRecord{{
		Key:           "agent:main:main",
		UpdatedAt:     serverNow.Add(-time.Hour),
		TotalTokens:   300_000,
		ContextTokens: 0,
		InputTokens:   220_000,
		OutputTokens:  80_000,
	}}, nil).Once()

	rec := f.do(t, http.MethodGet, "/api/agents/status", "", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Agents    map[string]snapshotDTO `json:"agents"`
		Summary   summaryDTO             `json:"summary"`
		FetchedAt time.Time              `json:"fetchedAt"`
	}
	decodeBody(t, rec, &resp)
	require.Contains(t, resp.Agents, "noah")
	assert.Equal(t, domain.StatusIdle, resp.Agents["noah"].Status)
	assert.Equal(t, int64(1_000_000), resp.Agents["noah"].ContextTokens)
	assert.Equal(t, 30.0, resp.Agents["noah"].ContextPercent)
	assert.Equal(t, int64(220_000), resp.Agents["noah"].InputTokens)
	assert.Equal(t, int64(80_000), resp.Agents["noah"].OutputTokens)
	assert.True(t, serverNow.Equal(resp.FetchedAt))

	overview := f.do(t, http.MethodGet, "/api/agents/summary", "", false)
	assert.JSONEq(t, `{"totalTokens":0,"agentCount":0,"avgContext":0,"maxContextAgent":null,"maxContextPct":0}`, overview.Body.String())
}

func TestEventsAndTasks(t *testing.T) {
	f := newServerFixture(t)

	created := f.do(t, http.MethodPost, "/api/agents/events", `{"agent":"kai","eventType":"task_start","summary":"ship ingest","tokensUsed":1200}`, true)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var event eventDTO
	decodeBody(t, created, &event)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.EventTaskStart, event.EventType)

	invalid := f.do(t, http.MethodPost, "/api/agents/events", `{"summary":"no agent"}`, true)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	rec := f.do(t, http.MethodGet, "/api/agents/tasks", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []taskDTO
	decodeBody(t, rec, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskRunning, tasks[0].Status)
	assert.Nil(t, tasks[0].CompletedAt)
	assert.Equal(t, "ship ingest", tasks[0].Summary)
}

func TestCommsAcceptSingleAndBatch(t *testing.T) {
	f := newServerFixture(t)

	single := f.do(t, http.MethodPost, "/api/agents/comms", `{"from":"noah","to":"kai","message":"status?"}`, true)
	require.Equal(t, http.StatusOK, single.Code, single.Body.String())
	assert.JSONEq(t, `{"ok":true,"count":1}`, single.Body.String())

	batch := f.do(t, http.MethodPost, "/api/agents/comms", `[
		{"from":"kai","to":"noah","message":"on it","createdAt":"2026-02-14T11:00:00Z"},
		{"from":"dora","to":"kai","message":"found it"}
	]`, true)
	require.Equal(t, http.StatusOK, batch.Code, batch.Body.String())
	assert.JSONEq(t, `{"ok":true,"count":2}`, batch.Body.String())

	invalid := f.do(t, http.MethodPost, "/api/agents/comms", `{"from":"noah","message":"missing to"}`, true)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	rec := f.do(t, http.MethodGet, "/api/agents/comms?limit=2", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var comms []commDTO
	decodeBody(t, rec, &comms)
	require.Len(t, comms, 2)
	for _, comm := range comms {
		assert.NotEqual(t, "on it", comm.Message)
	}
}

func TestActivitiesCarryCORSHeaders(t *testing.T) {
	f := newServerFixture(t)

	preflight := f.do(t, http.MethodOptions, "/api/agents/activities", "", false)
	assert.Equal(t, http.StatusNoContent, preflight.Code)
	assert.Equal(t, "*", preflight.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, preflight.Header().Get("Access-Control-Allow-Headers"), "X-Api-Key")

	created := f.do(t, http.MethodPost, "/api/agents/activities", `{"agent":"dora","activity_type":"research","summary":"read papers"}`, true)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	assert.Equal(t, "*", created.Header().Get("Access-Control-Allow-Origin"))

	invalid := f.do(t, http.MethodPost, "/api/agents/activities", `{"agent":"dora","activity_type":"napping","summary":"zzz"}`, true)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Contains(t, invalid.Body.String(), "activity_type must be one of")

	rec := f.do(t, http.MethodGet, "/api/agents/activities?agent=dora&type=research", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	var resp struct {
		Activities []activityDTO `json:"activities"`
		Count      int           `json:"count"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "read papers", resp.Activities[0].Summary)
}

func TestKillRequiresAgent(t *testing.T) {
	f := newServerFixture(t)

	missing := f.do(t, http.MethodPost, "/api/agents/kill", `{"reason":"runaway"}`, true)
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	rec := f.do(t, http.MethodPost, "/api/agents/kill", `{"agent":"kai","reason":"runaway"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kill request logged for kai")

	events := f.do(t, http.MethodGet, "/api/agents/events?agent=kai", "", false)
	var logged []eventDTO
	decodeBody(t, events, &logged)
	require.Len(t, logged, 1)
	assert.Equal(t, domain.EventKillRequest, logged[0].EventType)
	assert.Equal(t, "runaway", logged[0].Metadata["reason"])
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
