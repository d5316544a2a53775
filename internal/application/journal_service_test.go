package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/bnema/mission-control/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type journalFixture struct {
	events     *mocks.MockEventStore
	comms      *mocks.MockCommStore
	activities *mocks.MockActivityStore
	service    *JournalService
}

func newJournalFixture(t *testing.T) journalFixture {
	t.Helper()
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(ingestNow).Maybe()

	f := journalFixture{
		events:     mocks.NewMockEventStore(t),
		comms:      mocks.NewMockCommStore(t),
		activities: mocks.NewMockActivityStore(t),
	}
	f.service = NewJournalService(f.events, f.comms, f.activities, clock, nil)
	return f
}

func echoEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = "evt-1"
	return event, nil
}

func TestJournalLogEventStampsCreatedAt(t *testing.T) {
	f := newJournalFixture(t)
	f.events.EXPECT().Append(mockAnyContext(), mock.Anything).RunAndReturn(echoEvent).Once()

	event, err := f.service.LogEvent(context.Background(), domain.Event{Agent: " kai ", Type: domain.EventTaskStart, Summary: "crawl"})
	require.NoError(t, err)

	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, domain.AgentID("kai"), event.Agent)
	assert.Equal(t, ingestNow, event.CreatedAt)
}

func TestJournalLogEventValidates(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.service.LogEvent(context.Background(), domain.Event{Type: domain.EventTaskStart})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	_, err = f.service.LogEvent(context.Background(), domain.Event{Agent: "kai"})
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)
}

func TestJournalListEventsAppliesLimits(t *testing.T) {
	f := newJournalFixture(t)
	f.events.EXPECT().List(mockAnyContext(), ports.EventQuery{Agent: "kai", Limit: DefaultEventLimit}).Return(nil, nil).Once()
	f.events.EXPECT().List(mockAnyContext(), ports.EventQuery{Limit: MaxListLimit}).Return(nil, nil).Once()

	_, err := f.service.ListEvents(context.Background(), "kai", 0)
	require.NoError(t, err)
	_, err = f.service.ListEvents(context.Background(), "", 10_000)
	require.NoError(t, err)
}

func TestJournalListTasks(t *testing.T) {
	f := newJournalFixture(t)
	f.events.EXPECT().List(mockAnyContext(), ports.EventQuery{Types: domain.TaskEventTypes, Limit: DefaultTaskLimit}).Return([]domain.Event{
		{ID: "1", Agent: "kai", Type: domain.EventTaskError, CreatedAt: ingestNow},
	}, nil).Once()

	tasks, err := f.service.ListTasks(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskError, tasks[0].Status)
	assert.Equal(t, "Task without description", tasks[0].Summary)
}

func TestJournalRequestKill(t *testing.T) {
	f := newJournalFixture(t)

	var recorded domain.Event
	f.events.EXPECT().Append(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, event domain.Event) { recorded = event }).
		RunAndReturn(echoEvent).Once()

	_, err := f.service.RequestKill(context.Background(), KillCommand{Agent: "dora", Reason: "runaway loop"})
	require.NoError(t, err)

	assert.Equal(t, domain.EventKillRequest, recorded.Type)
	assert.Equal(t, "Kill switch triggered: runaway loop", recorded.Summary)
	assert.Equal(t, "runaway loop", recorded.Metadata["reason"])
}

func TestJournalRequestKillRequiresAgent(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.service.RequestKill(context.Background(), KillCommand{Agent: "  "})
	assert.ErrorIs(t, err, domain.ErrAgentRequired)
}

func TestJournalLogComms(t *testing.T) {
	f := newJournalFixture(t)
	f.comms.EXPECT().Append(mockAnyContext(), mock.Anything).
		RunAndReturn(func(_ context.Context, comms []domain.Comm) ([]domain.Comm, error) { return comms, nil }).Once()

	comms, err := f.service.LogComms(context.Background(), []domain.Comm{
		{From: "noah", To: "kai", Message: "status?"},
	})
	require.NoError(t, err)
	require.Len(t, comms, 1)
	assert.Equal(t, ingestNow, comms[0].CreatedAt)
}

func TestJournalLogCommsRejectsInvalidEntry(t *testing.T) {
	f := newJournalFixture(t)

	_, err := f.service.LogComms(context.Background(), []domain.Comm{
		{From: "noah", To: "kai", Message: "ok"},
		{From: "noah", Message: "missing recipient"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidComm)

	_, err = f.service.LogComms(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidComm)
}

func TestJournalActivities(t *testing.T) {
	f := newJournalFixture(t)
	f.activities.EXPECT().Append(mockAnyContext(), mock.Anything).
		RunAndReturn(func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			a.ID = "act-1"
			return a, nil
		}).Once()
	f.activities.EXPECT().List(mockAnyContext(), ports.ActivityQuery{Agent: "kai", Limit: MaxActivityLimit}).
		Return([]domain.Activity{{ID: "act-1"}}, nil).Once()

	activity, err := f.service.LogActivity(context.Background(), domain.Activity{Agent: "kai", Type: domain.ActivityDeploy, Summary: " shipped "})
	require.NoError(t, err)
	assert.Equal(t, "shipped", activity.Summary)
	assert.Equal(t, ingestNow, activity.CreatedAt)

	list, err := f.service.ListActivities(context.Background(), ports.ActivityQuery{Agent: "kai", Limit: 1_000, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.service.LogActivity(context.Background(), domain.Activity{Agent: "kai", Type: "coffee", Summary: "break"})
	assert.ErrorIs(t, err, domain.ErrInvalidActivity)
}

func TestJournalWrapsStoreErrors(t *testing.T) {
	f := newJournalFixture(t)
	f.comms.EXPECT().List(mockAnyContext(), DefaultCommLimit).Return(nil, errors.New("boom")).Once()

	_, err := f.service.ListComms(context.Background(), -1)
	assert.ErrorContains(t, err, "list comms: boom")
}
