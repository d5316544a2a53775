package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/mission-control/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestRosterListShowsDefaultAgents(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "roster", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agent:main:main")
	assert.Contains(t, stdout, "agent:kai:main")
	assert.Contains(t, stdout, "agent:researcher:main")
}

func TestRosterAddAndRemove(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "roster", "add", "--id", "iris", "--name", "Iris", "--session-key", "agent:iris:main")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved Iris (iris) -> agent:iris:main")

	stdout, _, err = executeCLI(t, home, "roster", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agent:iris:main")

	_, err = os.Stat(filepath.Join(home, ".mission-control", "agents.toml"))
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "roster", "remove", "iris")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "roster", "remove", "iris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown agent")
}

func TestRosterAddRequiresSessionKey(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "roster", "add", "--id", "iris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"session-key\" not set")
}

func TestStatusShowsOfflineBoardWithoutSnapshots(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agents: 0/3")
	assert.Contains(t, stdout, "Noah (noah)")
	assert.Contains(t, stdout, "Offline")
	assert.Contains(t, stdout, "no snapshot yet")
}

func TestStatusRejectsUnknownFormat(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "status", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format \"xml\"")
}

func TestCollectStoresSnapshotsAndRaisesAlerts(t *testing.T) {
	upstream := newSessionsServer(t, "test-token")
	home := t.TempDir()
	t.Setenv("MC_UPSTREAM_URL", upstream.URL)
	t.Setenv("MC_UPSTREAM_TOKEN", "test-token")

	stdout, stderr, err := executeCLI(t, home, "collect")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Collecting agent sessions...")
	assert.Contains(t, stdout, "kai")
	assert.Contains(t, stdout, "85.0%")
	assert.Contains(t, stdout, "collected: 2 | dropped: 1 | alerts: 1")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agents: 2/3")
	assert.Contains(t, stdout, "max: kai 85.0%")
	assert.Contains(t, stdout, "[alert]")

	stdout, _, err = executeCLI(t, home, "events", "--agent", "kai")
	require.NoError(t, err)
	assert.Contains(t, stdout, "context_alert")
}

func TestStatusJSONAndYAMLOutput(t *testing.T) {
	upstream := newSessionsServer(t, "test-token")
	home := t.TempDir()
	t.Setenv("MC_UPSTREAM_URL", upstream.URL)
	t.Setenv("MC_UPSTREAM_TOKEN", "test-token")

	_, _, err := executeCLI(t, home, "collect")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status", "--format", "json")
	require.NoError(t, err)
	var view boardView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	require.Len(t, view.Agents, 3)
	assert.Equal(t, "offline", string(view.Agents[0].Status))
	assert.True(t, view.Agents[1].Alert)
	assert.Equal(t, 85.0, view.Agents[1].ContextPercent)
	assert.Equal(t, "kai", string(view.Summary.MaxContextAgent))

	stdout, _, err = executeCLI(t, home, "status", "--format", "yaml")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	assert.Contains(t, decoded, "agents")
	assert.Contains(t, decoded, "summary")
}

func TestStatusLiveDoesNotPersist(t *testing.T) {
	upstream := newSessionsServer(t, "test-token")
	home := t.TempDir()
	t.Setenv("MC_UPSTREAM_URL", upstream.URL)
	t.Setenv("MC_UPSTREAM_TOKEN", "test-token")

	stdout, stderr, err := executeCLI(t, home, "status", "--live")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Fetching live sessions...")
	assert.Contains(t, stdout, "agents: 2/3")
	assert.Contains(t, stdout, "live just now")

	stdout, _, err = executeCLI(t, home, "status", "--live", "--format", "json")
	require.NoError(t, err)
	var view boardView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	require.Len(t, view.Agents, 3)
	assert.Equal(t, int64(600_000), view.Agents[1].InputTokens)
	assert.Equal(t, int64(250_000), view.Agents[1].OutputTokens)
	assert.NotNil(t, view.FetchedAt)

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agents: 0/3")
}

func TestCollectWithoutTokenFails(t *testing.T) {
	t.Setenv("MC_UPSTREAM_TOKEN", "")

	_, _, err := executeCLI(t, t.TempDir(), "collect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream session source not configured")
}

func TestCollectReportsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	t.Setenv("MC_UPSTREAM_URL", server.URL)
	t.Setenv("MC_UPSTREAM_TOKEN", "test-token")

	_, _, err := executeCLI(t, t.TempDir(), "collect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream session source unavailable")
	assert.Contains(t, err.Error(), "upstream 503")
}

func TestTokenSetStoresFileSecret(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MC_UPSTREAM_TOKEN", "")

	stdout, _, err := executeCLI(t, home, "token", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "not configured")

	_, _, err = executeCLI(t, home, "token", "set", "--value", "from-file")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "token", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "upstream token upstream/token: configured")
}

func TestKillRecordsEvent(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "kill", "kai", "--reason", "runaway loop")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Kill request logged for kai")

	stdout, _, err = executeCLI(t, home, "events")
	require.NoError(t, err)
	assert.Contains(t, stdout, "kill_request")
}

func TestExplicitConfigFileIsUsed(t *testing.T) {
	home := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "mc.toml")
	dbPath := filepath.Join(t.TempDir(), "custom.db")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf("[db]\npath = %q\n", dbPath)), 0o600))

	_, _, err := executeCLI(t, home, "--config", configPath, "comms")
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func newSessionsServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	updatedAt := time.Now().Add(-time.Minute).UnixMilli()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.Equal(t, "board-mission-control", r.Header.Get("X-Source"))
		_, _ = fmt.Fprintf(w, `{"sessions":[
			{"key":"agent:kai:main","updatedAt":%d,"totalTokens":850000,"contextTokens":1000000,"abortedLastRun":false,"model":"claude-opus","inputTokens":600000,"outputTokens":250000},
			{"key":"agent:researcher:main","updatedAt":%d,"totalTokens":120000,"contextTokens":1000000},
			{"key":"agent:unknown:main","updatedAt":%d,"totalTokens":5,"contextTokens":10}
		]}`, updatedAt, updatedAt, updatedAt)
	}))
	t.Cleanup(server.Close)
	return server
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("MC_LOG_LEVEL", "warn")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
