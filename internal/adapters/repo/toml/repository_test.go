package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *RosterRepository {
	t.Helper()
	config := viper.New()
	config.Set(RosterPathKey, path)

	repo, err := NewRosterRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRosterRepositoryMissingFileYieldsDefault(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "agents.toml"))

	roster, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRoster().Order(), roster.Order())
}

func TestRosterRepositoryRoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "agents.toml")
	repo := newTestRepository(t, path)

	want, err := domain.NewRoster([]domain.Agent{
		{ID: "dora", Name: "Dora", Role: "Researcher", SessionKey: "agent:researcher:main"},
		{ID: "ivy", SessionKey: "agent:ivy:main"},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Agents(), got.Agents())
	assert.Equal(t, []domain.AgentID{"dora", "ivy"}, got.Order())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(rosterFileMode), info.Mode().Perm())
}

func TestRosterRepositorySerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agents.toml")
	repo := newTestRepository(t, path)
	require.NoError(t, repo.Save(context.Background(), domain.DefaultRoster()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "version = 1")
	assert.Contains(t, content, "[[agents]]")
	assert.Contains(t, content, "session_key")
	assert.Contains(t, content, "agent:kai:main")
}

func TestRosterRepositoryRejectsInvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed", content: "version = [", wantErr: "decode roster file"},
		{name: "future version", content: "version = 99\n", wantErr: "unsupported roster schema version 99"},
		{
			name:    "shared session key",
			content: "version = 1\n[[agents]]\nid = 'a'\nsession_key = 'k'\n[[agents]]\nid = 'b'\nsession_key = 'k'\n",
			wantErr: "already mapped",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "agents.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := newTestRepository(t, path).Load(context.Background())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRosterRepositoryHandWrittenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agents.toml")
	content := strings.Join([]string{
		"[[agents]]",
		`id = "noah"`,
		`session_key = "agent:main:main"`,
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	roster, err := newTestRepository(t, path).Load(context.Background())
	require.NoError(t, err)

	agent, ok := roster.Lookup("noah")
	require.True(t, ok)
	assert.Equal(t, "noah", agent.Name)
}

func TestRosterRepositorySaveCanceledContext(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agents.toml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestRepository(t, path).Save(ctx, domain.DefaultRoster())
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRosterRepositoriesShareLocksPerPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "agents.toml")
	first := newTestRepository(t, path)
	second := newTestRepository(t, path)

	assert.Same(t, first.mu, second.mu)
}
