package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	RosterPathKey    = "roster.path"
	rosterFileMode   = 0o600
	rosterDirMode    = 0o700
	rosterConfigDir  = ".mission-control"
	rosterConfigFile = "agents.toml"
	tempFilePattern  = ".agents-*.toml.tmp"
)

// RosterRepository stores the agent roster in a TOML file. A missing file
// yields the built-in default roster.
type RosterRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RosterRepository = (*RosterRepository)(nil)

func NewRosterRepository(cfg *viper.Viper) (*RosterRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(RosterPathKey)
	if path == "" {
		defaultPath, err := DefaultRosterPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve roster path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &RosterRepository{path: absPath, mu: lockForPath(absPath)}, nil
}

func DefaultRosterPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, rosterConfigDir, rosterConfigFile), nil
}

func (r *RosterRepository) Path() string {
	return r.path
}

func (r *RosterRepository) Load(ctx context.Context) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return domain.Roster{}, err
	}
	if !found {
		return domain.DefaultRoster(), nil
	}

	agents := make([]domain.Agent, 0, len(file.Agents))
	for _, entry := range file.Agents {
		agents = append(agents, fromSchema(entry))
	}

	roster, err := domain.NewRoster(agents)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("roster file %s: %w", r.path, err)
	}
	return roster, nil
}

func (r *RosterRepository) Save(ctx context.Context, roster domain.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := fileSchema{Version: currentSchemaVersion}
	for _, agent := range roster.Agents() {
		file.Agents = append(file.Agents, toSchema(agent))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *RosterRepository) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read roster file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, false, fmt.Errorf("decode roster file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *RosterRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, rosterDirMode); err != nil {
		return fmt.Errorf("create roster directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode roster file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp roster file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp roster file: %w", err)
	}
	if err := tempFile.Chmod(rosterFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp roster file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp roster file: %w", err)
	}
	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace roster file: %w", err)
	}
	cleanup = false

	return nil
}

func toSchema(agent domain.Agent) agentSchema {
	return agentSchema{
		ID:         string(agent.ID),
		Name:       agent.Name,
		Role:       agent.Role,
		SessionKey: agent.SessionKey,
	}
}

func fromSchema(entry agentSchema) domain.Agent {
	return domain.Agent{
		ID:         domain.AgentID(entry.ID),
		Name:       entry.Name,
		Role:       entry.Role,
		SessionKey: entry.SessionKey,
	}
}
