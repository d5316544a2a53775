package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
)

// RosterService edits the persisted roster. A running server keeps the
// roster it loaded at startup.
type RosterService struct {
	repo ports.RosterRepository
}

func NewRosterService(repo ports.RosterRepository) *RosterService {
	return &RosterService{repo: repo}
}

func (s *RosterService) List(ctx context.Context) ([]domain.Agent, error) {
	roster, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return roster.Agents(), nil
}

// Add appends agent, or replaces the entry with the same id in place.
func (s *RosterService) Add(ctx context.Context, agent domain.Agent) (domain.Agent, error) {
	roster, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("load roster: %w", err)
	}

	agent.ID = domain.AgentID(strings.TrimSpace(string(agent.ID)))
	agents := roster.Agents()
	replaced := false
	for i := range agents {
		if agents[i].ID == agent.ID {
			agents[i] = agent
			replaced = true
			break
		}
	}
	if !replaced {
		agents = append(agents, agent)
	}

	next, err := domain.NewRoster(agents)
	if err != nil {
		return domain.Agent{}, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Agent{}, fmt.Errorf("save roster: %w", err)
	}

	stored, _ := next.Lookup(agent.ID)
	return stored, nil
}

func (s *RosterService) Remove(ctx context.Context, id domain.AgentID) error {
	roster, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	id = domain.AgentID(strings.TrimSpace(string(id)))
	if !roster.Contains(id) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAgent, id)
	}

	agents := make([]domain.Agent, 0, roster.Len()-1)
	for _, agent := range roster.Agents() {
		if agent.ID != id {
			agents = append(agents, agent)
		}
	}

	next, err := domain.NewRoster(agents)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}
