package domain

import (
	"fmt"
	"strings"
)

type AgentID string

type Agent struct {
	ID         AgentID
	Name       string
	Role       string
	SessionKey string
}

// Roster is the immutable set of monitored agents. Its order is the fixed
// iteration order used for display and for tie-breaking in summaries.
type Roster struct {
	agents    []Agent
	byID      map[AgentID]int
	bySession map[string]AgentID
}

func NewRoster(agents []Agent) (Roster, error) {
	r := Roster{
		agents:    make([]Agent, 0, len(agents)),
		byID:      make(map[AgentID]int, len(agents)),
		bySession: make(map[string]AgentID, len(agents)),
	}

	for _, agent := range agents {
		agent.ID = AgentID(strings.TrimSpace(string(agent.ID)))
		agent.SessionKey = strings.TrimSpace(agent.SessionKey)
		if err := agent.Validate(); err != nil {
			return Roster{}, err
		}
		if _, ok := r.byID[agent.ID]; ok {
			return Roster{}, fmt.Errorf("duplicate agent id %q", agent.ID)
		}
		if owner, ok := r.bySession[agent.SessionKey]; ok {
			return Roster{}, fmt.Errorf("session key %q already mapped to agent %q", agent.SessionKey, owner)
		}
		if strings.TrimSpace(agent.Name) == "" {
			agent.Name = string(agent.ID)
		}

		r.byID[agent.ID] = len(r.agents)
		r.bySession[agent.SessionKey] = agent.ID
		r.agents = append(r.agents, agent)
	}

	return r, nil
}

func DefaultRoster() Roster {
	roster, err := NewRoster(DefaultAgents())
	if err != nil {
		panic(err)
	}
	return roster
}

func DefaultAgents() []Agent {
	return []Agent{
		{ID: "noah", Name: "Noah", Role: "Orchestrator", SessionKey: "agent:main:main"},
		{ID: "kai", Name: "Kai", Role: "Engineer", SessionKey: "agent:kai:main"},
		{ID: "dora", Name: "Dora", Role: "Researcher", SessionKey: "agent:researcher:main"},
	}
}

func (a Agent) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("agent id is required")
	}
	if strings.TrimSpace(a.SessionKey) == "" {
		return fmt.Errorf("agent %q: session key is required", a.ID)
	}
	return nil
}

// Resolve maps a session key to the agent that owns it.
func (r Roster) Resolve(sessionKey string) (AgentID, bool) {
	id, ok := r.bySession[strings.TrimSpace(sessionKey)]
	return id, ok
}

func (r Roster) Lookup(id AgentID) (Agent, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Agent{}, false
	}
	return r.agents[idx], true
}

func (r Roster) Contains(id AgentID) bool {
	_, ok := r.byID[id]
	return ok
}

func (r Roster) Agents() []Agent {
	out := make([]Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

func (r Roster) Order() []AgentID {
	order := make([]AgentID, 0, len(r.agents))
	for _, agent := range r.agents {
		order = append(order, agent.ID)
	}
	return order
}

func (r Roster) Len() int {
	return len(r.agents)
}
