package domain

import (
	"fmt"
	"strings"
	"time"
)

// Comm is one message exchanged between agents.
type Comm struct {
	ID        string
	From      AgentID
	To        AgentID
	Message   string
	CreatedAt time.Time
}

func (c Comm) Validate() error {
	if strings.TrimSpace(string(c.From)) == "" {
		return fmt.Errorf("%w: from is required", ErrInvalidComm)
	}
	if strings.TrimSpace(string(c.To)) == "" {
		return fmt.Errorf("%w: to is required", ErrInvalidComm)
	}
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidComm)
	}
	return nil
}
