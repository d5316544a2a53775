package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/mission-control/internal/domain"
)

// SessionPayload is one session as reported by the agent gateway.
type SessionPayload struct {
	Key            string     `json:"key"`
	UpdatedAt      EpochMilli `json:"updatedAt"`
	TotalTokens    TokenCount `json:"totalTokens"`
	ContextTokens  TokenCount `json:"contextTokens"`
	InputTokens    TokenCount `json:"inputTokens"`
	OutputTokens   TokenCount `json:"outputTokens"`
	Model          string     `json:"model"`
	AbortedLastRun *bool      `json:"abortedLastRun"`
	LastChannel    string     `json:"lastChannel"`
	CurrentTask    string     `json:"currentTask"`
}

func (p SessionPayload) Record() domain.SessionRecord {
	return domain.SessionRecord{
		Key:            p.Key,
		UpdatedAt:      p.UpdatedAt.Time(),
		TotalTokens:    int64(p.TotalTokens),
		ContextTokens:  int64(p.ContextTokens),
		InputTokens:    int64(p.InputTokens),
		OutputTokens:   int64(p.OutputTokens),
		Model:          p.Model,
		AbortedLastRun: p.AbortedLastRun,
		LastChannel:    p.LastChannel,
		CurrentTask:    p.CurrentTask,
	}
}

// SessionBatch is the body shared by the gateway response and the collect
// endpoint. Sessions stays raw so a missing or non-array field can be told
// apart from an empty batch.
type SessionBatch struct {
	Sessions json.RawMessage `json:"sessions"`
}

// Records decodes the batch. It fails with domain.ErrInvalidBatch when the
// sessions field is absent or not an array, or when an element is not a
// session object. Token counts never fail a batch, see TokenCount.
func (b SessionBatch) Records() ([]domain.SessionRecord, error) {
	raw := bytes.TrimSpace(b.Sessions)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: sessions array required", domain.ErrInvalidBatch)
	}

	var payloads []SessionPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidBatch, err)
	}

	records := make([]domain.SessionRecord, 0, len(payloads))
	for _, payload := range payloads {
		records = append(records, payload.Record())
	}
	return records, nil
}

// TokenCount is a token counter that accepts any JSON number (fractions are
// truncated), a numeric string or junk. Negative and non-numeric values
// decode as 0.
type TokenCount int64

func (c *TokenCount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	v, err := strconv.ParseFloat(raw, 64)
	switch {
	case err != nil && !errors.Is(err, strconv.ErrRange), math.IsNaN(v), v <= 0:
		*c = 0
	case v >= math.MaxInt64:
		*c = TokenCount(math.MaxInt64)
	default:
		*c = TokenCount(int64(v))
	}
	return nil
}

// EpochMilli accepts epoch milliseconds, a numeric string, an RFC 3339
// timestamp or null.
type EpochMilli struct {
	t time.Time
}

func NewEpochMilli(t time.Time) EpochMilli {
	return EpochMilli{t: t}
}

func (e EpochMilli) Time() time.Time {
	return e.t
}

func (e *EpochMilli) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` || raw == "0" {
		e.t = time.Time{}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			e.t = time.UnixMilli(ms).UTC()
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("updatedAt: %w", err)
		}
		e.t = parsed.UTC()
		return nil
	}

	ms, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("updatedAt: %w", err)
	}
	e.t = time.UnixMilli(int64(ms)).UTC()
	return nil
}

func (e EpochMilli) MarshalJSON() ([]byte, error) {
	if e.t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(e.t.UnixMilli(), 10)), nil
}
