package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
)

const (
	DefaultURL       = "https://api.scosta.io/sessions"
	DefaultSource    = "board-mission-control"
	DefaultTokenRef  = "upstream/token"
	maxResponseBytes = 8 << 20
)

// Client fetches the current sessions from the agent gateway.
type Client struct {
	URL            string
	TokenRef       string
	Source         string
	Secrets        ports.SecretStore
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.SessionSource = Client{}

func (c Client) FetchSessions(ctx context.Context) ([]domain.SessionRecord, error) {
	endpoint, err := validateURL(c.URL)
	if err != nil {
		return nil, err
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create sessions request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Source", c.source())
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: upstream %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var batch SessionBatch
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: decode sessions response: %w", domain.ErrUpstreamUnavailable, err)
	}
	if len(batch.Sessions) == 0 || string(batch.Sessions) == "null" {
		return []domain.SessionRecord{}, nil
	}

	records, err := batch.Records()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return records, nil
}

func (c Client) token(ctx context.Context) (string, error) {
	if c.Secrets == nil {
		return "", fmt.Errorf("%w: no secret store", domain.ErrUpstreamNotConfigured)
	}

	ref := c.TokenRef
	if ref == "" {
		ref = DefaultTokenRef
	}

	token, err := c.Secrets.Get(ctx, ref)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("%w: token %q not set", domain.ErrUpstreamNotConfigured, ref)
	}
	if err != nil {
		return "", fmt.Errorf("read upstream token: %w", err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: token %q is empty", domain.ErrUpstreamNotConfigured, ref)
	}
	return token, nil
}

func (c Client) source() string {
	if c.Source == "" {
		return DefaultSource
	}
	return c.Source
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func validateURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: upstream url is empty", domain.ErrUpstreamNotConfigured)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parse upstream url: %w", domain.ErrUpstreamNotConfigured, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: upstream url must use http or https", domain.ErrUpstreamNotConfigured)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: upstream url host is required", domain.ErrUpstreamNotConfigured)
	}

	return parsed.String(), nil
}
