package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	statusadapter "github.com/bnema/mission-control/internal/adapters/render/status"
	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStatusCmd(loader *appLoader) *cobra.Command {
	var live bool
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the agent board with context usage",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			board, err := loadBoard(cmd, app, live)
			if err != nil {
				return err
			}
			return writeBoardOutput(cmd.OutOrStdout(), app, board, format)
		}),
	}

	cmd.Flags().BoolVar(&live, "live", false, "Fetch sessions from upstream instead of reading stored snapshots")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json or yaml")

	return cmd
}

func loadBoard(cmd *cobra.Command, app *app, live bool) (statusadapter.Board, error) {
	if !live {
		overview, err := app.dashboard.Overview(cmd.Context())
		if err != nil {
			return statusadapter.Board{}, err
		}
		return statusadapter.Board{Cards: overview.Board, Summary: overview.Summary}, nil
	}

	var status application.LiveStatus
	fetch := func(ctx context.Context) error {
		var err error
		status, err = app.dashboard.Live(ctx)
		return err
	}
	if err := runWithProgress(cmd.Context(), cmd.ErrOrStderr(), "Fetching live sessions...", fetch); err != nil {
		return statusadapter.Board{}, err
	}

	return statusadapter.Board{
		Cards:     application.BuildBoard(app.roster, status.Agents),
		Summary:   status.Summary,
		FetchedAt: status.FetchedAt,
	}, nil
}

func writeBoardOutput(w io.Writer, app *app, board statusadapter.Board, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		rendered, err := app.boardRenderer(board, statusadapter.RenderOptions{
			Now:            app.now(),
			AlertThreshold: app.cfg.Ingest.AlertThreshold,
		})
		if err != nil {
			return fmt.Errorf("render status: %w", err)
		}
		_, err = fmt.Fprintln(w, rendered)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newBoardView(board, app.cfg.Ingest.AlertThreshold))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newBoardView(board, app.cfg.Ingest.AlertThreshold)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want table, json or yaml)", format)
	}
}

type boardView struct {
	Agents    []agentView `json:"agents" yaml:"agents"`
	Summary   summaryView `json:"summary" yaml:"summary"`
	FetchedAt *time.Time  `json:"fetchedAt,omitempty" yaml:"fetchedAt,omitempty"`
}

type agentView struct {
	Agent          domain.AgentID     `json:"agent" yaml:"agent"`
	Name           string             `json:"name" yaml:"name"`
	Status         domain.AgentStatus `json:"status" yaml:"status"`
	Model          string             `json:"model,omitempty" yaml:"model,omitempty"`
	TotalTokens    int64              `json:"totalTokens" yaml:"totalTokens"`
	ContextTokens  int64              `json:"contextTokens" yaml:"contextTokens"`
	ContextPercent float64            `json:"contextPercent" yaml:"contextPercent"`
	InputTokens    int64              `json:"inputTokens" yaml:"inputTokens"`
	OutputTokens   int64              `json:"outputTokens" yaml:"outputTokens"`
	LastMessageAt  *time.Time         `json:"lastMessageAt,omitempty" yaml:"lastMessageAt,omitempty"`
	LastChannel    string             `json:"lastChannel,omitempty" yaml:"lastChannel,omitempty"`
	CurrentTask    string             `json:"currentTask,omitempty" yaml:"currentTask,omitempty"`
	Alert          bool               `json:"alert" yaml:"alert"`
}

type summaryView struct {
	TotalTokens     int64          `json:"totalTokens" yaml:"totalTokens"`
	AgentCount      int            `json:"agentCount" yaml:"agentCount"`
	AvgContext      float64        `json:"avgContext" yaml:"avgContext"`
	MaxContextAgent domain.AgentID `json:"maxContextAgent,omitempty" yaml:"maxContextAgent,omitempty"`
	MaxContextPct   float64        `json:"maxContextPct" yaml:"maxContextPct"`
}

func newBoardView(board statusadapter.Board, threshold float64) boardView {
	evaluator := domain.NewAlertEvaluator(threshold, domain.AlertEveryCycle)

	view := boardView{
		Agents: make([]agentView, 0, len(board.Cards)),
		Summary: summaryView{
			TotalTokens:     board.Summary.TotalTokens,
			AgentCount:      board.Summary.AgentCount,
			AvgContext:      board.Summary.AvgContext,
			MaxContextAgent: board.Summary.MaxContextAgent,
			MaxContextPct:   board.Summary.MaxContextPct,
		},
	}
	if !board.FetchedAt.IsZero() {
		fetchedAt := board.FetchedAt.UTC()
		view.FetchedAt = &fetchedAt
	}

	for _, card := range board.Cards {
		agent := agentView{Agent: card.Agent.ID, Name: card.Agent.Name, Status: card.Status}
		if snapshot := card.Snapshot; snapshot != nil {
			agent.Model = snapshot.Model
			agent.TotalTokens = snapshot.TotalTokens
			agent.ContextTokens = snapshot.ContextTokens
			agent.ContextPercent = snapshot.ContextPercent
			agent.InputTokens = snapshot.InputTokens
			agent.OutputTokens = snapshot.OutputTokens
			agent.LastChannel = snapshot.LastChannel
			agent.CurrentTask = snapshot.CurrentTask
			agent.Alert = evaluator.Above(snapshot.ContextPercent)
			if !snapshot.LastMessageAt.IsZero() {
				at := snapshot.LastMessageAt.UTC()
				agent.LastMessageAt = &at
			}
		}
		view.Agents = append(view.Agents, agent)
	}

	return view
}
