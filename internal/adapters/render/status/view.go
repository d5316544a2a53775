package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const contextBarWidth = 24

type Board struct {
	Cards   []application.AgentCard
	Summary domain.TeamSummary
	// FetchedAt is set for boards built from a live upstream fetch.
	FetchedAt time.Time
}

type RenderOptions struct {
	Now            time.Time
	AlertThreshold float64
}

func renderBoard(board Board, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Mission Control"),
		s.header.Render(summaryLine(board, opts)),
	}

	if len(board.Cards) == 0 {
		lines = append(lines, s.empty.Render("No agents on the roster."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, card := range board.Cards {
		lines = append(lines, s.section.Render(renderCard(card, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryLine(board Board, opts RenderOptions) string {
	parts := []string{
		fmt.Sprintf("agents: %d/%d", board.Summary.AgentCount, len(board.Cards)),
		fmt.Sprintf("tokens: %s", domain.FormatTokens(board.Summary.TotalTokens)),
		fmt.Sprintf("avg context: %.1f%%", board.Summary.AvgContext),
	}
	if board.Summary.MaxContextAgent != "" {
		parts = append(parts, fmt.Sprintf("max: %s %.1f%%", board.Summary.MaxContextAgent, board.Summary.MaxContextPct))
	}
	if !board.FetchedAt.IsZero() {
		parts = append(parts, "live "+domain.TimeAgo(board.FetchedAt, opts.Now))
	}
	return strings.Join(parts, " | ")
}

func renderCard(card application.AgentCard, opts RenderOptions, s styles) string {
	title := s.agent.Render(fmt.Sprintf("%s (%s)", card.Agent.Name, card.Agent.ID))
	if card.Agent.Role != "" {
		title += " " + s.role.Render(card.Agent.Role)
	}

	statusLabel := s.statusStyle(card.Status).Render(card.Status.Label())
	if card.Snapshot == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			lipgloss.JoinHorizontal(lipgloss.Top, statusLabel, " ", s.empty.Render("no snapshot yet")),
		)
	}

	snapshot := card.Snapshot
	activity := "last activity " + domain.TimeAgo(snapshot.LastMessageAt, opts.Now)
	if snapshot.LastChannel != "" {
		activity += " via " + snapshot.LastChannel
	}

	parts := []string{
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, statusLabel, " ", s.detail.Render(activity)),
		contextLine(*snapshot, opts, s),
	}
	if snapshot.Model != "" {
		parts = append(parts, s.detail.Render("model: "+snapshot.Model))
	}
	if snapshot.CurrentTask != "" {
		parts = append(parts, s.detail.Render("task: "+snapshot.CurrentTask))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func contextLine(snapshot domain.AgentSnapshot, opts RenderOptions, s styles) string {
	threshold := opts.AlertThreshold
	if threshold <= 0 {
		threshold = domain.DefaultAlertThreshold
	}
	hot := snapshot.ContextPercent >= threshold

	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render("context "),
		renderContextBar(snapshot.ContextPercent, contextBarWidth, hot, s),
		" ",
		s.detail.Render(fmt.Sprintf("%5.1f%% (%s/%s)",
			snapshot.ContextPercent,
			domain.FormatTokens(snapshot.TotalTokens),
			domain.FormatTokens(snapshot.ContextTokens),
		)),
	)
	if hot {
		line += " " + s.alert.Render("[alert]")
	}
	return line
}

func renderContextBar(usedPercent float64, width int, hot bool, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(usedPercent) / 100))
	fill := s.barFill
	if hot {
		fill = s.barHot
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
