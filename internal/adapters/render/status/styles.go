package status

import (
	"github.com/bnema/mission-control/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	agent      lipgloss.Style
	role       lipgloss.Style
	detail     lipgloss.Style
	alert      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barHot     lipgloss.Style
	barEmpty   lipgloss.Style
	status     map[domain.AgentStatus]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		agent:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		role:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		alert:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barHot:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		status: map[domain.AgentStatus]lipgloss.Style{
			domain.StatusWorking: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
			domain.StatusOnline:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			domain.StatusIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			domain.StatusOffline: lipgloss.NewStyle().Faint(true),
		},
	}
}

func (s styles) statusStyle(status domain.AgentStatus) lipgloss.Style {
	if style, ok := s.status[status]; ok {
		return style
	}
	return s.detail
}
