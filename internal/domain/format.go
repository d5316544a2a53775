package domain

import (
	"fmt"
	"time"
)

// FormatTokens renders a token count compactly: 999, 1.2k, 3.4M.
func FormatTokens(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}

func TimeAgo(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}

	diff := now.Sub(at)
	mins := int(diff / time.Minute)
	if mins < 1 {
		return "just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	return fmt.Sprintf("%dd ago", hours/24)
}
