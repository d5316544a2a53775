package domain

import "sort"

type TeamSummary struct {
	TotalTokens int64
	AgentCount  int
	// MaxContextAgent is empty when no agent has a positive context share.
	MaxContextAgent AgentID
	MaxContextPct   float64
	AvgContext      float64
}

// Summarize aggregates the current snapshots. Agents are scanned in order,
// followed by any snapshot whose agent is missing from order (sorted by id),
// so the first agent in order wins ties for the maximum.
func Summarize(snapshots map[AgentID]AgentSnapshot, order []AgentID) TeamSummary {
	var summary TeamSummary
	if len(snapshots) == 0 {
		return summary
	}

	var contextSum float64
	for _, id := range scanOrder(snapshots, order) {
		snapshot := snapshots[id]
		summary.AgentCount++
		summary.TotalTokens += snapshot.TotalTokens
		contextSum += snapshot.ContextPercent

		if snapshot.ContextPercent > summary.MaxContextPct {
			summary.MaxContextAgent = id
			summary.MaxContextPct = snapshot.ContextPercent
		}
	}

	summary.AvgContext = RoundTenth(contextSum / float64(summary.AgentCount))
	return summary
}

func scanOrder(snapshots map[AgentID]AgentSnapshot, order []AgentID) []AgentID {
	ids := make([]AgentID, 0, len(snapshots))
	seen := make(map[AgentID]struct{}, len(snapshots))
	for _, id := range order {
		if _, ok := snapshots[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var extra []AgentID
	for id := range snapshots {
		if _, ok := seen[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(ids, extra...)
}
