package domain

import (
	"fmt"
	"strings"
	"time"
)

type ActivityType string

const (
	ActivityDeploy        ActivityType = "deploy"
	ActivityResearch      ActivityType = "research"
	ActivityBugfix        ActivityType = "bugfix"
	ActivityCommunication ActivityType = "communication"
	ActivityEdit          ActivityType = "edit"
	ActivityTaskComplete  ActivityType = "task_complete"
	ActivityTaskStart     ActivityType = "task_start"
	ActivityGitCommit     ActivityType = "git_commit"
	ActivityError         ActivityType = "error"
	ActivitySystem        ActivityType = "system"
)

var ActivityTypes = []ActivityType{
	ActivityDeploy,
	ActivityResearch,
	ActivityBugfix,
	ActivityCommunication,
	ActivityEdit,
	ActivityTaskComplete,
	ActivityTaskStart,
	ActivityGitCommit,
	ActivityError,
	ActivitySystem,
}

func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Activity struct {
	ID        string
	Agent     AgentID
	Type      ActivityType
	Summary   string
	Detail    string
	Metadata  map[string]any
	CreatedAt time.Time
}

func (a Activity) Validate() error {
	if strings.TrimSpace(string(a.Agent)) == "" || strings.TrimSpace(string(a.Type)) == "" || strings.TrimSpace(a.Summary) == "" {
		return fmt.Errorf("%w: agent, activity_type, and summary are required", ErrInvalidActivity)
	}
	if !a.Type.Valid() {
		names := make([]string, 0, len(ActivityTypes))
		for _, known := range ActivityTypes {
			names = append(names, string(known))
		}
		return fmt.Errorf("%w: activity_type must be one of: %s", ErrInvalidActivity, strings.Join(names, ", "))
	}
	return nil
}
