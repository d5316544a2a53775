package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
	"github.com/bnema/mission-control/internal/ports"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

const summaryWidthMax = 72

func newEventsCmd(loader *appLoader) *cobra.Command {
	var agent string
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recent agent events",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			events, err := app.journal.ListEvents(cmd.Context(), domain.AgentID(agent), limit)
			if err != nil {
				return err
			}

			tw := newJournalTable(cmd.OutOrStdout(), 4)
			tw.AppendHeader(table.Row{"Time", "Agent", "Type", "Summary", "Tokens"})
			for _, event := range events {
				tw.AppendRow(table.Row{
					formatTimestamp(event.CreatedAt),
					event.Agent,
					event.Type,
					singleLine(event.Summary),
					domain.FormatTokens(event.TokensUsed),
				})
			}
			if len(events) == 0 {
				tw.AppendRow(table.Row{"-", "-", "-", "(no events)", "-"})
			}
			tw.Render()
			return nil
		}),
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Only show events for this agent")
	cmd.Flags().IntVar(&limit, "limit", application.DefaultEventLimit, "Maximum number of events")

	return cmd
}

func newTasksCmd(loader *appLoader) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the task history derived from task events",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			tasks, err := app.journal.ListTasks(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := newJournalTable(cmd.OutOrStdout(), 4)
			tw.AppendHeader(table.Row{"Started", "Agent", "Status", "Summary", "Completed"})
			for _, task := range tasks {
				tw.AppendRow(table.Row{
					formatTimestamp(task.StartedAt),
					task.Agent,
					task.Status,
					singleLine(task.Summary),
					formatTimestamp(task.CompletedAt),
				})
			}
			if len(tasks) == 0 {
				tw.AppendRow(table.Row{"-", "-", "-", "(no tasks)", "-"})
			}
			tw.Render()
			return nil
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultTaskLimit, "Maximum number of tasks")

	return cmd
}

func newCommsCmd(loader *appLoader) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "comms",
		Short: "List recent inter-agent messages",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			comms, err := app.journal.ListComms(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := newJournalTable(cmd.OutOrStdout(), 4)
			tw.AppendHeader(table.Row{"Time", "From", "To", "Message"})
			for _, comm := range comms {
				tw.AppendRow(table.Row{formatTimestamp(comm.CreatedAt), comm.From, comm.To, singleLine(comm.Message)})
			}
			if len(comms) == 0 {
				tw.AppendRow(table.Row{"-", "-", "-", "(no messages)"})
			}
			tw.Render()
			return nil
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultCommLimit, "Maximum number of messages")

	return cmd
}

func newActivitiesCmd(loader *appLoader) *cobra.Command {
	var query ports.ActivityQuery
	var agent, activityType string

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List the agent activity feed",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			query.Agent = domain.AgentID(agent)
			query.Type = domain.ActivityType(activityType)
			activities, err := app.journal.ListActivities(cmd.Context(), query)
			if err != nil {
				return err
			}

			tw := newJournalTable(cmd.OutOrStdout(), 4)
			tw.AppendHeader(table.Row{"Time", "Agent", "Type", "Summary"})
			for _, activity := range activities {
				tw.AppendRow(table.Row{formatTimestamp(activity.CreatedAt), activity.Agent, activity.Type, singleLine(activity.Summary)})
			}
			if len(activities) == 0 {
				tw.AppendRow(table.Row{"-", "-", "-", "(no activities)"})
			}
			tw.Render()
			return nil
		}),
	}

	cmd.Flags().StringVar(&agent, "agent", "", "Only show activities for this agent")
	cmd.Flags().StringVar(&activityType, "type", "", "Only show activities of this type")
	cmd.Flags().IntVar(&query.Limit, "limit", application.DefaultActivityLimit, "Maximum number of activities")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "Number of activities to skip")

	return cmd
}

func newKillCmd(loader *appLoader) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "kill <agent>",
		Short: "Record a kill request for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: loader.run(func(cmd *cobra.Command, args []string, app *app) error {
			event, err := app.journal.RequestKill(cmd.Context(), application.KillCommand{
				Agent:  domain.AgentID(args[0]),
				Reason: reason,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Kill request logged for %s (%s)\n", event.Agent, event.Summary)
			return err
		}),
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the agent should stop")

	return cmd
}

func newJournalTable(w io.Writer, summaryColumn int) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: summaryColumn, Align: text.AlignLeft, WidthMax: summaryWidthMax},
	})
	return tw
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func singleLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}
