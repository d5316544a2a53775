package cmd

import (
	"fmt"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRosterCmd(loader *appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the monitored agents",
		Long:  "Manage the agents.toml roster. A running server keeps the roster it started with; restart it to pick up changes.",
	}

	cmd.AddCommand(
		newRosterListCmd(loader),
		newRosterAddCmd(loader),
		newRosterRemoveCmd(loader),
	)

	return cmd
}

func newRosterListCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rostered agents",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			agents, err := app.rosterService.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"ID", "Name", "Role", "Session key"})
			for _, agent := range agents {
				tw.AppendRow(table.Row{agent.ID, agent.Name, agent.Role, agent.SessionKey})
			}
			tw.Render()
			return nil
		}),
	}
}

func newRosterAddCmd(loader *appLoader) *cobra.Command {
	var agent domain.Agent
	var id string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an agent, or update the agent with the same id",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			agent.ID = domain.AgentID(id)
			stored, err := app.rosterService.Add(cmd.Context(), agent)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) -> %s\n", stored.Name, stored.ID, stored.SessionKey)
			return err
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "Agent id")
	cmd.Flags().StringVar(&agent.Name, "name", "", "Display name (default: the id)")
	cmd.Flags().StringVar(&agent.Role, "role", "", "Role shown on the board")
	cmd.Flags().StringVar(&agent.SessionKey, "session-key", "", "Upstream session key, e.g. agent:kai:main")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("session-key")

	return cmd
}

func newRosterRemoveCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an agent from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: loader.run(func(cmd *cobra.Command, args []string, app *app) error {
			if err := app.rosterService.Remove(cmd.Context(), domain.AgentID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return err
		}),
	}
}
