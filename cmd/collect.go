package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/mission-control/internal/application"
	"github.com/bnema/mission-control/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newCollectCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Fetch sessions from upstream, store snapshots and raise context alerts",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			var result application.IngestResult
			collect := func(ctx context.Context) error {
				var err error
				result, err = app.ingest.Collect(ctx)
				return err
			}

			if err := runWithProgress(cmd.Context(), cmd.ErrOrStderr(), "Collecting agent sessions...", collect); err != nil {
				return err
			}

			return writeCollectResult(cmd.OutOrStdout(), result)
		}),
	}
}

func writeCollectResult(w io.Writer, result application.IngestResult) error {
	alerted := make(map[domain.AgentID]bool, len(result.Alerts))
	for _, alert := range result.Alerts {
		alerted[alert.Agent] = true
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"Agent", "Status", "Context", "Tokens", "Alert"})

	for _, snapshot := range result.Accepted {
		alert := ""
		if alerted[snapshot.Agent] {
			alert = "yes"
		}
		tw.AppendRow(table.Row{
			snapshot.Agent,
			snapshot.Status.Label(),
			fmt.Sprintf("%.1f%%", snapshot.ContextPercent),
			fmt.Sprintf("%s/%s", domain.FormatTokens(snapshot.TotalTokens), domain.FormatTokens(snapshot.ContextTokens)),
			alert,
		})
	}
	if len(result.Accepted) == 0 {
		tw.AppendRow(table.Row{"-", "(no rostered sessions)", "-", "-", "-"})
	}
	tw.Render()

	_, err := fmt.Fprintf(w, "collected: %d | dropped: %d | alerts: %d\n", len(result.Accepted), result.Dropped, len(result.Alerts))
	return err
}
