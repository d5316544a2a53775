package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	loader := &appLoader{}

	rootCmd := &cobra.Command{
		Use:           "mc",
		Short:         "Mission Control (mc): monitor agent sessions and context usage",
		Long:          "mc (Mission Control) collects agent session telemetry, stores per-agent snapshots, raises context alerts and serves the dashboard API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&loader.configFile, "config", "", "Config file (default ~/.mission-control/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(loader),
		newCollectCmd(loader),
		newStatusCmd(loader),
		newEventsCmd(loader),
		newTasksCmd(loader),
		newCommsCmd(loader),
		newActivitiesCmd(loader),
		newKillCmd(loader),
		newRosterCmd(loader),
		newTokenCmd(loader),
	)

	return rootCmd
}
