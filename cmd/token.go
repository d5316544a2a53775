package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/spf13/cobra"
)

func newTokenCmd(loader *appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the upstream session API token",
	}

	cmd.AddCommand(
		newTokenSetCmd(loader),
		newTokenStatusCmd(loader),
	)

	return cmd
}

func newTokenSetCmd(loader *appLoader) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the upstream token in the secrets directory",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			value = strings.TrimSpace(value)
			if value == "" {
				return errors.New("token value is empty")
			}

			if err := app.secretStore.Put(cmd.Context(), app.cfg.Upstream.TokenRef, value); err != nil {
				return fmt.Errorf("store upstream token: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Stored upstream token as %s\n", app.cfg.Upstream.TokenRef)
			return err
		}),
	}

	cmd.Flags().StringVar(&value, "value", "", "Token value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newTokenStatusCmd(loader *appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether an upstream token is configured",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			_, err := app.secretStore.Get(cmd.Context(), app.cfg.Upstream.TokenRef)
			switch {
			case errors.Is(err, domain.ErrSecretNotFound):
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "upstream token %s: not configured\n", app.cfg.Upstream.TokenRef)
				return err
			case err != nil:
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "upstream token %s: configured\n", app.cfg.Upstream.TokenRef)
			return err
		}),
	}
}
