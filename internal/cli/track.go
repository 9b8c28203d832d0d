package cli

import (
	"context"
	"fmt"
	"tarotstats/internal/analytics"
	"tarotstats/internal/models"
	"tarotstats/internal/providers"
	"time"

	"github.com/spf13/cobra"
)

// NewVisitCommand creates the visit command.
func NewVisitCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "visit",
		Short: "Record a visit and print the streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := env.Service.TrackVisit(cmd.Context())
			return printOutcome(cmd, rootOpts, env, out)
		},
	}
}

// NewReadingCommand creates the reading command.
func NewReadingCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	return &cobra.Command{
		Use:       "reading <one|three|custom>",
		Short:     "Record a drawn reading",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(models.ReadingOne), string(models.ReadingThree), string(models.ReadingCustom)},
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := env.Service.TrackReading(cmd.Context(), models.ReadingType(args[0]))
			if err != nil {
				return err
			}
			return printOutcome(cmd, rootOpts, env, out)
		},
	}
}

// printOutcome prints the local record, then the server record if it arrives
// within the remote timeout.
func printOutcome(cmd *cobra.Command, rootOpts *RootOptions, env *Env, out analytics.Outcome) error {
	w := cmd.OutOrStdout()
	if err := printRecord(w, rootOpts.Format, "local", out.Local); err != nil {
		return err
	}

	timeout := env.Config.Remote.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	select {
	case rec, ok := <-out.Remote:
		if ok {
			return printRecord(w, rootOpts.Format, "server", rec)
		}
	case <-ctx.Done():
		env.Logger.Debugf(providers.TypeApp, "Server record did not arrive within %s", timeout)
	}
	return nil
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the local record of the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRecord(cmd.OutOrStdout(), rootOpts.Format, "local", env.Service.Record(cmd.Context()))
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Fetch the server record of the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := env.Service.RemoteStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			return printRecord(cmd.OutOrStdout(), rootOpts.Format, "server", rec)
		},
	}
}
