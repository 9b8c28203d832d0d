package cli

import (
	"errors"
	"tarotstats/internal/remote"

	"github.com/spf13/cobra"
)

var ErrAccessDenied = errors.New("access denied: connect with the admin wallet")

// NewAdminCommand creates the admin command group.
func NewAdminCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin views of the counter service",
		Long: `Admin views of every record held by the counter service.

The wallet given with --wallet, or found in the mini-app context, must be the
configured admin wallet.`,
	}
	cmd.AddCommand(newAdminStatsCommand(rootOpts, env))
	cmd.AddCommand(newAdminExportCommand(env))
	return cmd
}

func newAdminStatsCommand(rootOpts *RootOptions, env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "List every server record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := adminWallet(cmd, env)
			if err != nil {
				return err
			}
			rows, err := env.Remote.AdminStats(cmd.Context(), wallet)
			if err != nil {
				return adminError(err)
			}
			return printRemoteRows(cmd.OutOrStdout(), rootOpts.Format, rows)
		},
	}
}

func newAdminExportCommand(env *Env) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download every server record as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := adminWallet(cmd, env)
			if err != nil {
				return err
			}
			data, err := env.Remote.AdminExportCSV(cmd.Context(), wallet)
			if err != nil {
				return adminError(err)
			}
			return writeCSV(cmd, opts.Output, data)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (- for stdout)")
	return cmd
}

func adminWallet(cmd *cobra.Command, env *Env) (string, error) {
	id, err := env.Identity.Resolve(cmd.Context())
	if err != nil || id.Wallet == "" {
		return "", ErrAccessDenied
	}
	return id.Wallet, nil
}

func adminError(err error) error {
	if errors.Is(err, remote.ErrForbidden) {
		return ErrAccessDenied
	}
	return err
}
