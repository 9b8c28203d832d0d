package main

import (
	"fmt"
	"os"
	"tarotstats/internal/di"
	"tarotstats/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:          "tarotstatsd",
		Short:        "Counter service for visits, readings and streaks",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			return app.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the config file")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "debug mode")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
