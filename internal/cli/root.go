package cli

import (
	"fmt"
	"io"
	"tarotstats/internal/analytics"
	"tarotstats/internal/identity"
	"tarotstats/internal/ledger"
	"tarotstats/internal/persistence"
	"tarotstats/internal/providers"
	"tarotstats/internal/remote"
	"tarotstats/internal/structures"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath  string
	FID         int64
	Wallet      string
	ContextFile string
	Debug       bool
	Format      string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Env is what commands run against. It is built once per invocation, after
// flag parsing.
type Env struct {
	Config   *structures.Config
	Logger   providers.Logger
	Remote   remote.ClientInterface
	Identity identity.Provider
	Service  analytics.ServiceInterface
}

func (e *Env) Close() {
	if e.Service != nil {
		e.Service.Close()
	}
	if e.Logger != nil {
		e.Logger.Close()
	}
}

// NewRootCommand creates the root command of tarotctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(BuildEnv)
}

func newRootCommand(build func(opts *RootOptions, stderr io.Writer) (*Env, error)) *cobra.Command {
	opts := &RootOptions{}
	env := &Env{}

	cmd := &cobra.Command{
		Use:           "tarotctl",
		Short:         "Tarot usage and streak ledger",
		Long:          "Records visits and readings in the local ledger and mirrors them to the counter service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			built, err := build(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*env = *built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.Close()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to the YAML config")
	cmd.PersistentFlags().Int64Var(&opts.FID, "fid", 0, "Farcaster ID to track as")
	cmd.PersistentFlags().StringVar(&opts.Wallet, "wallet", "", "wallet address to track as")
	cmd.PersistentFlags().StringVar(&opts.ContextFile, "context", "", "mini-app context JSON file")
	cmd.PersistentFlags().BoolVarP(&opts.Debug, "debug", "d", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewVisitCommand(opts, env))
	cmd.AddCommand(NewReadingCommand(opts, env))
	cmd.AddCommand(NewShowCommand(opts, env))
	cmd.AddCommand(NewExportCommand(opts, env))
	cmd.AddCommand(NewStatsCommand(opts, env))
	cmd.AddCommand(NewAdminCommand(opts, env))

	return cmd
}

// BuildEnv wires the client side from the config file and flags.
func BuildEnv(opts *RootOptions, stderr io.Writer) (*Env, error) {
	conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: opts.ConfigPath, DebugMode: opts.Debug})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	level := conf.Logger.Level
	if opts.Debug {
		level = "debug"
	}
	logger := providers.NewConsoleLogProvider(level, stderr)

	compressor, err := persistence.NewCompressor(conf.Ledger.Compress)
	if err != nil {
		return nil, err
	}
	store := ledger.NewStore(conf, compressor, logger)
	client := remote.NewClient(conf)
	ident := identityFor(opts)

	return &Env{
		Config:   conf,
		Logger:   logger,
		Remote:   client,
		Identity: ident,
		Service:  analytics.NewService(conf, store, client, ident, logger),
	}, nil
}

// identityFor prefers explicit flags over the mini-app context file.
func identityFor(opts *RootOptions) identity.Provider {
	var chain identity.Chain
	if opts.FID > 0 || opts.Wallet != "" {
		chain = append(chain, identity.NewStatic(opts.FID, opts.Wallet))
	}
	if opts.ContextFile != "" {
		chain = append(chain, identity.NewFarcasterContextFile(opts.ContextFile))
	}
	if len(chain) == 0 {
		return identity.Anonymous{}
	}
	return chain
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
