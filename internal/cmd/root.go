// Package cmd provides the sitekit command tree.
package cmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/sitekit/cli/internal/cmd/config"
	"github.com/sitekit/cli/internal/config"
	"github.com/sitekit/cli/internal/output"
	"github.com/sitekit/cli/internal/version"
)

// envFile is read from the working directory on startup. Only SITEKIT_*
// variables are taken from it.
const envFile = ".env"

// NewRootCmd creates the root command. Global state is resolved once in
// PersistentPreRunE and handed to sub-commands through cfg.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "sitekit",
		Short: "Scaffold React + Vite website projects",
		Long: `sitekit creates ready-to-run website projects from built-in archetypes.

Archetypes:
  landingpage  Single-page marketing site
  portfolio    Personal portfolio
  blog         Markdown blog

Examples:
  sitekit create landingpage
  sitekit create blog my-diary --yes
  sitekit templates`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, globalFlags{
				config:     configFlag,
				verbose:    verboseFlag,
				timestamps: timestampsFlag,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: SITEKIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewCreateCmd(cfg))
	rootCmd.AddCommand(NewTemplatesCmd(cfg))
	rootCmd.AddCommand(configcmd.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

type globalFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, cfg *config.GlobalConfig, flags globalFlags) error {
	loaded, path, err := config.NewLoader().Load(config.LoaderOptions{
		ConfigFile: flags.config,
		EnvFile:    envFile,
	})
	if err != nil {
		// Commands still work on defaults; config vet reports the problem.
		output.Debug("config load error", "error", err)
		loaded = config.DefaultConfig()
	}

	cfg.Config = loaded
	cfg.ConfigPath = path
	cfg.Verbose = flags.verbose

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if err != nil {
		output.Warn("ignoring unreadable config file, using defaults", "path", path, "err", err)
	}

	info := version.Get()
	output.Debug("sitekit started", "version", info.Version, "config", path)

	return nil
}
