package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bundlegraph/cli/internal/config"
	"github.com/bundlegraph/cli/internal/output"
	"github.com/bundlegraph/cli/internal/version"
)

// NewRootCmd creates the root command for the bgraph CLI.
func NewRootCmd() *cobra.Command {
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "bgraph",
		Short: "Android bundle graph enhancer",
		Long: `bgraph expands android_aar package targets of a resolved target graph
into the actions that produce the archive: manifest synthesis, directory
assembly, resource rules, classpath and BuildConfig generation, and native
library packaging.

The graph is read from a CUE, YAML, JSON, or HCL document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Flags.Config, "config", "", "Path to config file (env: BGRAPH_CONFIG)")
	flags.StringVarP(&cfg.Flags.Graph, "graph", "g", "", "Graph document (env: BGRAPH_GRAPH, default: bgraph.cue)")
	flags.StringVar(&cfg.Flags.OutputRoot, "output-root", "", "Generated output root (env: BGRAPH_OUTPUT_ROOT)")
	flags.BoolVarP(&cfg.Flags.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&cfg.Flags.Timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewBuildCmd(cfg))
	rootCmd.AddCommand(NewGraphCmd(cfg))
	rootCmd.AddCommand(NewVetCmd(cfg))
	rootCmd.AddCommand(NewDiffCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration, resolves global values, and sets up
// logging. A config file that cannot be read does not fail here so that
// config init and config vet still run; other commands fail through
// GlobalConfig.Resolved.
func initializeGlobals(c *cobra.Command, cfg *config.GlobalConfig) error {
	configPath, err := config.ResolveConfigPath(cfg.Flags.Config)
	if err != nil {
		return err
	}
	cfg.ConfigPath = configPath.Value

	loaded, err := config.NewLoader().Load(cfg.ConfigPath)
	if err != nil {
		output.Debug("config load error", "error", err)
		cfg.LoadErr = err
		loaded = &config.Config{}
	}
	cfg.Config = loaded.WithDefaults()

	graph := config.ResolveGraphPath(cfg.Flags.Graph)
	cfg.GraphPath = graph.Value

	outputRoot := config.ResolveOutputRoot(cfg.Flags.OutputRoot, loaded.OutputRoot)
	cfg.OutputRoot = outputRoot.Value

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: cfg.Flags.Verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(cfg.Flags.Timestamps)
	} else if loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.Get()
	output.Debug("bgraph started", "version", info.Version, "cue_sdk", info.CUESDKVersion)
	config.LogResolvedValues(configPath, graph, outputRoot)

	return nil
}
