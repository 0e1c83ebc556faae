package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prefs-generator/internal/config"
)

// app holds what the subcommands share once the root command has run.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "prefs-generator",
		Short: "Generate store-backed implementations of settings interfaces",
		Long: `Generate store-backed implementations of settings interfaces.

Interfaces are selected with a //prefs:store comment directive (or an entry
in the overrides file). Each one gets a <name>_prefs.go file next to it.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./.prefsgen.yaml)")
	flags.String("suffix", defaults.Suffix, "suffix of generated type names")
	flags.String("file-suffix", defaults.FileSuffix, "suffix of generated file names")
	flags.String("overrides", "", "YAML file overriding comment directives")
	flags.StringSlice("tags", nil, "extra build tags used while loading packages")
	flags.Bool("comments", defaults.Comments, "emit doc comments in generated files")
	flags.String("log-level", defaults.Log.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "log format (text, json)")
	flags.String("log-file", "", "also write logs to this file")

	a.bind(cmd, map[string]string{
		"suffix":      "suffix",
		"file_suffix": "file-suffix",
		"overrides":   "overrides",
		"build_tags":  "tags",
		"comments":    "comments",
		"log.level":   "log-level",
		"log.format":  "log-format",
		"log.file":    "log-file",
	})

	cmd.AddCommand(newGenCmd(a), newCheckCmd(a))

	return cmd
}

// bind maps config keys to the persistent flags of cmd.
func (a *app) bind(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		_ = a.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog

	logger.Debug("configuration loaded", "file", a.v.ConfigFileUsed(), "suffix", cfg.Suffix)

	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closeLog == nil {
		return nil
	}

	return a.closeLog()
}
