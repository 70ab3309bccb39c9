package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/javasym/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

// app carries what every command needs once flags are parsed.
type app struct {
	cfg       *config.Config
	configDir string
	verbosity int
	logFile   string
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "javasym",
		Short:         "Extract the declared structure of Java source files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configDir, "config-dir", ".", "directory containing .javasym.yaml")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newFindCmd(a))
	rootCmd.AddCommand(newMembersCmd(a))
	rootCmd.AddCommand(newSubtypeCmd(a))
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newMCPCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "javasym:", err)
		os.Exit(1)
	}
}

// setup loads the configuration and configures logging. Flags given on the
// command line win over the configuration.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = a.verbosity
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = a.logFile
	}

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)
	return nil
}
