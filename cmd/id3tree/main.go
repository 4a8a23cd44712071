// Command id3tree trains ID3 decision trees from CSV tables and uses them
// to classify new rows.
//
//	id3tree train --input-csv animals.csv --target-col Name --directory model
//	id3tree infer --test-csv queries.csv --model-dir model --do-eval
//	id3tree show --model-dir model
package main

import (
	"os"

	"github.com/YuminosukeSato/id3tree/pkg/config"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger log.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rc := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:          "id3tree",
		Short:        "id3tree trains and applies ID3 decision trees",
		Long:         `A tool to grow categorical decision trees from CSV data with ID3, store them as JSON, and classify new rows with them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rc.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&rc.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&rc.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	rootCmd.AddCommand(trainCmd(rc), inferCmd(rc), showCmd(rc))
	return rootCmd
}

// setup loads the config and installs the global logger on the command's
// error stream.
func (rc *rootCmdConfig) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}
	if rc.logLevel != "" {
		cfg.Logging.Level = rc.logLevel
	}
	if err := log.SetupLogger(cfg.Logging.Level, cmd.ErrOrStderr()); err != nil {
		return err
	}
	rc.cfg = cfg
	rc.logger = log.GetLoggerWithName("id3tree." + cmd.Name())
	return nil
}
