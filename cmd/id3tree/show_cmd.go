package main

import (
	"fmt"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	modelDir string
	store    string
	asJSON   bool
}

func showCmd(rc *rootCmdConfig) *cobra.Command {
	config := &showCmdConfig{rootCmdConfig: rc}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a trained tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("model-dir") {
				config.modelDir = config.cfg.Inference.ModelDir
			}
			if !cmd.Flags().Changed("store") {
				config.store = config.cfg.Storage.Backend
			}
			if config.modelDir == "" {
				return errors.New("required model-dir flag was not set")
			}
			root, err := loadFrom(config.store, config.modelDir)
			if err != nil {
				return err
			}
			if config.asJSON {
				data, err := tree.MarshalTree(root)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tree.Render(root))
			return err
		},
	}
	cmd.Flags().StringVar(&config.modelDir, "model-dir", "", "directory holding the trained tree (required)")
	cmd.Flags().StringVar(&config.store, "store", "", "store to read the tree from: file or bolt")
	cmd.Flags().BoolVar(&config.asJSON, "json", false, "print the stored JSON instead of the indented outline")
	return cmd
}
