package main

import (
	"path/filepath"

	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/pkg/storage"
	"github.com/YuminosukeSato/id3tree/preprocessing"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
	"github.com/spf13/cobra"
)

type trainCmdConfig struct {
	*rootCmdConfig
	inputCSV  string
	targetCol string
	directory string
	store     string
	parallel  int
}

func trainCmd(rc *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{rootCmdConfig: rc}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Grow a tree from a CSV table",
		Long: `Grow an ID3 tree predicting the target column from every other column of a CSV table.
The input is copied to <directory>/input.csv and the tree is written to <directory>/decision_tree.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.merge(cmd)
			if err := config.Validate(); err != nil {
				return err
			}
			return config.run()
		},
	}
	cmd.Flags().StringVarP(&config.inputCSV, "input-csv", "i", "", "path to the training CSV file (required)")
	cmd.Flags().StringVarP(&config.targetCol, "target-col", "t", "", "name of the column to predict (default from config, Name)")
	cmd.Flags().StringVarP(&config.directory, "directory", "d", "", "directory for the copied input and the tree (required)")
	cmd.Flags().StringVar(&config.store, "store", "", "additional store for the tree: file or bolt")
	cmd.Flags().IntVar(&config.parallel, "parallel", 0, "goroutines used to grow the branches under the root (0 or 1: sequential)")
	return cmd
}

// merge fills unset flags from the loaded config.
func (c *trainCmdConfig) merge(cmd *cobra.Command) {
	if !cmd.Flags().Changed("target-col") {
		c.targetCol = c.cfg.Training.TargetCol
	}
	if !cmd.Flags().Changed("directory") {
		c.directory = c.cfg.Training.Directory
	}
	if !cmd.Flags().Changed("store") {
		c.store = c.cfg.Storage.Backend
	}
	if !cmd.Flags().Changed("parallel") {
		c.parallel = c.cfg.Training.Parallel
	}
}

func (c *trainCmdConfig) Validate() error {
	if c.inputCSV == "" {
		return errors.New("required input-csv flag was not set")
	}
	if c.directory == "" {
		return errors.New("required directory flag was not set")
	}
	if c.parallel < 0 {
		return errors.NewValidationError("parallel", "must not be negative", c.parallel)
	}
	return nil
}

func (c *trainCmdConfig) run() error {
	ds, err := readTable(c.inputCSV)
	if err != nil {
		return err
	}

	if err := dataset.WriteCSVFile(filepath.Join(c.directory, "input.csv"), ds); err != nil {
		return err
	}

	ds = preprocessing.CoerceDataset(ds, c.targetCol)
	clf := tree.NewDecisionTreeClassifier(
		tree.WithLogger(c.logger),
		tree.WithParallelFit(c.parallel),
	)
	if err := clf.Fit(ds, c.targetCol); err != nil {
		return err
	}
	c.logger.Debug("Tree structure\n" + tree.Render(clf.Tree()))

	files, err := storage.NewFileStore(c.directory)
	if err != nil {
		return err
	}
	if err := files.Save(storage.DefaultName, clf.Tree()); err != nil {
		return err
	}
	c.logger.Info("Tree saved", log.OperationKey, log.OperationSave, log.PathKey, files.Path(storage.DefaultName))

	if c.store == storage.BackendBolt {
		if err := saveTo(c.store, c.directory, clf.Tree()); err != nil {
			return err
		}
		c.logger.Info("Tree saved", log.OperationKey, log.OperationSave, log.ComponentKey, c.store)
	}
	return nil
}

// readTable reads a CSV file and rejects tables without rows.
func readTable(path string) (*dataset.Dataset, error) {
	ds, err := dataset.ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s", path)
	}
	return ds, nil
}

func saveTo(backend, dir string, root tree.Node) (err error) {
	s, err := storage.Open(backend, dir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return s.Save(storage.DefaultName, root)
}

func loadFrom(backend, dir string) (root tree.Node, err error) {
	s, err := storage.Open(backend, dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return s.Load(storage.DefaultName)
}
