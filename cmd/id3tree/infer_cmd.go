package main

import (
	"path/filepath"

	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/metrics"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/preprocessing"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
	"github.com/spf13/cobra"
)

// PredictionCol is the column inference appends to the input table.
const PredictionCol = "prediction"

type inferCmdConfig struct {
	*rootCmdConfig
	testCSV   string
	modelDir  string
	outDir    string
	targetCol string
	store     string
	doEval    bool
	jobs      int
}

func inferCmd(rc *rootCmdConfig) *cobra.Command {
	config := &inferCmdConfig{rootCmdConfig: rc}
	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Classify the rows of a CSV table with a trained tree",
		Long: `Classify every row of a CSV table with the tree stored in the model directory.
The table is written to <out-dir>/output.csv with an extra prediction column. Columns the tree does not test are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.merge(cmd)
			if err := config.Validate(); err != nil {
				return err
			}
			return config.run()
		},
	}
	cmd.Flags().StringVar(&config.testCSV, "test-csv", "", "path to the CSV file to classify (required)")
	cmd.Flags().StringVar(&config.modelDir, "model-dir", "", "directory holding the trained tree (required)")
	cmd.Flags().StringVar(&config.outDir, "out-dir", "", "directory for output.csv (defaults to the model directory)")
	cmd.Flags().StringVarP(&config.targetCol, "target-col", "t", "", "target column, used for formatting and evaluation (default from config, Name)")
	cmd.Flags().StringVar(&config.store, "store", "", "store to read the tree from: file or bolt")
	cmd.Flags().BoolVar(&config.doEval, "do-eval", false, "compare predictions with the target column and log a report")
	cmd.Flags().IntVar(&config.jobs, "jobs", 0, "goroutines used for prediction (0: one per CPU)")
	return cmd
}

func (c *inferCmdConfig) merge(cmd *cobra.Command) {
	if !cmd.Flags().Changed("target-col") {
		c.targetCol = c.cfg.Training.TargetCol
	}
	if !cmd.Flags().Changed("model-dir") {
		c.modelDir = c.cfg.Inference.ModelDir
	}
	if !cmd.Flags().Changed("out-dir") {
		c.outDir = c.cfg.Inference.OutDir
	}
	if !cmd.Flags().Changed("store") {
		c.store = c.cfg.Storage.Backend
	}
	if !cmd.Flags().Changed("do-eval") {
		c.doEval = c.cfg.Inference.DoEval
	}
	if !cmd.Flags().Changed("jobs") {
		c.jobs = c.cfg.Inference.Jobs
	}
	if c.outDir == "" {
		c.outDir = c.modelDir
	}
}

func (c *inferCmdConfig) Validate() error {
	if c.testCSV == "" {
		return errors.New("required test-csv flag was not set")
	}
	if c.modelDir == "" {
		return errors.New("required model-dir flag was not set")
	}
	if c.jobs < 0 {
		return errors.NewValidationError("jobs", "must not be negative", c.jobs)
	}
	return nil
}

func (c *inferCmdConfig) run() error {
	root, err := loadFrom(c.store, c.modelDir)
	if err != nil {
		c.logger.Error("Failed to load tree", err, log.OperationKey, log.OperationLoad, log.PathKey, c.modelDir)
		return err
	}

	ds, err := readTable(c.testCSV)
	if err != nil {
		return err
	}
	c.logger.Debug("Coercing table to strings", log.TargetKey, c.targetCol)
	ds = preprocessing.CoerceDataset(ds, c.targetCol)

	clf := tree.NewDecisionTreeClassifier(tree.WithLogger(c.logger), tree.WithNJobs(c.jobs))
	if err := clf.SetTree(root, c.targetCol); err != nil {
		return err
	}
	preds, err := clf.PredictDataset(ds)
	if err != nil {
		return err
	}
	labels := tree.Labels(preds)

	out, err := ds.WithColumn(PredictionCol, labels)
	if err != nil {
		return err
	}
	outFile := filepath.Join(c.outDir, "output.csv")
	if err := dataset.WriteCSVFile(outFile, out); err != nil {
		return err
	}
	c.logger.Info("Predictions written", log.PathKey, outFile, log.PredsKey, len(labels))

	if c.doEval {
		return c.evaluate(ds, labels)
	}
	return nil
}

func (c *inferCmdConfig) evaluate(ds *dataset.Dataset, labels []string) error {
	if !ds.HasColumn(c.targetCol) {
		c.logger.Warn("Skipping evaluation, target column not in table", log.TargetKey, c.targetCol)
		return nil
	}
	report, err := metrics.ClassificationReport(ds.Column(c.targetCol), labels)
	if err != nil {
		return err
	}
	c.logger.Info("Evaluation",
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, len(labels),
		log.AccuracyKey, report.Accuracy,
		log.PrecisionKey, report.MacroPrecision,
		log.RecallKey, report.MacroRecall,
		log.F1Key, report.MacroF1,
	)
	for _, l := range report.Confusion.Labels {
		s := report.PerLabel[l]
		c.logger.Debug("Label scores",
			log.ValueKey, l,
			log.PrecisionKey, s.Precision,
			log.RecallKey, s.Recall,
			log.F1Key, s.F1,
			log.SamplesKey, s.Support,
		)
	}
	return nil
}
