package tree

import (
	"encoding/json"
	"time"

	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/core/parallel"
	"github.com/YuminosukeSato/id3tree/metrics"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/preprocessing"
)

const modelName = "DecisionTreeClassifier"

// sequentialRows is the table size below which PredictDataset stays on
// the calling goroutine.
const sequentialRows = 256

// DecisionTreeClassifier wraps Build and Predict as an estimator with
// fitted-state tracking, logging and persistence.
type DecisionTreeClassifier struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	features   []string // explicit feature list, all but target when nil
	nJobs      int      // workers for PredictDataset, <= 0 means all CPUs
	fitWorkers int      // workers for the root branches, <= 1 is sequential

	// Learned parameters
	tree   Node
	target string
}

// Option configures a DecisionTreeClassifier.
type Option func(*DecisionTreeClassifier)

// WithLogger sets the logger. The global logger is used by default.
func WithLogger(l log.Logger) Option {
	return func(c *DecisionTreeClassifier) {
		c.logger = l
	}
}

// WithNJobs sets the number of goroutines PredictDataset uses.
func WithNJobs(n int) Option {
	return func(c *DecisionTreeClassifier) {
		c.nJobs = n
	}
}

// WithParallelFit builds the subtrees under the root with up to n
// goroutines.
func WithParallelFit(n int) Option {
	return func(c *DecisionTreeClassifier) {
		c.fitWorkers = n
	}
}

// WithFeatures restricts training to the given columns.
func WithFeatures(features ...string) Option {
	return func(c *DecisionTreeClassifier) {
		c.features = append([]string(nil), features...)
	}
}

// NewDecisionTreeClassifier creates an unfitted classifier.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	c := &DecisionTreeClassifier{
		state: model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName(modelName)
	}
	return c
}

var (
	_ model.Classifier  = (*DecisionTreeClassifier)(nil)
	_ model.Persistable = (*DecisionTreeClassifier)(nil)
)

// Fit grows a tree that predicts target from the feature columns of ds.
func (c *DecisionTreeClassifier) Fit(ds *dataset.Dataset, target string) (err error) {
	defer errors.Recover(&err, modelName+".Fit")

	if ds == nil {
		return errors.ErrEmptyData
	}
	features := c.features
	if features == nil {
		features = preprocessing.FeatureColumns(ds, target)
	}

	start := time.Now()
	root, err := NewBuilder(WithParallelBranches(c.fitWorkers)).Build(ds, features, target)
	if err != nil {
		c.logger.Error("Failed to build tree", err,
			log.OperationKey, log.OperationFit,
			log.TargetKey, target,
		)
		return err
	}

	c.tree = root
	c.target = target
	c.state.SetDimensions(len(features), ds.Len())
	c.state.SetFitted()

	c.logger.Info("Tree built",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, len(features),
		log.TargetKey, target,
		log.RootKey, root.Value(),
		log.DepthKey, root.Depth(),
		log.LeavesKey, CountLeaves(root),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// SetTree installs a tree built elsewhere, typically one read from a
// store, and marks the classifier fitted.
func (c *DecisionTreeClassifier) SetTree(root Node, target string) error {
	if root == nil {
		return errors.NewValueError(modelName+".SetTree", "tree is nil")
	}
	c.tree = root
	c.target = target
	c.state.SetDimensions(len(Features(root)), 0)
	c.state.SetFitted()
	return nil
}

// Tree returns the fitted tree, or nil.
func (c *DecisionTreeClassifier) Tree() Node {
	return c.tree
}

// Target returns the label column.
func (c *DecisionTreeClassifier) Target() string {
	return c.target
}

// Features returns the features the fitted tree tests.
func (c *DecisionTreeClassifier) Features() []string {
	if c.tree == nil {
		return nil
	}
	return Features(c.tree)
}

// Predict classifies one record. Fallbacks and missing features are
// reported through errors.Warn; a record without a needed feature gets
// NoClassification and a nil error.
func (c *DecisionTreeClassifier) Predict(record dataset.Record) (string, error) {
	if err := c.state.RequireFitted(modelName, "Predict"); err != nil {
		return "", err
	}
	p := Predict(record, c.tree)
	for _, w := range p.Warnings {
		errors.Warn(w)
	}
	return p.Label, nil
}

// PredictDataset classifies every row of ds. Rows are spread over the
// configured number of goroutines; warnings are reported afterwards in
// row order.
func (c *DecisionTreeClassifier) PredictDataset(ds *dataset.Dataset) ([]Prediction, error) {
	if err := c.state.RequireFitted(modelName, "PredictDataset"); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, errors.ErrEmptyData
	}

	start := time.Now()
	preds := make([]Prediction, ds.Len())
	parallel.ParallelizeWithThreshold(ds.Len(), sequentialRows, c.nJobs, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			preds[i] = Predict(ds.Row(i), c.tree)
		}
	})

	unclassified, fallbacks := 0, 0
	for _, p := range preds {
		if !p.Found {
			unclassified++
		}
		for _, w := range p.Warnings {
			var uv *errors.UnseenValueWarning
			if errors.As(w, &uv) {
				fallbacks++
			}
			errors.Warn(w)
		}
	}

	c.logger.Info("Predictions made",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(preds),
		log.UnclassifiedKey, unclassified,
		log.FallbacksKey, fallbacks,
		log.WorkersKey, parallel.Workers(c.nJobs),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return preds, nil
}

// Score returns the accuracy of the classifier on ds, which must carry
// the target column.
func (c *DecisionTreeClassifier) Score(ds *dataset.Dataset) (float64, error) {
	if err := c.state.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	if ds == nil {
		return 0, errors.ErrEmptyData
	}
	if err := ds.Validate(c.target); err != nil {
		return 0, err
	}
	preds, err := c.PredictDataset(ds)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.Accuracy(ds.Column(c.target), Labels(preds))
	if err != nil {
		return 0, err
	}
	c.logger.Info("Model scored",
		log.OperationKey, log.OperationScore,
		log.PhaseKey, log.PhaseEvaluation,
		log.AccuracyKey, acc,
	)
	return acc, nil
}

// Save writes the tree to path in its persisted JSON form.
func (c *DecisionTreeClassifier) Save(path string) error {
	if err := c.state.RequireFitted(modelName, "Save"); err != nil {
		return err
	}
	if err := model.SaveJSON(ToDict(c.tree), path); err != nil {
		return errors.NewModelError(modelName+".Save", "persistence", err)
	}
	c.logger.Debug("Tree saved", log.OperationKey, log.OperationSave, log.PathKey, path)
	return nil
}

// Load reads a tree written by Save. The target is left unchanged.
func (c *DecisionTreeClassifier) Load(path string) error {
	var d Dict
	if err := model.LoadJSON(&d, path); err != nil {
		return errors.NewModelError(modelName+".Load", "persistence", err)
	}
	c.logger.Debug("Tree loaded", log.OperationKey, log.OperationLoad, log.PathKey, path)
	return c.SetTree(FromDict(d), c.target)
}

type classifierJSON struct {
	Target string           `json:"target"`
	Tree   *Dict            `json:"tree,omitempty"`
	State  model.ModelState `json:"state"`
}

// MarshalJSON encodes the target, the tree and the fitted state.
func (c *DecisionTreeClassifier) MarshalJSON() ([]byte, error) {
	out := classifierJSON{Target: c.target, State: c.state.GetState()}
	if c.tree != nil {
		d := ToDict(c.tree)
		out.Tree = &d
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a classifier encoded by MarshalJSON.
func (c *DecisionTreeClassifier) UnmarshalJSON(data []byte) error {
	var in classifierJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.NewModelError(modelName+".UnmarshalJSON", "malformed model", err)
	}
	if c.state == nil {
		c.state = model.NewStateManager()
	}
	if c.logger == nil {
		c.logger = log.GetLoggerWithName(modelName)
	}
	c.target = in.Target
	c.tree = nil
	if in.Tree != nil {
		c.tree = FromDict(*in.Tree)
	}
	c.state.SetState(in.State)
	if in.State.Fitted && c.tree == nil {
		return errors.NewModelError(modelName+".UnmarshalJSON", "fitted model without tree", nil)
	}
	return nil
}
