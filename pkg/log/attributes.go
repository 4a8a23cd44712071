package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "DecisionTreeClassifier".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or command emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is "training", "inference" or "evaluation".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of rows processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of candidate feature columns.
	FeaturesKey = "data.features"

	// TargetKey is the name of the label column.
	TargetKey = "data.target"

	// PathKey is a file or directory the operation reads or writes.
	PathKey = "data.path"
)

// Tree shape and traversal.
const (
	// DepthKey is the depth of a built tree (a lone leaf has depth 0).
	DepthKey = "tree.depth"

	// LeavesKey is the number of leaves in a built tree.
	LeavesKey = "tree.leaves"

	// RootKey is the value of the root node.
	RootKey = "tree.root"

	// FeatureKey is the feature a split tests.
	FeatureKey = "tree.feature"

	// ValueKey is a record's value for FeatureKey.
	ValueKey = "tree.value"

	// FallbackKey is the child key chosen for an unseen value.
	FallbackKey = "tree.fallback"
)

// Performance and evaluation.
const (
	// DurationMsKey is the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey is the number of goroutines used by a parallel operation.
	WorkersKey = "perf.workers"

	// AccuracyKey is the fraction of correctly classified rows.
	AccuracyKey = "metrics.accuracy"

	// PrecisionKey, RecallKey and F1Key hold macro-averaged scores.
	PrecisionKey = "metrics.precision"
	RecallKey    = "metrics.recall"
	F1Key        = "metrics.f1"

	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"

	// UnclassifiedKey is the number of rows that got no classification.
	UnclassifiedKey = "preds.unclassified"

	// FallbacksKey is the number of unseen-value fallbacks taken.
	FallbacksKey = "preds.fallbacks"
)

// Error context.
const (
	// ErrorTypeKey categorizes the error or warning.
	ErrorTypeKey = "error.type"

	// StacktraceKey holds stack trace information.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationSave    = "save"
	OperationLoad    = "load"

	PhaseTraining   = "training"
	PhaseInference  = "inference"
	PhaseEvaluation = "evaluation"
)
