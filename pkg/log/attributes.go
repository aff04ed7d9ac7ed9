// Package log defines standard attribute keys for machine learning operations.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples")
// so records from the estimator, the preprocessing collaborators and the CLI
// can be filtered together.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "GaussianNB".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "predict_proba", "score", "balance", "split"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey is the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct class labels.
	ClassesKey = "data.classes"

	// ClassCountsKey holds per-class row counts.
	ClassCountsKey = "data.class_counts"

	// TestSizeKey is the fraction of rows held out for testing.
	TestSizeKey = "data.test_size"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"
)

// Prediction and Output Context
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// WorkersKey is the number of goroutines a prediction fanned out to.
	WorkersKey = "preds.workers"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// VarSmoothingKey records the variance smoothing factor.
	VarSmoothingKey = "hyperparams.var_smoothing"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationPredictProba = "predict_proba"
	OperationScore        = "score"
	OperationBalance      = "balance"
	OperationSplit        = "split"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
