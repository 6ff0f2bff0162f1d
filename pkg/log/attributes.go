// Package log defines standard attribute keys for training and evaluation.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log lines can be filtered by category.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of classifier.
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "train", "classify", "confidence", "evaluate", "cross_validate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of examples in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the size of the feature universe.
	FeaturesKey = "data.features"

	// NonZeroKey indicates the number of stored non-zero feature values.
	NonZeroKey = "data.nnz"
)

// Performance and Training Progress
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// AUCKey records the area under the ROC curve of the signed scores.
	AUCKey = "metrics.auc"

	// EpochKey records the current epoch number during training.
	EpochKey = "training.epoch"

	// IterationKey records the configured number of epochs.
	IterationKey = "training.iterations"

	// WeightNormKey records the L2 norm of the weight vector.
	WeightNormKey = "weights.l2_norm"

	// BiasKey records the bias term.
	BiasKey = "weights.bias"

	// FoldKey identifies a cross-validation fold.
	FoldKey = "eval.fold"

	// RepeatKey identifies a repetition of a cross-validation run.
	RepeatKey = "eval.repeat"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Hyperparameters
const (
	// LossFunctionKey records the surrogate loss ("exponential", "hinge", "squared").
	LossFunctionKey = "hyperparams.loss"

	// RegularizationKey records the regularization kind ("none", "l1", "l2").
	RegularizationKey = "hyperparams.regularization"

	// LearningRateKey records the learning rate eta.
	LearningRateKey = "hyperparams.learning_rate"

	// LambdaKey records the regularization strength lambda.
	LambdaKey = "hyperparams.lambda"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationTrain         = "train"
	OperationClassify      = "classify"
	OperationConfidence    = "confidence"
	OperationEvaluate      = "evaluate"
	OperationCrossValidate = "cross_validate"
	OperationSweep         = "sweep"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"

	ErrorNotFitted      = "NOT_FITTED"
	ErrorEmptyData      = "EMPTY_DATA"
	ErrorInvalidInput   = "INVALID_INPUT"
	ErrorUnknownFeature = "UNKNOWN_FEATURE"
	ErrorUnstable       = "NUMERICAL_INSTABILITY"
)
