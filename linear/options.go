package linear

import (
	"math"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

// Default hyperparameters.
const (
	DefaultLearningRate = 0.1
	DefaultLambda       = 0.1
	DefaultIterations   = 10
)

// Config holds the hyperparameters of a GradientDescentClassifier. A
// classifier keeps its own copy; changing a Config after construction has
// no effect on it.
type Config struct {
	Loss           Loss           `yaml:"loss"`
	Regularization Regularization `yaml:"regularization"`
	LearningRate   float64        `yaml:"learning_rate"`
	Lambda         float64        `yaml:"lambda"`
	Iterations     int            `yaml:"iterations"`
	// RandomState seeds the per-epoch shuffle. -1 draws a seed from the clock.
	RandomState int64 `yaml:"random_state"`
}

// DefaultConfig returns exponential loss, no regularization, η = 0.1,
// λ = 0.1 and 10 epochs with an unseeded shuffle.
func DefaultConfig() Config {
	return Config{
		Loss:           ExponentialLoss,
		Regularization: NoRegularization,
		LearningRate:   DefaultLearningRate,
		Lambda:         DefaultLambda,
		Iterations:     DefaultIterations,
		RandomState:    -1,
	}
}

// Validate rejects unknown selectors and out-of-range numbers.
func (c Config) Validate() error {
	if !c.Loss.Valid() {
		return errors.NewValidationError("loss", "unknown loss function", int(c.Loss))
	}
	if !c.Regularization.Valid() {
		return errors.NewValidationError("regularization", "unknown regularization", int(c.Regularization))
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 1) {
		return errors.NewValidationError("learning_rate", "must be positive and finite", c.LearningRate)
	}
	if !(c.Lambda >= 0) || math.IsInf(c.Lambda, 1) {
		return errors.NewValidationError("lambda", "must be non-negative and finite", c.Lambda)
	}
	if c.Iterations <= 0 {
		return errors.NewValidationError("iterations", "must be positive", c.Iterations)
	}
	return nil
}

// Option configures a GradientDescentClassifier.
type Option func(*GradientDescentClassifier)

// WithConfig replaces all hyperparameters at once.
func WithConfig(cfg Config) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg = cfg
	}
}

// WithLoss sets the surrogate loss.
func WithLoss(loss Loss) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg.Loss = loss
	}
}

// WithRegularization sets the weight penalty.
func WithRegularization(reg Regularization) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg.Regularization = reg
	}
}

// WithLearningRate sets η.
func WithLearningRate(eta float64) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg.LearningRate = eta
	}
}

// WithLambda sets the regularization strength λ.
func WithLambda(lambda float64) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg.Lambda = lambda
	}
}

// WithIterations sets the number of epochs.
func WithIterations(n int) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg.Iterations = n
	}
}

// WithRandomState seeds the shuffle; -1 means unseeded.
func WithRandomState(seed int64) Option {
	return func(c *GradientDescentClassifier) {
		c.cfg.RandomState = seed
	}
}

// WithLogger overrides the logger obtained from log.GetLoggerWithName.
func WithLogger(logger log.Logger) Option {
	return func(c *GradientDescentClassifier) {
		c.logger = logger
	}
}
