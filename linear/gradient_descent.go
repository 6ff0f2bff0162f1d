package linear

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

const modelName = "GradientDescentClassifier"

// GradientDescentClassifier は疎な特徴量ベクトル上の線形二値分類器です。
// 確率的勾配降下法（1サンプルずつの逐次更新）で学習し、
// 損失関数と正則化は Config で選択します。
//
// インスタンスは単一のゴルーチンが所有することを前提としており、
// Train の実行中に Classify / Confidence を呼び出してはいけません。
type GradientDescentClassifier struct {
	state *model.StateManager

	cfg     Config
	weights *model.WeightVector
	rng     *rand.Rand
	logger  log.Logger
}

var _ model.Classifier = (*GradientDescentClassifier)(nil)

// NewGradientDescentClassifier は新しい分類器を作成します。
// 設定は生成時に検証され、不正な値は ValidationError になります。
//
// 例:
//
//	clf, err := linear.NewGradientDescentClassifier(
//	    linear.WithLoss(linear.HingeLoss),
//	    linear.WithRegularization(linear.L2Regularization),
//	    linear.WithLearningRate(0.007),
//	    linear.WithLambda(0.007),
//	)
func NewGradientDescentClassifier(opts ...Option) (*GradientDescentClassifier, error) {
	c := &GradientDescentClassifier{
		state: model.NewStateManager(),
		cfg:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	if c.logger == nil {
		c.logger = log.GetLoggerWithName("linear")
	}
	c.logger = c.logger.With(log.ModelNameKey, modelName)

	seed := c.cfg.RandomState
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(seed))

	if c.cfg.Loss == SquaredLoss {
		errors.Warn(errors.NewFormulaWarning("SquaredLoss",
			"update constant (y-(z+b))^2 is unsigned and ignores the learning rate; weights only move towards x*y"))
	}
	return c, nil
}

// Name returns the model name.
func (c *GradientDescentClassifier) Name() string {
	return modelName
}

// Config returns the hyperparameters the classifier was built with.
func (c *GradientDescentClassifier) Config() Config {
	return c.cfg
}

// IsFitted reports whether Train has completed successfully.
func (c *GradientDescentClassifier) IsFitted() bool {
	return c.state.IsFitted()
}

// Train は重みとバイアスをゼロに初期化してから学習します。
// 以前の学習結果は破棄されます（インクリメンタル学習ではありません）。
func (c *GradientDescentClassifier) Train(ds *data.Dataset) error {
	return c.fit(ds, c.cfg.Iterations)
}

func (c *GradientDescentClassifier) fit(ds *data.Dataset, epochs int) (err error) {
	const op = "GradientDescentClassifier.Train"
	defer errors.Recover(&err, op)

	if ds == nil || ds.Len() == 0 {
		c.logger.Warn("refusing to train on empty dataset",
			log.OperationKey, log.OperationTrain,
			log.ErrorCodeKey, log.ErrorEmptyData,
		)
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	for i := 0; i < ds.Len(); i++ {
		if y := ds.Example(i).Label(); y != 1 && y != -1 {
			return errors.NewModelError(op, fmt.Sprintf("example %d has label %v", i, y), errors.ErrInvalidLabel)
		}
	}

	c.state.Reset()
	c.weights = nil

	w := model.NewWeightVector(ds.FeatureIndices())
	order := ds.Examples()
	start := time.Now()

	c.logger.Info("training started",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, len(order),
		log.FeaturesKey, w.Len(),
		log.NonZeroKey, ds.NNZ(),
		log.LossFunctionKey, c.cfg.Loss.String(),
		log.RegularizationKey, c.cfg.Regularization.String(),
		log.LearningRateKey, c.cfg.LearningRate,
		log.LambdaKey, c.cfg.Lambda,
		log.IterationKey, epochs,
		log.RandomSeedKey, c.cfg.RandomState,
	)

	unstable := false
	debug := c.logger.Enabled(context.Background(), log.LevelDebug)
	for epoch := 0; epoch < epochs; epoch++ {
		c.rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, ex := range order {
			if err := c.step(w, ex); err != nil {
				return err
			}
		}

		// 発散しても学習は止めず、最初の一度だけ警告する
		if !unstable && !w.IsFinite() {
			unstable = true
			values := append(w.Values(), w.Bias())
			if ierr := errors.CheckNumericalStability("epoch_update", values, epoch+1); ierr != nil {
				errors.Warn(ierr)
				c.logger.Warn("weights diverged",
					log.EpochKey, epoch+1,
					log.ErrorCodeKey, log.ErrorUnstable,
				)
			}
		}

		if debug {
			c.logger.Debug("epoch finished",
				log.EpochKey, epoch+1,
				log.WeightNormKey, w.L2Norm(),
				log.BiasKey, w.Bias(),
			)
		}
	}

	c.weights = w
	c.state.SetFitted(w.Len(), len(order), epochs)

	c.logger.Info("training finished",
		log.OperationKey, log.OperationTrain,
		log.IterationKey, epochs,
		log.WeightNormKey, w.L2Norm(),
		log.BiasKey, w.Bias(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// step applies one stochastic update for ex. Penalties use the pre-update values.
func (c *GradientDescentClassifier) step(w *model.WeightVector, ex data.Example) error {
	eta, lambda := c.cfg.LearningRate, c.cfg.Lambda
	y := ex.Label()

	z, err := dot(ex, w)
	if err != nil {
		return err
	}
	k := c.cfg.Loss.UpdateConstant(eta, y, z, w.Bias())

	for i := 0; i < ex.NNZ(); i++ {
		idx, x := ex.Entry(i)
		old, err := w.At(idx)
		if err != nil {
			return err
		}
		if err := w.Set(idx, old+x*y*k-c.cfg.Regularization.Penalty(eta, lambda, old)); err != nil {
			return err
		}
	}

	b := w.Bias()
	w.SetBias(b + y*k - c.cfg.Regularization.Penalty(eta, lambda, b))
	return nil
}

// Classify returns +1 or -1, or 0 when ex lies exactly on the decision boundary.
func (c *GradientDescentClassifier) Classify(ex data.Example) (float64, error) {
	if err := c.state.RequireFitted(modelName, "Classify"); err != nil {
		return 0, err
	}
	return Predict(ex, c.weights)
}

// Confidence returns |bias + w·x|. It is a distance-like magnitude, not a probability.
func (c *GradientDescentClassifier) Confidence(ex data.Example) (float64, error) {
	if err := c.state.RequireFitted(modelName, "Confidence"); err != nil {
		return 0, err
	}
	s, err := LinearScore(ex, c.weights)
	if err != nil {
		return 0, err
	}
	return math.Abs(s), nil
}

// Score returns the signed linear score bias + w·x.
func (c *GradientDescentClassifier) Score(ex data.Example) (float64, error) {
	if err := c.state.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	return LinearScore(ex, c.weights)
}

// Weights returns a copy of the learned weights, or nil before training.
func (c *GradientDescentClassifier) Weights() *model.WeightVector {
	if c.weights == nil {
		return nil
	}
	return c.weights.Clone()
}

// Bias returns the learned bias (0 before training).
func (c *GradientDescentClassifier) Bias() float64 {
	if c.weights == nil {
		return 0
	}
	return c.weights.Bias()
}

// String lists the weights as "index:weight" pairs in ascending index order.
func (c *GradientDescentClassifier) String() string {
	if c.weights == nil {
		return modelName + "(untrained)"
	}
	features := c.weights.Features()
	values := c.weights.Values()
	parts := make([]string, len(features))
	for i, f := range features {
		parts[i] = strconv.Itoa(f) + ":" + strconv.FormatFloat(values[i], 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
