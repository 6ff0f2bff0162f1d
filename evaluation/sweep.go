package evaluation

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/linear"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
)

// Values is a list of hyperparameter values. In YAML it is either a sequence
// ([0.01, 0.1]) or a range mapping ({start: 0.01, stop: 0.1, step: 0.01},
// stop inclusive).
type Values []float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []float64
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = list
		return nil
	case yaml.MappingNode:
		var r struct {
			Start float64 `yaml:"start"`
			Stop  float64 `yaml:"stop"`
			Step  float64 `yaml:"step"`
		}
		if err := node.Decode(&r); err != nil {
			return err
		}
		list, err := expandRange(r.Start, r.Stop, r.Step)
		if err != nil {
			return err
		}
		*v = list
		return nil
	case yaml.ScalarNode:
		var x float64
		if err := node.Decode(&x); err != nil {
			return err
		}
		*v = Values{x}
		return nil
	}
	return errors.NewValueError("Values.UnmarshalYAML", fmt.Sprintf("line %d: expected a list or a range", node.Line))
}

func expandRange(start, stop, step float64) ([]float64, error) {
	if !(step > 0) || stop < start {
		return nil, errors.NewValidationError("range", "need step > 0 and stop >= start",
			fmt.Sprintf("start=%g stop=%g step=%g", start, stop, step))
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	if n > 10000 {
		return nil, errors.NewValidationError("range", "expands to more than 10000 values", n)
	}
	out := make([]float64, n)
	for i := range out {
		// 累積誤差を避けるため start + i*step で計算し、桁を丸める
		out[i] = roundTo(start+float64(i)*step, 12)
	}
	return out, nil
}

func roundTo(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

// Grid describes an η × λ sweep for one loss/regularization pair.
type Grid struct {
	Loss           linear.Loss           `yaml:"loss"`
	Regularization linear.Regularization `yaml:"regularization"`
	Iterations     int                   `yaml:"iterations"`
	RandomState    int64                 `yaml:"random_state"`
	LearningRates  Values                `yaml:"learning_rates"`
	Lambdas        Values                `yaml:"lambdas"`
	Folds          int                   `yaml:"folds"`
	Repeats        int                   `yaml:"repeats"`
	// FoldSeed shuffles examples into folds; -1 keeps input order.
	FoldSeed int64 `yaml:"fold_seed"`
}

// DefaultGrid mirrors the classic experiment: hinge loss with L2, η and λ
// swept over small values, 10 folds.
func DefaultGrid() Grid {
	return Grid{
		Loss:           linear.HingeLoss,
		Regularization: linear.L2Regularization,
		Iterations:     linear.DefaultIterations,
		RandomState:    -1,
		LearningRates:  Values{0.007},
		Lambdas:        Values{0.007},
		Folds:          10,
		Repeats:        1,
	}
}

// Validate checks the grid and every configuration it expands to.
func (g *Grid) Validate() error {
	if len(g.LearningRates) == 0 {
		return errors.NewValidationError("learning_rates", "must not be empty", g.LearningRates)
	}
	if len(g.Lambdas) == 0 {
		return errors.NewValidationError("lambdas", "must not be empty", g.Lambdas)
	}
	if g.Folds < 2 {
		return errors.NewValidationError("folds", "must be at least 2", g.Folds)
	}
	if g.Repeats <= 0 {
		return errors.NewValidationError("repeats", "must be positive", g.Repeats)
	}
	for _, cfg := range g.Configs() {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Configs expands the grid in η-major order.
func (g *Grid) Configs() []linear.Config {
	out := make([]linear.Config, 0, len(g.LearningRates)*len(g.Lambdas))
	for _, eta := range g.LearningRates {
		for _, lambda := range g.Lambdas {
			out = append(out, linear.Config{
				Loss:           g.Loss,
				Regularization: g.Regularization,
				LearningRate:   eta,
				Lambda:         lambda,
				Iterations:     g.Iterations,
				RandomState:    g.RandomState,
			})
		}
	}
	return out
}

// LoadGrid decodes a YAML grid on top of DefaultGrid and validates it.
// Unknown keys are rejected.
func LoadGrid(r io.Reader) (*Grid, error) {
	g := DefaultGrid()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode sweep grid")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadGridFile reads a grid from a YAML file.
func LoadGridFile(path string) (*Grid, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()
	return LoadGrid(f)
}

// SweepPoint is the cross-validated result of one configuration.
type SweepPoint struct {
	Config linear.Config `yaml:"config"`
	Result *CVResult     `yaml:"result"`
}

// SweepOptions controls Sweep.
type SweepOptions struct {
	Workers int
	Logger  log.Logger
	// ClassifierLogger is handed to every classifier; nil keeps the default.
	ClassifierLogger log.Logger
}

// Sweep cross-validates every configuration of the grid on ds.
func Sweep(g *Grid, ds *data.Dataset, opts SweepOptions) ([]SweepPoint, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("evaluation")
	}

	configs := g.Configs()
	points := make([]SweepPoint, 0, len(configs))
	for _, cfg := range configs {
		cfg := cfg
		factory := func() (model.Classifier, error) {
			clfOpts := []linear.Option{linear.WithConfig(cfg)}
			if opts.ClassifierLogger != nil {
				clfOpts = append(clfOpts, linear.WithLogger(opts.ClassifierLogger))
			}
			return linear.NewGradientDescentClassifier(clfOpts...)
		}

		res, err := CrossValidate(factory, ds, CVOptions{
			Folds:   g.Folds,
			Repeats: g.Repeats,
			Workers: opts.Workers,
			Seed:    g.FoldSeed,
			Logger:  logger,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "sweep eta=%g lambda=%g", cfg.LearningRate, cfg.Lambda)
		}
		logger.Info("sweep point evaluated",
			log.OperationKey, log.OperationSweep,
			log.LearningRateKey, cfg.LearningRate,
			log.LambdaKey, cfg.Lambda,
			log.AccuracyKey, res.MeanAccuracy,
		)
		points = append(points, SweepPoint{Config: cfg, Result: res})
	}
	return points, nil
}

// Best returns the point with the highest mean accuracy; ties keep the
// earliest point.
func Best(points []SweepPoint) (SweepPoint, bool) {
	if len(points) == 0 {
		return SweepPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Result.MeanAccuracy > best.Result.MeanAccuracy {
			best = p
		}
	}
	return best, true
}

// lambdas returns the distinct λ values of points in ascending order.
func lambdas(points []SweepPoint) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, p := range points {
		if !seen[p.Config.Lambda] {
			seen[p.Config.Lambda] = true
			out = append(out, p.Config.Lambda)
		}
	}
	sort.Float64s(out)
	return out
}
