package main

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gonuts/flag"
	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/linear"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
	"github.com/YuminosukeSato/gdlinear/pkg/log"
	"github.com/YuminosukeSato/gdlinear/preprocessing"
)

// logFlags selects the log backend for a subcommand.
type logFlags struct {
	level  string
	format string
}

func (l *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&l.level, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&l.format, "log-format", "console", "log format: console, json, slog")
}

// setup installs the global logger provider. Library warnings follow the
// zerolog backends.
func (l *logFlags) setup() error {
	level, err := log.ToLogLevel(l.level)
	if err != nil {
		return err
	}
	switch l.format {
	case "slog":
		return log.SetupLogger(l.level)
	case "json":
		log.SetLoggerProvider(log.NewZerologProvider(os.Stderr, level))
		log.NewZerologLogger(os.Stderr, level).BridgeWarnings()
	case "console":
		w := zerolog.ConsoleWriter{Out: os.Stderr}
		log.SetLoggerProvider(log.NewZerologProvider(w, level))
		log.NewZerologLogger(w, level).BridgeWarnings()
	default:
		return errors.NewValidationError("log-format", "must be one of console, json, slog", l.format)
	}
	return nil
}

// dataFlags describes the input file.
type dataFlags struct {
	path         string
	format       string
	labelCol     int
	header       bool
	comma        string
	zeroNegative bool
	scale        bool
}

func (d *dataFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&d.path, "data", "", "input file (required)")
	fs.StringVar(&d.format, "format", "", "csv or sparse; guessed from the extension when empty")
	fs.IntVar(&d.labelCol, "label-col", 0, "zero-based label column (csv)")
	fs.BoolVar(&d.header, "header", false, "skip the first csv row")
	fs.StringVar(&d.comma, "comma", ",", "csv field delimiter")
	fs.BoolVar(&d.zeroNegative, "zero-negative", false, "read label 0 as -1")
	fs.BoolVar(&d.scale, "scale", false, "scale every feature by its maximum absolute value")
}

// load reads the dataset. Scaling is fitted on the whole file.
func (d *dataFlags) load() (*data.Dataset, error) {
	if d.path == "" {
		return nil, errors.NewValidationError("data", "required", d.path)
	}
	format := data.FormatFromPath(d.path)
	if d.format != "" {
		f, err := data.ParseFormat(d.format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	comma, size := utf8.DecodeRuneInString(d.comma)
	if size == 0 || size != len(d.comma) {
		return nil, errors.NewValidationError("comma", "must be a single character", d.comma)
	}

	ds, err := data.LoadFile(d.path, format, data.CSVOptions{
		LabelColumn: d.labelCol,
		Header:      d.header,
		Comma:       comma,
	})
	if err != nil {
		return nil, err
	}
	if d.zeroNegative {
		ds = ds.Map(func(ex data.Example) data.Example {
			if ex.Label() == 0 {
				return ex.WithLabel(-1)
			}
			return ex
		})
	}
	if d.scale {
		var scaler model.Transformer = preprocessing.NewMaxAbsScaler()
		ds, err = scaler.FitTransform(ds)
		if err != nil {
			return nil, err
		}
	}
	log.GetLoggerWithName("gdclassify").Info("dataset loaded",
		"data.path", d.path,
		"data.format", format.String(),
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NumFeatures(),
		log.NonZeroKey, ds.NNZ(),
	)
	return ds, nil
}

// modelFlags holds the classifier hyperparameters.
type modelFlags struct {
	loss       string
	reg        string
	eta        float64
	lambda     float64
	iterations int
	seed       int64
}

func (m *modelFlags) register(fs *flag.FlagSet) {
	def := linear.DefaultConfig()
	fs.StringVar(&m.loss, "loss", def.Loss.String(), "loss: exponential, hinge, squared")
	fs.StringVar(&m.reg, "reg", def.Regularization.String(), "regularization: none, l1, l2")
	fs.Float64Var(&m.eta, "eta", def.LearningRate, "learning rate")
	fs.Float64Var(&m.lambda, "lambda", def.Lambda, "regularization strength")
	fs.IntVar(&m.iterations, "iterations", def.Iterations, "passes over the training set")
	fs.Int64Var(&m.seed, "seed", def.RandomState, "shuffle seed; -1 seeds from the clock")
}

func (m *modelFlags) config() (linear.Config, error) {
	loss, err := linear.ParseLoss(strings.ToLower(m.loss))
	if err != nil {
		return linear.Config{}, err
	}
	reg, err := linear.ParseRegularization(strings.ToLower(m.reg))
	if err != nil {
		return linear.Config{}, err
	}
	cfg := linear.Config{
		Loss:           loss,
		Regularization: reg,
		LearningRate:   m.eta,
		Lambda:         m.lambda,
		Iterations:     m.iterations,
		RandomState:    m.seed,
	}
	return cfg, cfg.Validate()
}
