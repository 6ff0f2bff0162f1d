package linear

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

func TestParseLoss(t *testing.T) {
	tests := []struct {
		in   string
		want Loss
	}{
		{"exponential", ExponentialLoss},
		{"EXP", ExponentialLoss},
		{" hinge ", HingeLoss},
		{"squared", SquaredLoss},
		{"square", SquaredLoss},
	}
	for _, tt := range tests {
		got, err := ParseLoss(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLoss("logistic")
	var vErr *errors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "loss", vErr.ParamName)
}

func TestParseRegularization(t *testing.T) {
	for in, want := range map[string]Regularization{
		"none":  NoRegularization,
		"":      NoRegularization,
		"L1":    L1Regularization,
		"lasso": L1Regularization,
		"l2":    L2Regularization,
		"ridge": L2Regularization,
	} {
		got, err := ParseRegularization(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRegularization("elasticnet")
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestSelectors_String(t *testing.T) {
	assert.Equal(t, "hinge", HingeLoss.String())
	assert.Equal(t, "Loss(9)", Loss(9).String())
	assert.Equal(t, "l2", L2Regularization.String())
	assert.Equal(t, "Regularization(-1)", Regularization(-1).String())
	assert.False(t, Loss(3).Valid())
	assert.True(t, L1Regularization.Valid())
}

func TestSelectors_YAML(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte("loss: hinge\nregularization: l1\nlearning_rate: 0.5\n"), &cfg))
	assert.Equal(t, HingeLoss, cfg.Loss)
	assert.Equal(t, L1Regularization, cfg.Regularization)
	assert.Equal(t, 0.5, cfg.LearningRate)

	out, err := yaml.Marshal(Config{Loss: SquaredLoss, Regularization: L2Regularization})
	require.NoError(t, err)
	assert.Contains(t, string(out), "loss: squared")
	assert.Contains(t, string(out), "regularization: l2")

	err = yaml.Unmarshal([]byte("loss: cubic\n"), &cfg)
	assert.Error(t, err)
}

func TestLoss_UpdateConstant(t *testing.T) {
	const eta = 0.1
	tests := []struct {
		name    string
		loss    Loss
		y, z, b float64
		want    float64
	}{
		{"exponential at boundary", ExponentialLoss, 1, 0, 0, eta},
		{"exponential correct side", ExponentialLoss, 1, 1, 1, eta * math.Exp(-2)},
		{"exponential wrong side", ExponentialLoss, -1, 0.5, 0, eta * math.Exp(0.5)},
		{"hinge inside margin", HingeLoss, 1, 0.5, 0.49, eta},
		{"hinge on margin", HingeLoss, 1, 0.5, 0.5, 0},
		{"hinge outside margin", HingeLoss, -1, -3, 0, 0},
		{"hinge misclassified", HingeLoss, -1, 2, 0, eta},
		{"squared positive", SquaredLoss, 1, 0, 0, 1},
		{"squared negative label", SquaredLoss, -1, 0.5, 0.5, 4},
		{"squared exact", SquaredLoss, 1, 0.25, 0.75, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.loss.UpdateConstant(eta, tt.y, tt.z, tt.b), 1e-12)
		})
	}
}

func TestLoss_SquaredIgnoresLearningRate(t *testing.T) {
	assert.Equal(t, SquaredLoss.UpdateConstant(0.001, 1, 0.2, 0), SquaredLoss.UpdateConstant(10, 1, 0.2, 0))
	for _, z := range []float64{-5, -1, 0, 1, 5} {
		assert.GreaterOrEqual(t, SquaredLoss.UpdateConstant(0.1, -1, z, 0), 0.0)
	}
}

func TestRegularization_Penalty(t *testing.T) {
	const eta, lambda = 0.1, 0.5
	for _, v := range []float64{-3, -1e-12, 0, math.Copysign(0, -1), 1e-12, 2} {
		assert.Equal(t, 0.0, NoRegularization.Penalty(eta, lambda, v))
		assert.InDelta(t, eta*lambda*v, L2Regularization.Penalty(eta, lambda, v), 1e-15)
	}
}

func TestRegularization_L1SignMatchesWeight(t *testing.T) {
	const eta, lambda = 0.2, 0.3
	for _, v := range []float64{-100, -1, -1e-300, 0, math.Copysign(0, -1), 1e-300, 1, 100} {
		p := L1Regularization.Penalty(eta, lambda, v)
		assert.InDelta(t, eta*lambda, math.Abs(p), 1e-15)
		if v < 0 {
			assert.Less(t, p, 0.0, "v=%v", v)
		} else {
			assert.Greater(t, p, 0.0, "v=%v (zero counts as positive)", v)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name  string
		mut   func(*Config)
		param string
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, "iterations"},
		{"negative iterations", func(c *Config) { c.Iterations = -3 }, "iterations"},
		{"zero eta", func(c *Config) { c.LearningRate = 0 }, "learning_rate"},
		{"negative eta", func(c *Config) { c.LearningRate = -0.1 }, "learning_rate"},
		{"NaN eta", func(c *Config) { c.LearningRate = math.NaN() }, "learning_rate"},
		{"infinite eta", func(c *Config) { c.LearningRate = math.Inf(1) }, "learning_rate"},
		{"negative lambda", func(c *Config) { c.Lambda = -1 }, "lambda"},
		{"NaN lambda", func(c *Config) { c.Lambda = math.NaN() }, "lambda"},
		{"unknown loss", func(c *Config) { c.Loss = Loss(7) }, "loss"},
		{"unknown regularization", func(c *Config) { c.Regularization = Regularization(3) }, "regularization"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			err := cfg.Validate()
			var vErr *errors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.param, vErr.ParamName)
		})
	}

	cfg := DefaultConfig()
	cfg.Lambda = 0
	assert.NoError(t, cfg.Validate(), "lambda may be zero")
}
