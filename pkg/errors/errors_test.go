package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Train",
			kind:    "empty data",
			err:     ErrEmptyData,
			wantMsg: "gdlinear: Train: empty data: empty data",
		},
		{
			name:    "without original error",
			op:      "Classify",
			kind:    "not trained",
			err:     nil,
			wantMsg: "gdlinear: Classify: not trained",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)
			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			assert.Contains(t, formatted, "errors_test.go")

			var modelErr *ModelError
			require.True(t, As(err, &modelErr))
			if tt.err != nil {
				assert.True(t, Is(err, tt.err))
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GradientDescentClassifier", "Classify")

	want := "gdlinear: GradientDescentClassifier: this model is not trained yet. Call Train() before using Classify()"
	assert.Equal(t, want, err.Error())

	var nfErr *NotFittedError
	require.True(t, As(err, &nfErr))
	assert.Equal(t, "Classify", nfErr.Method)
}

func TestNewUnknownFeatureError(t *testing.T) {
	err := NewUnknownFeatureError("LinearScore", 42)

	var ufErr *UnknownFeatureError
	require.True(t, As(err, &ufErr))
	assert.Equal(t, 42, ufErr.Feature)
	assert.Contains(t, err.Error(), "unknown feature index 42")
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.5)

	var vErr *ValidationError
	require.True(t, As(err, &vErr))
	assert.Equal(t, "learning_rate", vErr.ParamName)
	assert.Equal(t, "gdlinear: validation failed for parameter 'learning_rate': must be positive (got: -0.5)", err.Error())
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Accuracy", 10, 8, 0)

	want := "gdlinear: Accuracy: dimension mismatch on axis 0 (rows). Expected 10, got 8"
	assert.Equal(t, want, err.Error())

	var dimErr *DimensionError
	assert.True(t, As(err, &dimErr))
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrInvalidLabel, "example 3")
	assert.True(t, Is(wrapped, ErrInvalidLabel))
	assert.False(t, Is(wrapped, ErrEmptyData))
	assert.True(t, strings.HasPrefix(wrapped.Error(), "example 3"))

	wrappedf := Wrapf(ErrEmptyData, "fold %d", 2)
	assert.Equal(t, "fold 2: empty data", wrappedf.Error())
}

func TestWarn_UsesHandler(t *testing.T) {
	var got []error
	prev := SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(prev)

	Warn(NewFormulaWarning("SquaredLoss", "literal update constant"))

	require.Len(t, got, 1)
	var fw *FormulaWarning
	require.True(t, As(got[0], &fw))
	assert.Equal(t, "SquaredLoss", fw.Component)
}

func TestWarn_PrefersZerologFunc(t *testing.T) {
	var handlerCalls, zerologCalls int
	prev := SetWarningHandler(func(error) { handlerCalls++ })
	defer SetWarningHandler(prev)
	SetZerologWarnFunc(func(error) { zerologCalls++ })
	defer SetZerologWarnFunc(nil)

	Warn(NewUndefinedMetricWarning("auc", "only one class present", 0.5))

	assert.Equal(t, 0, handlerCalls)
	assert.Equal(t, 1, zerologCalls)
}

func TestCheckNumericalStability(t *testing.T) {
	assert.NoError(t, CheckNumericalStability("epoch_update", []float64{0, 1.5, -3}, 1))

	err := CheckNumericalStability("epoch_update", []float64{1, math.Inf(1), math.NaN()}, 4)
	require.Error(t, err)

	var nErr *NumericalInstabilityError
	require.True(t, As(err, &nErr))
	assert.Equal(t, 4, nErr.Iteration)
	assert.Len(t, nErr.Values, 2)

	assert.NoError(t, CheckScalar("bias", 0.25, 1))
	assert.Error(t, CheckScalar("bias", math.Inf(-1), 1))
}
