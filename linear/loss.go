package linear

import (
	"fmt"
	"math"
	"strings"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Loss selects the surrogate loss that drives the per-example update.
type Loss int

const (
	// ExponentialLoss: c = η·exp(−y·(z+b)).
	ExponentialLoss Loss = iota
	// HingeLoss: c = η when y·(z+b) < 1, otherwise 0.
	HingeLoss
	// SquaredLoss: c = (y − (z+b))².
	//
	// This is not the gradient of the squared error. It carries no learning
	// rate and no sign, so every update moves w[i] in the direction of x[i]·y.
	// It is kept in this form for compatibility with published results;
	// building a classifier with it emits a FormulaWarning.
	SquaredLoss
)

var lossNames = map[Loss]string{
	ExponentialLoss: "exponential",
	HingeLoss:       "hinge",
	SquaredLoss:     "squared",
}

func (l Loss) String() string {
	if s, ok := lossNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Loss(%d)", int(l))
}

// Valid reports whether l is one of the defined losses.
func (l Loss) Valid() bool {
	_, ok := lossNames[l]
	return ok
}

// ParseLoss parses a loss name. Accepted: exponential (exp), hinge,
// squared (square).
func ParseLoss(s string) (Loss, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exponential", "exp":
		return ExponentialLoss, nil
	case "hinge":
		return HingeLoss, nil
	case "squared", "square":
		return SquaredLoss, nil
	}
	return 0, errors.NewValidationError("loss", "must be one of exponential, hinge, squared", s)
}

// UpdateConstant returns the scalar c used in w[i] += x[i]·y·c for label y,
// sparse dot product z and bias b.
func (l Loss) UpdateConstant(eta, y, z, b float64) float64 {
	margin := y * (z + b)
	switch l {
	case ExponentialLoss:
		return eta * math.Exp(-margin)
	case HingeLoss:
		if margin < 1 {
			return eta
		}
		return 0
	case SquaredLoss:
		d := y - (z + b)
		return d * d
	}
	// unreachable for a validated Config
	panic(fmt.Sprintf("linear: unknown loss %d", int(l)))
}

// MarshalText implements encoding.TextMarshaler.
func (l Loss) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.NewValidationError("loss", "unknown value", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Loss) UnmarshalText(text []byte) error {
	v, err := ParseLoss(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
