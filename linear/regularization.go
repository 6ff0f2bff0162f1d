package linear

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Regularization selects the penalty subtracted from every touched weight.
type Regularization int

const (
	// NoRegularization subtracts nothing.
	NoRegularization Regularization = iota
	// L1Regularization subtracts η·λ·sign(v), with sign(0) = +1.
	L1Regularization
	// L2Regularization subtracts η·λ·v.
	L2Regularization
)

var regularizationNames = map[Regularization]string{
	NoRegularization: "none",
	L1Regularization: "l1",
	L2Regularization: "l2",
}

func (r Regularization) String() string {
	if s, ok := regularizationNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Regularization(%d)", int(r))
}

// Valid reports whether r is one of the defined regularizations.
func (r Regularization) Valid() bool {
	_, ok := regularizationNames[r]
	return ok
}

// ParseRegularization parses "none", "l1" or "l2" (case-insensitive; "" means none).
func ParseRegularization(s string) (Regularization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return NoRegularization, nil
	case "l1", "lasso":
		return L1Regularization, nil
	case "l2", "ridge":
		return L2Regularization, nil
	}
	return 0, errors.NewValidationError("regularization", "must be one of none, l1, l2", s)
}

// Penalty returns the amount to subtract from a weight whose pre-update value is v.
func (r Regularization) Penalty(eta, lambda, v float64) float64 {
	switch r {
	case NoRegularization:
		return 0
	case L1Regularization:
		return eta * lambda * sign(v)
	case L2Regularization:
		return eta * lambda * v
	}
	panic(fmt.Sprintf("linear: unknown regularization %d", int(r)))
}

// sign treats 0 (and -0) as positive.
func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// MarshalText implements encoding.TextMarshaler.
func (r Regularization) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.NewValidationError("regularization", "unknown value", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Regularization) UnmarshalText(text []byte) error {
	v, err := ParseRegularization(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
