package model

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// WeightVector はモデルの重みを表す構造体です。
// 特徴量インデックスの集合は生成時に固定され、値はスロット配列に格納されます。
// バイアス項は特徴量とは別に保持します。
type WeightVector struct {
	features []int       // 昇順の特徴量インデックス
	slots    map[int]int // 特徴量インデックス -> スロット
	values   []float64
	bias     float64
}

// NewWeightVector は指定された特徴量集合に対する全ゼロの重みベクトルを作成します。
func NewWeightVector(features []int) *WeightVector {
	fs := make([]int, len(features))
	copy(fs, features)
	sort.Ints(fs)

	uniq := fs[:0]
	for i, f := range fs {
		if i == 0 || f != fs[i-1] {
			uniq = append(uniq, f)
		}
	}

	slots := make(map[int]int, len(uniq))
	for i, f := range uniq {
		slots[f] = i
	}
	return &WeightVector{
		features: uniq,
		slots:    slots,
		values:   make([]float64, len(uniq)),
	}
}

// Len は特徴量の数を返します（バイアスを除く）。
func (w *WeightVector) Len() int {
	return len(w.features)
}

// Has は特徴量が重みベクトルに含まれるかを返します。
func (w *WeightVector) Has(feature int) bool {
	_, ok := w.slots[feature]
	return ok
}

// At は特徴量の重みを返します。未知の特徴量は UnknownFeatureError になります。
func (w *WeightVector) At(feature int) (float64, error) {
	slot, ok := w.slots[feature]
	if !ok {
		return 0, errors.NewUnknownFeatureError("WeightVector.At", feature)
	}
	return w.values[slot], nil
}

// Set は特徴量の重みを設定します。
func (w *WeightVector) Set(feature int, v float64) error {
	slot, ok := w.slots[feature]
	if !ok {
		return errors.NewUnknownFeatureError("WeightVector.Set", feature)
	}
	w.values[slot] = v
	return nil
}

// Add は特徴量の重みに delta を加算します。
func (w *WeightVector) Add(feature int, delta float64) error {
	slot, ok := w.slots[feature]
	if !ok {
		return errors.NewUnknownFeatureError("WeightVector.Add", feature)
	}
	w.values[slot] += delta
	return nil
}

// Bias はバイアス項を返します。
func (w *WeightVector) Bias() float64 {
	return w.bias
}

// SetBias はバイアス項を設定します。
func (w *WeightVector) SetBias(b float64) {
	w.bias = b
}

// Features は特徴量インデックスを昇順で返します。
func (w *WeightVector) Features() []int {
	out := make([]int, len(w.features))
	copy(out, w.features)
	return out
}

// Values は Features と同じ順序で重みのコピーを返します。
func (w *WeightVector) Values() []float64 {
	out := make([]float64, len(w.values))
	copy(out, w.values)
	return out
}

// Map は特徴量インデックスから重みへのマップを返します。
func (w *WeightVector) Map() map[int]float64 {
	out := make(map[int]float64, len(w.features))
	for i, f := range w.features {
		out[f] = w.values[i]
	}
	return out
}

// Each は全ての特徴量について昇順に fn を呼び出します。
// fn の戻り値で重みを置き換えます。
func (w *WeightVector) Each(fn func(feature int, v float64) float64) {
	for i, f := range w.features {
		w.values[i] = fn(f, w.values[i])
	}
}

// Reset は全ての重みとバイアスをゼロに戻します。
func (w *WeightVector) Reset() {
	for i := range w.values {
		w.values[i] = 0
	}
	w.bias = 0
}

// Clone はディープコピーを作成します。
func (w *WeightVector) Clone() *WeightVector {
	c := &WeightVector{
		features: w.features, // 不変なので共有
		slots:    w.slots,
		values:   make([]float64, len(w.values)),
		bias:     w.bias,
	}
	copy(c.values, w.values)
	return c
}

// L2Norm は特徴量の重みのユークリッドノルムを返します（バイアスを除く）。
func (w *WeightVector) L2Norm() float64 {
	var s float64
	for _, v := range w.values {
		s += v * v
	}
	return math.Sqrt(s)
}

// IsFinite は全ての重みとバイアスが有限かを返します。
func (w *WeightVector) IsFinite() bool {
	if math.IsNaN(w.bias) || math.IsInf(w.bias, 0) {
		return false
	}
	for _, v := range w.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
