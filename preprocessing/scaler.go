// Package preprocessing provides feature scalers for sparse datasets.
package preprocessing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/YuminosukeSato/gdlinear/core/model"
	"github.com/YuminosukeSato/gdlinear/data"
	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// MaxAbsScaler は各特徴量を学習データ中の最大絶対値で割るスケーラー
// 中心化を行わないため、ゼロの特徴量はゼロのまま（疎性を保つ）
type MaxAbsScaler struct {
	state *model.StateManager

	// MaxAbs は特徴量インデックスごとの最大絶対値
	MaxAbs map[int]float64
}

var _ model.Transformer = (*MaxAbsScaler)(nil)

// NewMaxAbsScaler は新しいMaxAbsScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMaxAbsScaler()
//	trainScaled, err := scaler.FitTransform(train)
//	testScaled, err := scaler.Transform(test)
func NewMaxAbsScaler() *MaxAbsScaler {
	return &MaxAbsScaler{state: model.NewStateManager()}
}

// Fit は訓練データから各特徴量の最大絶対値を計算する
//
// パラメータ:
//   - ds: 訓練データ
//
// 戻り値:
//   - error: データが空の場合
func (s *MaxAbsScaler) Fit(ds *data.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return errors.NewModelError("MaxAbsScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	maxAbs := make(map[int]float64, ds.NumFeatures())
	for _, f := range ds.FeatureIndices() {
		maxAbs[f] = 0
	}
	for i := 0; i < ds.Len(); i++ {
		ex := ds.Example(i)
		for k := 0; k < ex.NNZ(); k++ {
			idx, v := ex.Entry(k)
			if a := math.Abs(v); a > maxAbs[idx] {
				maxAbs[idx] = a
			}
		}
	}
	// 全てゼロの特徴量はスケール1（ゼロ除算を避ける）
	for f, a := range maxAbs {
		if a == 0 {
			maxAbs[f] = 1
		}
	}

	s.MaxAbs = maxAbs
	s.state.SetFitted(len(maxAbs), ds.Len(), 0)
	return nil
}

// TransformExample は1件の例をスケーリングする
// 学習時に見ていない特徴量はそのまま残す
func (s *MaxAbsScaler) TransformExample(ex data.Example) (data.Example, error) {
	if err := s.state.RequireFitted("MaxAbsScaler", "TransformExample"); err != nil {
		return data.Example{}, err
	}
	return s.apply(ex, func(v, scale float64) float64 { return v / scale })
}

// InverseTransformExample はスケーリングされた例を元のスケールに戻す
func (s *MaxAbsScaler) InverseTransformExample(ex data.Example) (data.Example, error) {
	if err := s.state.RequireFitted("MaxAbsScaler", "InverseTransformExample"); err != nil {
		return data.Example{}, err
	}
	return s.apply(ex, func(v, scale float64) float64 { return v * scale })
}

func (s *MaxAbsScaler) apply(ex data.Example, fn func(v, scale float64) float64) (data.Example, error) {
	features := make(map[int]float64, ex.NNZ())
	for k := 0; k < ex.NNZ(); k++ {
		idx, v := ex.Entry(k)
		if scale, ok := s.MaxAbs[idx]; ok {
			v = fn(v, scale)
		}
		features[idx] = v
	}
	return data.NewExample(ex.Label(), features)
}

// Transform は学習済みのスケールでデータセット全体を変換する
// 特徴量の集合（ユニバース）は入力と同じものを保つ
//
// パラメータ:
//   - ds: 変換するデータ
//
// 戻り値:
//   - *data.Dataset: スケーリングされたデータ
//   - error: 未学習の場合
func (s *MaxAbsScaler) Transform(ds *data.Dataset) (*data.Dataset, error) {
	if err := s.state.RequireFitted("MaxAbsScaler", "Transform"); err != nil {
		return nil, err
	}
	out := make([]data.Example, ds.Len())
	for i := range out {
		ex, err := s.TransformExample(ds.Example(i))
		if err != nil {
			return nil, err
		}
		out[i] = ex
	}
	return data.NewDatasetWithFeatures(ds.FeatureIndices(), out)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *MaxAbsScaler) FitTransform(ds *data.Dataset) (*data.Dataset, error) {
	if err := s.Fit(ds); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}

// String はスケーラーの文字列表現を返す
func (s *MaxAbsScaler) String() string {
	if !s.state.IsFitted() {
		return "MaxAbsScaler()"
	}
	keys := make([]int, 0, len(s.MaxAbs))
	for f := range s.MaxAbs {
		keys = append(keys, f)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, f := range keys {
		parts[i] = fmt.Sprintf("%d:%g", f, s.MaxAbs[f])
	}
	return "MaxAbsScaler(" + strings.Join(parts, " ") + ")"
}
