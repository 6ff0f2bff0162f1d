// Package metrics provides evaluation metrics for binary classifiers.
//
// Labels may be encoded as {-1, +1} or {0, 1}; a label of 1 is the positive
// class. Predictions of 0 from an abstaining classifier count as errors.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gdlinear/pkg/errors"
)

// Accuracy は正解率を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - 正解率）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "ClassificationError")
	}
	return 1 - acc, nil
}

// AbstentionRate は予測が 0（決定境界上）だった割合を返す
func AbstentionRate(yPred *mat.VecDense) (float64, error) {
	if yPred == nil || yPred.Len() == 0 {
		return 0, errors.NewValueError("AbstentionRate", "empty vector")
	}
	n := yPred.Len()
	zeros := 0
	for i := 0; i < n; i++ {
		if yPred.AtVec(i) == 0 {
			zeros++
		}
	}
	return float64(zeros) / float64(n), nil
}

// AUC はROC曲線下の面積を計算する
// yScore は符号付きスコア（大きいほど正例らしい）で、確率である必要はない
// 片方のクラスしか存在しない場合は UndefinedMetricWarning を出して 0.5 を返す
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}

	scores := make([]float64, n)
	order := make([]int, n)
	nPos := 0
	for i := 0; i < n; i++ {
		y := yTrue.AtVec(i)
		switch y {
		case 1:
			nPos++
		case 0, -1:
		default:
			return 0, errors.NewValueError("AUC", fmt.Sprintf("label %v at position %d is not binary", y, i))
		}
		scores[i] = yScore.AtVec(i)
	}
	if nPos == 0 || nPos == n {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	// stat.ROC は昇順にソートされたスコアを要求する
	floats.Argsort(scores, order)
	classes := make([]bool, n)
	for i, idx := range order {
		classes[i] = yTrue.AtVec(idx) == 1
	}
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// AUCMatrix は行列形式の入力に対してAUCを計算する（最初の列を使用）
func AUCMatrix(yTrue, yScore mat.Matrix) (float64, error) {
	if yTrue == nil || yScore == nil {
		return 0, errors.NewValueError("AUCMatrix", "nil matrix")
	}
	rTrue, cTrue := yTrue.Dims()
	rScore, cScore := yScore.Dims()
	if rTrue == 0 || cTrue == 0 || cScore == 0 {
		return 0, errors.NewValueError("AUCMatrix", "empty matrix")
	}
	if rTrue != rScore {
		return 0, errors.NewDimensionError("AUCMatrix", rTrue, rScore, 0)
	}
	return AUC(column(yTrue), column(yScore))
}

func column(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}
