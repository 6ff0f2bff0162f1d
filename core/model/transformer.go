package model

import "github.com/YuminosukeSato/gdlinear/data"

// Transformer はデータセットの特徴量を変換するインターフェース
// 変換後も特徴量の集合（universe）は変わらない
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(ds *data.Dataset) error

	// Transform はデータセットを変換する
	Transform(ds *data.Dataset) (*data.Dataset, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(ds *data.Dataset) (*data.Dataset, error)
}
