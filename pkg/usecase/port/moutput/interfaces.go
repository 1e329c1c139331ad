// 指示: miu200521358
// Package moutput は入出力リポジトリへの接続契約を提供する。
package moutput

import "github.com/miu200521358/mu_mocap2rig/pkg/domain/model"

// ICaptureReader はキャプチャ入力の読み込み契約を表す。
type ICaptureReader interface {
	// CanLoad はパスが読み込み対象か判定する。
	CanLoad(path string) bool
	// InferName はパスから表示名を推定する。
	InferName(path string) string
	// Load はキャプチャフレーム列を読み込む。
	Load(path string) ([]*model.LandmarkFrame, error)
}

// IRigReader はリグ定義の読み込み契約を表す。
type IRigReader interface {
	// CanLoad はパスが読み込み対象か判定する。
	CanLoad(path string) bool
	// InferName はパスから表示名を推定する。
	InferName(path string) string
	// Load はリグ定義から骨格を構築する。
	Load(path string) (*model.Skeleton, error)
}

// IRigWriter はリグ定義の書き込み契約を表す。
type IRigWriter interface {
	// Save は骨格をリグ定義へ書き出す。
	Save(path string, skeleton *model.Skeleton) error
}
