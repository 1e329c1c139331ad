// 指示: miu200521358
// Package mhost は骨格ホストへの接続契約を提供する。
package mhost

import "github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"

// ISkeletonHost は骨格を保持するホスト環境への操作契約を表す。
// 本コアはボーン姿勢を直接書かず、プロキシとコピー回転コンストレイント経由で伝播させる。
type ISkeletonHost interface {
	// CreateProxy はボーン始点位置へプロキシトランスフォームを生成する。
	CreateProxy(name string, position mmath.Vec3) error
	// SetProxyRotation はプロキシの回転を上書きする。
	SetProxyRotation(name string, rotation mmath.Euler) error
	// ProxyRotation はプロキシの現在回転を返す。
	ProxyRotation(name string) (mmath.Euler, bool)
	// RemoveProxiesByPrefix は名前接頭辞が一致するプロキシを削除し、削除数を返す。
	RemoveProxiesByPrefix(prefix string) int

	// InstallCopyRotation はプロキシからボーンへの一方向コピー回転コンストレイントを設置する。
	InstallCopyRotation(constraintName string, boneName string, proxyName string) error
	// RemoveConstraintsByPrefix は名前接頭辞が一致するコンストレイントを削除し、削除数を返す。
	RemoveConstraintsByPrefix(prefix string) int

	// PoseRotation はボーンの現在ポーズ回転を返す。
	PoseRotation(boneName string) (mmath.Euler, bool)
	// SetPoseRotation はボーンのポーズ回転を直接設定する。姿勢復元専用。
	SetPoseRotation(boneName string, rotation mmath.Euler) error
	// PoseSnapshot は全ボーンの現在ポーズ回転を返す。
	PoseSnapshot() map[string]mmath.Euler

	// EvaluateConstraints は設置済みコンストレイントを評価し、プロキシ回転をボーンへ伝播する。
	EvaluateConstraints()
}
