// 指示: miu200521358
// Package rigmap はリグ規約ごとのランドマーク対応・制限・補正の静的設定を提供する。
package rigmap

import "github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"

// RigType はリグ規約の種別を表す。
type RigType string

const (
	// RigTypeMixamo はMixamo命名規約。
	RigTypeMixamo RigType = "MIXAMO"
	// RigTypeRigify はBlender Rigify命名規約。
	RigTypeRigify RigType = "RIGIFY"
	// RigTypeMaya はMaya命名規約(対応表未整備のプレースホルダ)。
	RigTypeMaya RigType = "MAYA"
)

// HandSide は手の左右を表す。
type HandSide string

const (
	// HandSideLeft は左手。
	HandSideLeft HandSide = "Left"
	// HandSideRight は右手。
	HandSideRight HandSide = "Right"
)

// Region はロック制御の対象となるボーン群を表す。
type Region string

const (
	// RegionUpperBody は体幹。
	RegionUpperBody Region = "upper_body"
	// RegionLowerBody は腰・脚。
	RegionLowerBody Region = "lower_body"
	// RegionLeftArm は左腕・左手。
	RegionLeftArm Region = "left_arm"
	// RegionRightArm は右腕・右手。
	RegionRightArm Region = "right_arm"
	// RegionHead は首・頭。
	RegionHead Region = "head"
)

// Axis はオイラー角の軸を表す。
type Axis int

const (
	// AxisX はX軸。
	AxisX Axis = iota
	// AxisY はY軸。
	AxisY
	// AxisZ はZ軸。
	AxisZ
)

// AxisTerm は補正後1軸分の参照元軸と符号を表す。
type AxisTerm struct {
	Source Axis
	Negate bool
}

// AxisCorrection はローカル軸規約差を吸収する軸入替・反転の記述子を表す。
// 関数ではなくデータとして保持し、直列化と比較を可能にする。
type AxisCorrection struct {
	X AxisTerm
	Y AxisTerm
	Z AxisTerm
}

// IdentityAxisCorrection は恒等補正を返す。
func IdentityAxisCorrection() AxisCorrection {
	return AxisCorrection{
		X: AxisTerm{Source: AxisX},
		Y: AxisTerm{Source: AxisY},
		Z: AxisTerm{Source: AxisZ},
	}
}

// Apply はオイラー角へ補正を適用した結果を返す。
func (c AxisCorrection) Apply(e mmath.Euler) mmath.Euler {
	return mmath.Euler{
		X: c.X.resolve(e),
		Y: c.Y.resolve(e),
		Z: c.Z.resolve(e),
	}
}

// resolve は参照元軸の値へ符号を適用して返す。
func (t AxisTerm) resolve(e mmath.Euler) float64 {
	var value float64
	switch t.Source {
	case AxisY:
		value = e.Y
	case AxisZ:
		value = e.Z
	default:
		value = e.X
	}
	if t.Negate {
		return -value
	}
	return value
}

// AxisRange は1軸分の回転制限(度)を表す。
type AxisRange struct {
	Min float64
	Max float64
}

// RotationLimit はボーン1本分の軸別回転制限を表す。nilの軸は無制限。
type RotationLimit struct {
	X *AxisRange
	Y *AxisRange
	Z *AxisRange
}

// Capabilities はリグ規約が対応する転送部位を表す。
type Capabilities struct {
	Face  bool
	Hands bool
}

// Hierarchy は親ボーン名から子階層への入れ子対応を表す。診断検証専用。
type Hierarchy map[string]Hierarchy

// Mapping はリグ規約1種の不変設定を表す。インスタンスはセッション間で共有してよい。
type Mapping interface {
	// RigType は規約種別を返す。
	RigType() RigType
	// BoneHierarchy は期待ボーン階層を返す。
	BoneHierarchy() Hierarchy
	// PoseMapping は汎用ボーン名からポーズランドマーク番号列への対応を返す。
	PoseMapping() map[string][]int
	// HandMapping は指定した側の手ボーン対応を返す。
	HandMapping(side HandSide) map[string][]int
	// FaceMapping は顔ボーン対応を返す。
	FaceMapping() map[string][]int
	// RotationLimits はボーン別回転制限(度)を返す。
	RotationLimits() map[string]RotationLimit
	// ScaleFactors はボーン別スケール係数を返す。未登録は1.0扱い。
	ScaleFactors() map[string]float64
	// AxisCorrections はボーン別軸補正を返す。未登録は恒等扱い。
	AxisCorrections() map[string]AxisCorrection
	// Capabilities は対応部位フラグを返す。
	Capabilities() Capabilities
	// Regions はボーン別の領域割り当てを返す。
	Regions() map[string]Region
	// TPoseProbe はTポーズ判定に使う体幹・左右上腕の汎用ボーン名を返す。
	TPoseProbe() (spine string, leftArm string, rightArm string, ok bool)
}

// limitAll は全軸共通の回転制限を生成する。
func limitAll(min, max float64) RotationLimit {
	return RotationLimit{
		X: &AxisRange{Min: min, Max: max},
		Y: &AxisRange{Min: min, Max: max},
		Z: &AxisRange{Min: min, Max: max},
	}
}
