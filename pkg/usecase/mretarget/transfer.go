// 指示: miu200521358
package mretarget

import (
	"math"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
)

const (
	// defaultVisibilityThreshold は転送対象とする可視度の下限。
	defaultVisibilityThreshold = 0.5
	// directionLandmarkCount は方向ベクトル転送に使うランドマーク数。他の個数は予約。
	directionLandmarkCount = 2
	// transferAxisEpsilon は方向ベクトル退化判定のしきい値。
	transferAxisEpsilon = 1e-8
	// parallelUpDotLimit は補助上方向ベクトル選択の平行判定しきい値。
	parallelUpDotLimit = 0.9
)

// defaultUpVector は姿勢再構成の既定の上方向ベクトル。
var defaultUpVector = mmath.UNIT_Y_VEC3

// TransferManager はランドマークからドライバ回転への毎フレーム転送を表す。
// 前フレーム回転はセッション単位で保持し、グローバル状態へは置かない。
type TransferManager struct {
	drivers             *DriverLayer
	binder              *SkeletonBinder
	mapping             rigmap.Mapping
	visibilityThreshold float64
	smoothingEnabled    bool
	smoothingFactor     float64
	lockedRegions       map[rigmap.Region]bool
	previous            map[string]mmath.Euler
}

// NewTransferManager は転送マネージャを生成する。
func NewTransferManager(drivers *DriverLayer, binder *SkeletonBinder, mapping rigmap.Mapping) *TransferManager {
	return &TransferManager{
		drivers:             drivers,
		binder:              binder,
		mapping:             mapping,
		visibilityThreshold: defaultVisibilityThreshold,
		lockedRegions:       map[rigmap.Region]bool{},
		previous:            map[string]mmath.Euler{},
	}
}

// SetVisibilityThreshold は可視度下限を設定する。
func (tm *TransferManager) SetVisibilityThreshold(threshold float64) {
	tm.visibilityThreshold = threshold
}

// SetSmoothing は時間方向の線形ブレンドを設定する。係数は0-1へクランプする。
func (tm *TransferManager) SetSmoothing(enabled bool, factor float64) {
	tm.smoothingEnabled = enabled
	tm.smoothingFactor = mmath.ClampFloat(factor, 0.0, 1.0)
}

// SetRegionLock は領域単位の書き込み禁止を切り替える。
func (tm *TransferManager) SetRegionLock(region rigmap.Region, locked bool) {
	tm.lockedRegions[region] = locked
}

// ApplyPoseLandmarks はポーズランドマークを全対応ボーンへ転送する。
func (tm *TransferManager) ApplyPoseLandmarks(set *model.LandmarkSet) {
	if set == nil {
		return
	}
	for generic, indices := range tm.mapping.PoseMapping() {
		tm.transferBone(generic, indices, set)
	}
}

// ApplyHandLandmarks は指定した側の手ランドマークを転送する。
func (tm *TransferManager) ApplyHandLandmarks(set *model.LandmarkSet, side rigmap.HandSide) {
	if set == nil {
		return
	}
	for generic, indices := range tm.mapping.HandMapping(side) {
		tm.transferBone(generic, indices, set)
	}
}

// ApplyFaceLandmarks は顔ランドマークを転送する。
func (tm *TransferManager) ApplyFaceLandmarks(set *model.LandmarkSet) {
	if set == nil {
		return
	}
	for generic, indices := range tm.mapping.FaceMapping() {
		tm.transferBone(generic, indices, set)
	}
}

// transferBone はボーン1本分の転送を行う。
// スキップ条件ではドライバへ書き込まず、前回値を保持する(不確実時は凍結)。
func (tm *TransferManager) transferBone(generic string, indices []int, set *model.LandmarkSet) {
	if len(indices) != directionLandmarkCount {
		return
	}
	if region, exists := tm.mapping.Regions()[generic]; exists && tm.lockedRegions[region] {
		return
	}
	concrete, exists := tm.binder.Resolve(generic)
	if !exists {
		return
	}
	rest, exists := tm.drivers.RestRotation(concrete)
	if !exists {
		return
	}

	start, startExists := set.Get(indices[0])
	end, endExists := set.Get(indices[1])
	if !startExists || !endExists {
		return
	}
	if start.Visibility < tm.visibilityThreshold || end.Visibility < tm.visibilityThreshold {
		return
	}

	limit := tm.mapping.RotationLimits()[generic]
	scale, exists := tm.mapping.ScaleFactors()[generic]
	if !exists {
		scale = 1.0
	}
	correction, exists := tm.mapping.AxisCorrections()[generic]
	if !exists {
		correction = rigmap.IdentityAxisCorrection()
	}

	rotation, ok := computeDriverRotation(start.Position, end.Position, defaultUpVector, limit, scale, correction, rest)
	if !ok {
		return
	}

	if tm.smoothingEnabled {
		if previous, exists := tm.previous[concrete]; exists {
			rotation = previous.Lerped(rotation, tm.smoothingFactor)
		}
	}
	if tm.drivers.UpdateDriver(concrete, rotation) {
		tm.previous[concrete] = rotation
	}
}

// computeDriverRotation はボーン1本分の転送計算を副作用なしで行う。
// 手順は姿勢再構成→制限クランプ→スケール→軸補正→レスト回転基準への再基準化の順で固定。
// 制限はスケール前の生の捕捉分散に対する制約であり、スケール後は制限を超えうる。
func computeDriverRotation(
	start mmath.Vec3,
	end mmath.Vec3,
	up mmath.Vec3,
	limit rigmap.RotationLimit,
	scale float64,
	correction rigmap.AxisCorrection,
	rest mmath.Euler,
) (mmath.Euler, bool) {
	rotation, ok := CalculateBoneRotation(start, end, up)
	if !ok {
		return mmath.Euler{}, false
	}
	rotation = clampRotation(rotation, limit)
	rotation = rotation.MuledScalar(scale)
	rotation = correction.Apply(rotation)

	restMatrix := mmath.NewMat3FromEuler(rest)
	corrected := mmath.NewMat3FromEuler(rotation)
	return restMatrix.Inverted().Muled(corrected).ToEuler(), true
}

// CalculateBoneRotation は2点と上方向ベクトルからボーン姿勢を再構成する。
// ローカル+Y軸をaim方向とし、X=aim×side、Z=side(=up×aim)を列として組み立てる。
// aimと上方向が平行な退化時は補助軸へ決定的に差し替え、NaNを伝播させない。
func CalculateBoneRotation(start, end, up mmath.Vec3) (mmath.Euler, bool) {
	aim := end.Subed(start)
	if aim.Length() <= transferAxisEpsilon {
		return mmath.Euler{}, false
	}
	aim = aim.Normalized()

	side := up.Cross(aim)
	if side.Length() <= transferAxisEpsilon {
		side = fallbackUpVector(up).Cross(aim)
	}
	side = side.Normalized()
	axisX := aim.Cross(side)

	return mmath.NewMat3FromAxes(axisX, aim, side).ToEuler(), true
}

// fallbackUpVector は退化時に使う補助上方向ベクトルを返す。
// 指定上方向がZ軸寄りの場合のみX軸、それ以外はZ軸とする。
func fallbackUpVector(up mmath.Vec3) mmath.Vec3 {
	if math.Abs(up.Normalized().Dot(mmath.UNIT_Z_VEC3)) > parallelUpDotLimit {
		return mmath.UNIT_X_VEC3
	}
	return mmath.UNIT_Z_VEC3
}

// clampRotation は宣言済みの軸のみ制限範囲(度)へクランプする。
func clampRotation(rotation mmath.Euler, limit rigmap.RotationLimit) mmath.Euler {
	if limit.X != nil {
		rotation.X = mmath.ClampFloat(rotation.X, mmath.DegToRad(limit.X.Min), mmath.DegToRad(limit.X.Max))
	}
	if limit.Y != nil {
		rotation.Y = mmath.ClampFloat(rotation.Y, mmath.DegToRad(limit.Y.Min), mmath.DegToRad(limit.Y.Max))
	}
	if limit.Z != nil {
		rotation.Z = mmath.ClampFloat(rotation.Z, mmath.DegToRad(limit.Z.Min), mmath.DegToRad(limit.Z.Max))
	}
	return rotation
}
