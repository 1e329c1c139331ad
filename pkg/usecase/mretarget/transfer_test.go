// 指示: miu200521358
package mretarget

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/mscene"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
)

func TestCalculateBoneRotationAimAxis(t *testing.T) {
	// 再構成した回転はローカル+Y軸をaim方向へ写す
	cases := []struct {
		name  string
		start mmath.Vec3
		end   mmath.Vec3
	}{
		{"右方向", vec3(0, 0, 0), vec3(-1, 0, 0)},
		{"左方向", vec3(0, 0, 0), vec3(1, 0, 0)},
		{"前方向", vec3(0, 0, 0), vec3(0, 0, -1)},
		{"斜め", vec3(0.2, 1.1, -0.3), vec3(0.8, 1.6, 0.4)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rotation, ok := CalculateBoneRotation(c.start, c.end, mmath.UNIT_Y_VEC3)
			if !ok {
				t.Fatalf("再構成に失敗")
			}
			aim := c.end.Subed(c.start).Normalized()
			mapped := mmath.NewMat3FromEuler(rotation).MulVec3(mmath.UNIT_Y_VEC3)
			if !mapped.NearEquals(aim, 1e-10) {
				t.Errorf("Y軸の写像先が不正: got %+v, want %+v", mapped, aim)
			}
		})
	}
}

func TestCalculateBoneRotationZeroLength(t *testing.T) {
	if _, ok := CalculateBoneRotation(vec3(1, 2, 3), vec3(1, 2, 3), mmath.UNIT_Y_VEC3); ok {
		t.Errorf("長さゼロの再構成が成功している")
	}
}

func TestCalculateBoneRotationDegenerateParallel(t *testing.T) {
	// aimと上方向が平行でもNaNを出さず決定的に再構成する
	first, ok := CalculateBoneRotation(vec3(0, 0, 0), vec3(0, 1, 0), mmath.UNIT_Y_VEC3)
	if !ok {
		t.Fatalf("退化入力の再構成に失敗")
	}
	if math.IsNaN(first.X) || math.IsNaN(first.Y) || math.IsNaN(first.Z) {
		t.Fatalf("NaNが混入: %+v", first)
	}

	second, ok := CalculateBoneRotation(vec3(0, 0, 0), vec3(0, 1, 0), mmath.UNIT_Y_VEC3)
	if !ok || !first.NearEquals(second, 1e-12) {
		t.Errorf("同一入力で結果が揺れる: %+v vs %+v", first, second)
	}

	mapped := mmath.NewMat3FromEuler(first).MulVec3(mmath.UNIT_Y_VEC3)
	if !mapped.NearEquals(mmath.UNIT_Y_VEC3, 1e-10) {
		t.Errorf("Y軸の写像先が不正: %+v", mapped)
	}
}

func TestComputeDriverRotationRestCancels(t *testing.T) {
	// レスト姿勢と同じ入力は再基準化でゼロ回転へ戻る
	start := vec3(0.1, 1.2, -0.2)
	end := vec3(0.6, 1.7, 0.1)
	rest, ok := CalculateBoneRotation(start, end, mmath.UNIT_Y_VEC3)
	if !ok {
		t.Fatalf("レスト再構成に失敗")
	}

	rotation, ok := computeDriverRotation(
		start, end, mmath.UNIT_Y_VEC3,
		rigmap.RotationLimit{}, 1.0, rigmap.IdentityAxisCorrection(), rest)
	if !ok {
		t.Fatalf("転送計算に失敗")
	}
	if !rotation.NearEquals(mmath.Euler{}, 1e-9) {
		t.Errorf("レストが相殺されない: %+v", rotation)
	}
}

func TestComputeDriverRotationClamp(t *testing.T) {
	// Z軸60度の再構成入力をZ±30度制限へ正確にクランプする
	angle := mmath.DegToRad(60)
	start := vec3(0, 0, 0)
	end := vec3(-math.Sin(angle), math.Cos(angle), 0)
	limit := rigmap.RotationLimit{Z: &rigmap.AxisRange{Min: -30, Max: 30}}

	rotation, ok := computeDriverRotation(
		start, end, mmath.UNIT_Y_VEC3,
		limit, 1.0, rigmap.IdentityAxisCorrection(), mmath.Euler{})
	if !ok {
		t.Fatalf("転送計算に失敗")
	}
	if math.Abs(rotation.Z-mmath.DegToRad(30)) > 1e-10 {
		t.Errorf("Zクランプが不正確: got %.10f, want %.10f", rotation.Z, mmath.DegToRad(30))
	}
	if math.Abs(rotation.X) > 1e-10 || math.Abs(rotation.Y) > 1e-10 {
		t.Errorf("X・Yが汚染されている: %+v", rotation)
	}
}

func TestComputeDriverRotationScale(t *testing.T) {
	// スケールはクランプ後の角度へ線形に掛かる
	angle := mmath.DegToRad(60)
	start := vec3(0, 0, 0)
	end := vec3(-math.Sin(angle), math.Cos(angle), 0)

	rotation, ok := computeDriverRotation(
		start, end, mmath.UNIT_Y_VEC3,
		rigmap.RotationLimit{}, 0.5, rigmap.IdentityAxisCorrection(), mmath.Euler{})
	if !ok {
		t.Fatalf("転送計算に失敗")
	}
	if math.Abs(rotation.Z-mmath.DegToRad(30)) > 1e-10 {
		t.Errorf("スケール結果が不正: got %.10f, want %.10f", rotation.Z, mmath.DegToRad(30))
	}
}

func TestComputeDriverRotationAxisCorrection(t *testing.T) {
	angle := mmath.DegToRad(40)
	start := vec3(0, 0, 0)
	end := vec3(-math.Sin(angle), math.Cos(angle), 0)
	correction := rigmap.AxisCorrection{
		X: rigmap.AxisTerm{Source: rigmap.AxisZ, Negate: true},
		Y: rigmap.AxisTerm{Source: rigmap.AxisY},
		Z: rigmap.AxisTerm{Source: rigmap.AxisX},
	}

	rotation, ok := computeDriverRotation(
		start, end, mmath.UNIT_Y_VEC3,
		rigmap.RotationLimit{}, 1.0, correction, mmath.Euler{})
	if !ok {
		t.Fatalf("転送計算に失敗")
	}
	if math.Abs(rotation.X-(-angle)) > 1e-10 {
		t.Errorf("X軸補正が不正: got %.10f, want %.10f", rotation.X, -angle)
	}
	if math.Abs(rotation.Z) > 1e-10 {
		t.Errorf("Z軸補正が不正: got %.10f, want 0", rotation.Z)
	}
}

// newTestTransfer はテスト骨格一式の転送マネージャを組み立てる。
func newTestTransfer(t *testing.T) (*TransferManager, *DriverLayer, *mscene.SceneHost) {
	t.Helper()
	skeleton := newTPoseSkeleton(t)
	mapping := newMixamoMapping(t)
	host := mscene.NewSceneHost(skeleton)

	binder, err := BindSkeleton(skeleton, mapping)
	if err != nil {
		t.Fatalf("バインドに失敗: %v", err)
	}
	drivers := NewDriverLayer(host)
	if err := drivers.CreateDrivers(skeleton); err != nil {
		t.Fatalf("ドライバ生成に失敗: %v", err)
	}
	return NewTransferManager(drivers, binder, mapping), drivers, host
}

func TestApplyPoseLandmarksTPose(t *testing.T) {
	// レストと同じ姿勢のランドマークは右上腕をゼロ回転へ写す
	transfer, drivers, _ := newTestTransfer(t)

	transfer.ApplyPoseLandmarks(newTPoseLandmarks())

	rotation, exists := drivers.Rotation(testBonePrefix + "RightArm")
	if !exists {
		t.Fatalf("右上腕ドライバが存在しない")
	}
	if !rotation.NearEquals(mmath.Euler{}, 1e-9) {
		t.Errorf("Tポーズでゼロ回転にならない: %+v", rotation)
	}
}

func TestApplyPoseLandmarksHoldOnLowVisibility(t *testing.T) {
	// 可視度が下限を割った点は前回値を凍結する
	transfer, drivers, _ := newTestTransfer(t)
	boneName := testBonePrefix + "RightForeArm"

	set := newTPoseLandmarks()
	set.Set(16, model.Landmark{Position: vec3(-0.6, 1.9, 0), Visibility: 1.0})
	transfer.ApplyPoseLandmarks(set)
	held, exists := drivers.Rotation(boneName)
	if !exists {
		t.Fatalf("右前腕ドライバが存在しない")
	}
	if held.NearEquals(mmath.Euler{}, 1e-9) {
		t.Fatalf("基準フレームの回転がゼロのまま")
	}

	set.Set(16, model.Landmark{Position: vec3(-0.6, 1.2, 0), Visibility: 0.2})
	transfer.ApplyPoseLandmarks(set)
	actual, _ := drivers.Rotation(boneName)
	if !actual.NearEquals(held, 1e-12) {
		t.Errorf("低可視度で前回値が保持されない: got %+v, want %+v", actual, held)
	}
}

func TestApplyPoseLandmarksHoldOnMissing(t *testing.T) {
	transfer, drivers, _ := newTestTransfer(t)
	boneName := testBonePrefix + "LeftForeArm"

	set := newTPoseLandmarks()
	set.Set(15, model.Landmark{Position: vec3(0.6, 1.9, 0), Visibility: 1.0})
	transfer.ApplyPoseLandmarks(set)
	held, exists := drivers.Rotation(boneName)
	if !exists {
		t.Fatalf("左前腕ドライバが存在しない")
	}
	if held.NearEquals(mmath.Euler{}, 1e-9) {
		t.Fatalf("基準フレームの回転がゼロのまま")
	}

	// 手首ランドマークの欠けたフレームでは書き込まない
	sparse := model.NewLandmarkSet()
	sparse.Set(13, model.Landmark{Position: vec3(0.45, 1.5, 0), Visibility: 1.0})
	transfer.ApplyPoseLandmarks(sparse)
	actual, _ := drivers.Rotation(boneName)
	if !actual.NearEquals(held, 1e-12) {
		t.Errorf("欠損時に前回値が保持されない: got %+v, want %+v", actual, held)
	}
}

func TestApplyPoseLandmarksRegionLock(t *testing.T) {
	transfer, drivers, _ := newTestTransfer(t)
	transfer.SetRegionLock(rigmap.RegionLeftArm, true)

	set := newTPoseLandmarks()
	set.Set(13, model.Landmark{Position: vec3(0.3, 1.9, 0), Visibility: 1.0})
	set.Set(14, model.Landmark{Position: vec3(-0.3, 1.9, 0), Visibility: 1.0})
	transfer.ApplyPoseLandmarks(set)

	locked, _ := drivers.Rotation(testBonePrefix + "LeftArm")
	if !locked.NearEquals(mmath.Euler{}, 1e-12) {
		t.Errorf("ロック領域のボーンが書き換わっている: %+v", locked)
	}
	unlocked, _ := drivers.Rotation(testBonePrefix + "RightArm")
	if unlocked.NearEquals(mmath.Euler{}, 1e-9) {
		t.Errorf("非ロック領域のボーンが更新されていない")
	}
}

func TestApplyPoseLandmarksSmoothing(t *testing.T) {
	// 平滑化は前フレーム回転と目標回転の線形ブレンド
	smoothed, smoothedDrivers, _ := newTestTransfer(t)
	smoothed.SetSmoothing(true, 0.5)
	raw, rawDrivers, _ := newTestTransfer(t)

	moved := newTPoseLandmarks()
	moved.Set(14, model.Landmark{Position: vec3(-0.3, 1.9, 0), Visibility: 1.0})

	smoothed.ApplyPoseLandmarks(newTPoseLandmarks())
	smoothed.ApplyPoseLandmarks(moved)
	raw.ApplyPoseLandmarks(moved)

	boneName := testBonePrefix + "RightArm"
	target, _ := rawDrivers.Rotation(boneName)
	blended, _ := smoothedDrivers.Rotation(boneName)
	expected := mmath.Euler{}.Lerped(target, 0.5)
	if !blended.NearEquals(expected, 1e-9) {
		t.Errorf("平滑化結果が不正: got %+v, want %+v", blended, expected)
	}
}

func TestApplyHandLandmarksUnresolvedBonesSkipped(t *testing.T) {
	// 手ボーンを持たない骨格では手ランドマークを黙って読み飛ばす
	transfer, drivers, _ := newTestTransfer(t)

	set := model.NewLandmarkSet()
	for index := 0; index < model.HandLandmarkCount; index++ {
		set.Set(index, model.Landmark{Position: vec3(0.7+0.01*float64(index), 1.5, 0), Visibility: 1.0})
	}
	transfer.ApplyHandLandmarks(set, rigmap.HandSideLeft)
	transfer.ApplyHandLandmarks(set, rigmap.HandSideRight)

	for name, rotation := range drivers.Rotations() {
		if !rotation.NearEquals(mmath.Euler{}, 1e-12) {
			t.Errorf("手ランドマークで体ボーンが書き換わっている: %s", name)
		}
	}
}

func TestApplyLandmarksNilSet(t *testing.T) {
	transfer, _, _ := newTestTransfer(t)

	transfer.ApplyPoseLandmarks(nil)
	transfer.ApplyHandLandmarks(nil, rigmap.HandSideLeft)
	transfer.ApplyFaceLandmarks(nil)
}
