// 指示: miu200521358
package mretarget

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
)

// testBonePrefix はテスト骨格のボーン名接頭辞。
const testBonePrefix = "mixamorig:"

// testBoneSpec はテスト骨格1本分の定義。
type testBoneSpec struct {
	name   string
	parent string
	head   mmath.Vec3
	tail   mmath.Vec3
}

// newTPoseBoneSpecs はTポーズの上半身骨格定義を返す。
func newTPoseBoneSpecs() []testBoneSpec {
	return []testBoneSpec{
		{"Hips", "", vec3(0, 1.0, 0), vec3(0, 1.1, 0)},
		{"Spine", "Hips", vec3(0, 1.1, 0), vec3(0, 1.25, 0)},
		{"Spine1", "Spine", vec3(0, 1.25, 0), vec3(0, 1.4, 0)},
		{"Spine2", "Spine1", vec3(0, 1.4, 0), vec3(0, 1.5, 0)},
		{"Neck", "Spine2", vec3(0, 1.5, 0), vec3(0, 1.6, 0)},
		{"Head", "Neck", vec3(0, 1.6, 0), vec3(0, 1.75, 0)},
		{"LeftShoulder", "Spine2", vec3(0.05, 1.5, 0), vec3(0.15, 1.5, 0)},
		{"LeftArm", "LeftShoulder", vec3(0.15, 1.5, 0), vec3(0.45, 1.5, 0)},
		{"LeftForeArm", "LeftArm", vec3(0.45, 1.5, 0), vec3(0.7, 1.5, 0)},
		{"RightShoulder", "Spine2", vec3(-0.05, 1.5, 0), vec3(-0.15, 1.5, 0)},
		{"RightArm", "RightShoulder", vec3(-0.15, 1.5, 0), vec3(-0.45, 1.5, 0)},
		{"RightForeArm", "RightArm", vec3(-0.45, 1.5, 0), vec3(-0.7, 1.5, 0)},
	}
}

// newTPoseSkeleton はTポーズの上半身テスト骨格を生成する。
// レスト回転はレスト方向から再構成した値を設定する。
func newTPoseSkeleton(t *testing.T) *model.Skeleton {
	t.Helper()
	return buildSkeleton(t, newTPoseBoneSpecs())
}

// buildSkeleton はボーン定義列から骨格を組み立てる。
func buildSkeleton(t *testing.T, specs []testBoneSpec) *model.Skeleton {
	t.Helper()
	skeleton := model.NewSkeleton("TestRig")
	for _, spec := range specs {
		bone := model.NewBone(testBonePrefix + spec.name)
		bone.Head = spec.head
		bone.Tail = spec.tail
		if spec.parent != "" {
			parent, err := skeleton.GetByName(testBonePrefix + spec.parent)
			if err != nil {
				t.Fatalf("親ボーン取得に失敗: %v", err)
			}
			bone.ParentIndex = parent.Index()
		}
		if rest, ok := CalculateBoneRotation(bone.Head, bone.Tail, defaultUpVector); ok {
			bone.RestRotation = rest
		}
		if err := skeleton.Append(bone); err != nil {
			t.Fatalf("ボーン追加に失敗: %v", err)
		}
	}
	return skeleton
}

// newMixamoMapping はMixamoマッピングを生成する。
func newMixamoMapping(t *testing.T) rigmap.Mapping {
	t.Helper()
	mapping, err := rigmap.Create(rigmap.RigTypeMixamo)
	if err != nil {
		t.Fatalf("マッピング生成に失敗: %v", err)
	}
	return mapping
}

// newTPoseLandmarks はテスト骨格と整合するTポーズのポーズランドマークを返す。
func newTPoseLandmarks() *model.LandmarkSet {
	set := model.NewLandmarkSet()
	positions := map[int]mmath.Vec3{
		0:  vec3(0, 1.65, 0.05),
		2:  vec3(0.03, 1.68, 0.05),
		8:  vec3(0.07, 1.68, 0),
		11: vec3(0.15, 1.5, 0),
		12: vec3(-0.15, 1.5, 0),
		13: vec3(0.45, 1.5, 0),
		14: vec3(-0.45, 1.5, 0),
		15: vec3(0.7, 1.5, 0),
		16: vec3(-0.7, 1.5, 0),
		23: vec3(0.1, 1.0, 0),
		24: vec3(-0.1, 1.0, 0),
	}
	for index, position := range positions {
		set.Set(index, model.Landmark{Position: position, Visibility: 1.0})
	}
	return set
}

// vec3 は座標値からVec3を生成する。
func vec3(x, y, z float64) mmath.Vec3 {
	return mmath.Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}
