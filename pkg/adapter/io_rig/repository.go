// 指示: miu200521358
// Package io_rig はリグ定義(JSON)の読み込み・保存を提供する。
package io_rig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/io_common"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
)

// rigBoneDocument はJSON上のボーン1本分を表す。
type rigBoneDocument struct {
	Head         [3]float64 `json:"head"`
	Tail         [3]float64 `json:"tail"`
	RestRotation [3]float64 `json:"rest_rotation"`
	Parent       string     `json:"parent,omitempty"`
}

// rigDocument はJSON上のリグ定義全体を表す。
type rigDocument struct {
	ArmatureName string                     `json:"armature_name"`
	Bones        map[string]rigBoneDocument `json:"bones"`
}

// RigRepository はリグ定義の入出力契約を表す。
type RigRepository struct{}

// NewRigRepository はRigRepositoryを生成する。
func NewRigRepository() *RigRepository {
	return &RigRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *RigRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// InferName はパスから表示名を推定する。
func (r *RigRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はリグ定義から骨格を構築する。
// ボーン辞書は順不同のため、親を先に登録する順序へ並べ替えて追加する。
func (r *RigRepository) Load(path string) (*model.Skeleton, error) {
	if !r.CanLoad(path) {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, io_common.NewIoFileNotFound(path, err)
		}
		return nil, io_common.NewIoParseFailed("リグ定義の読み取りに失敗しました", err)
	}

	doc := rigDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, io_common.NewIoParseFailed("リグ定義の解析に失敗しました", err)
	}
	if len(doc.Bones) == 0 {
		return nil, io_common.NewIoParseFailed("リグ定義にボーンがありません", nil)
	}

	skeleton := model.NewSkeleton(doc.ArmatureName)
	visiting := map[string]bool{}
	var appendBone func(name string) error
	appendBone = func(name string) error {
		if skeleton.ContainsBone(name) {
			return nil
		}
		if visiting[name] {
			return io_common.NewIoParseFailed("親ボーン参照が循環しています: %s", nil, name)
		}

		boneDoc, exists := doc.Bones[name]
		if !exists {
			return io_common.NewIoParseFailed("親ボーンが未定義です: %s", nil, name)
		}
		visiting[name] = true
		if boneDoc.Parent != "" {
			if err := appendBone(boneDoc.Parent); err != nil {
				return err
			}
		}
		visiting[name] = false

		bone := model.NewBone(name)
		bone.Head = toVec3(boneDoc.Head)
		bone.Tail = toVec3(boneDoc.Tail)
		bone.RestRotation = mmath.NewEulerFromDegrees(
			boneDoc.RestRotation[0], boneDoc.RestRotation[1], boneDoc.RestRotation[2])
		if boneDoc.Parent != "" {
			parent, err := skeleton.GetByName(boneDoc.Parent)
			if err != nil {
				return io_common.NewIoParseFailed("親ボーンの解決に失敗しました: %s", err, boneDoc.Parent)
			}
			bone.ParentIndex = parent.Index()
		}
		return skeleton.Append(bone)
	}

	for _, name := range sortedBoneNames(doc.Bones) {
		if err := appendBone(name); err != nil {
			return nil, err
		}
	}
	return skeleton, nil
}

// Save は骨格をリグ定義へ書き出す。
func (r *RigRepository) Save(path string, skeleton *model.Skeleton) error {
	if skeleton == nil || skeleton.Len() == 0 {
		return io_common.NewIoWriteFailed("保存対象の骨格が空です", nil)
	}

	doc := rigDocument{
		ArmatureName: skeleton.Name(),
		Bones:        make(map[string]rigBoneDocument, skeleton.Len()),
	}
	for _, bone := range skeleton.Values() {
		boneDoc := rigBoneDocument{
			Head: fromVec3(bone.Head),
			Tail: fromVec3(bone.Tail),
		}
		boneDoc.RestRotation[0], boneDoc.RestRotation[1], boneDoc.RestRotation[2] = bone.RestRotation.Degrees()
		if bone.ParentIndex >= 0 {
			parent, err := skeleton.Get(bone.ParentIndex)
			if err != nil {
				return io_common.NewIoWriteFailed("親ボーンの解決に失敗しました: %s", err, bone.Name())
			}
			boneDoc.Parent = parent.Name()
		}
		doc.Bones[bone.Name()] = boneDoc
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return io_common.NewIoWriteFailed("リグ定義の変換に失敗しました", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return io_common.NewIoWriteFailed("リグ定義の書き込みに失敗しました", err)
	}
	return nil
}

// sortedBoneNames はボーン名を安定した順序で返す。
func sortedBoneNames(bones map[string]rigBoneDocument) []string {
	names := make([]string, 0, len(bones))
	for name := range bones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// toVec3 はJSON配列をVec3へ変換する。
func toVec3(values [3]float64) mmath.Vec3 {
	return mmath.Vec3{Vec: r3.Vec{X: values[0], Y: values[1], Z: values[2]}}
}

// fromVec3 はVec3をJSON配列へ変換する。
func fromVec3(v mmath.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
