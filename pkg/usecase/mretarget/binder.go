// 指示: miu200521358
// Package mretarget はランドマーク列から骨格ドライバ回転への転送ユースケースを提供する。
package mretarget

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
)

// bonePrefixSeparator はボーン名接頭辞の区切り文字。例: "mixamorig:"。
const bonePrefixSeparator = ":"

// SkeletonBinder は汎用ボーン名と実骨格ボーン名の対応を表す。
// 解決表はバインド時に一度だけ構築し、フレーム処理中の文字列操作を避ける。
type SkeletonBinder struct {
	skeleton *model.Skeleton
	mapping  rigmap.Mapping
	prefix   string
	resolved map[string]string
	warnings []model.RetargetWarning
}

// BindSkeleton はマッピングの全ボーン名を骨格へ解決したバインダを生成する。
func BindSkeleton(skeleton *model.Skeleton, mapping rigmap.Mapping) (*SkeletonBinder, error) {
	if skeleton == nil || skeleton.Len() == 0 {
		return nil, fmt.Errorf("バインド対象の骨格が空です")
	}
	if mapping == nil {
		return nil, fmt.Errorf("リグマッピングが未設定です")
	}

	binder := &SkeletonBinder{
		skeleton: skeleton,
		mapping:  mapping,
		prefix:   detectBonePrefix(skeleton.BoneNames()),
		resolved: map[string]string{},
	}
	binder.buildResolutionTable()
	return binder, nil
}

// detectBonePrefix は全ボーン名に共通し区切り文字で終わる最長接頭辞を返す。
func detectBonePrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	common := names[0]
	for _, name := range names[1:] {
		limit := len(common)
		if len(name) < limit {
			limit = len(name)
		}
		matched := 0
		for matched < limit && name[matched] == common[matched] {
			matched++
		}
		common = common[:matched]
		if common == "" {
			return ""
		}
	}
	separatorIndex := strings.LastIndex(common, bonePrefixSeparator)
	if separatorIndex < 0 {
		return ""
	}
	return common[:separatorIndex+1]
}

// buildResolutionTable はマッピングに現れる全汎用ボーン名の解決表を構築する。
// 解決できない名前は警告として記録し、該当ボーンのみスキップ対象とする。
func (b *SkeletonBinder) buildResolutionTable() {
	for _, generics := range []map[string][]int{
		b.mapping.PoseMapping(),
		b.mapping.HandMapping(rigmap.HandSideLeft),
		b.mapping.HandMapping(rigmap.HandSideRight),
		b.mapping.FaceMapping(),
	} {
		for generic := range generics {
			if _, done := b.resolved[generic]; done {
				continue
			}
			concrete := b.prefix + generic
			if !b.skeleton.ContainsBone(concrete) {
				b.warnings = append(b.warnings, model.RetargetWarning{
					ID:      model.RetargetWarningBoneNotFound,
					Message: fmt.Sprintf("マッピング先ボーンが骨格にありません: %s", concrete),
				})
				continue
			}
			b.resolved[generic] = concrete
		}
	}
}

// Prefix は検出済みのボーン名接頭辞を返す。
func (b *SkeletonBinder) Prefix() string {
	return b.prefix
}

// Resolve は汎用ボーン名を実ボーン名へ解決する。
func (b *SkeletonBinder) Resolve(generic string) (string, bool) {
	concrete, exists := b.resolved[generic]
	return concrete, exists
}

// Warnings はバインド時に記録した警告を返す。
func (b *SkeletonBinder) Warnings() []model.RetargetWarning {
	return b.warnings
}

// VerifyHierarchy はマッピングの期待階層と実骨格を照合し、警告一覧を返す。
// 診断専用であり、不一致があっても転送は継続する。
func (b *SkeletonBinder) VerifyHierarchy() []model.RetargetWarning {
	var warnings []model.RetargetWarning
	b.verifyHierarchyNode(b.mapping.BoneHierarchy(), "", &warnings)
	return warnings
}

// verifyHierarchyNode は期待階層を親付きで再帰検証する。
func (b *SkeletonBinder) verifyHierarchyNode(node rigmap.Hierarchy, parentGeneric string, warnings *[]model.RetargetWarning) {
	for generic, children := range node {
		concrete := b.prefix + generic
		bone, err := b.skeleton.GetByName(concrete)
		if err != nil {
			*warnings = append(*warnings, model.RetargetWarning{
				ID:      model.RetargetWarningHierarchyBoneMissing,
				Message: fmt.Sprintf("期待階層のボーンが骨格にありません: %s", concrete),
			})
			b.verifyHierarchyNode(children, generic, warnings)
			continue
		}
		if parentGeneric != "" {
			expectedParent := b.prefix + parentGeneric
			if !b.matchesParent(bone, expectedParent) {
				*warnings = append(*warnings, model.RetargetWarning{
					ID:      model.RetargetWarningHierarchyParentMismatch,
					Message: fmt.Sprintf("ボーン %s の親が期待 %s と一致しません", concrete, expectedParent),
				})
			}
		}
		b.verifyHierarchyNode(children, generic, warnings)
	}
}

// matchesParent はボーンの実親が期待名と一致するか判定する。
func (b *SkeletonBinder) matchesParent(bone *model.Bone, expectedParent string) bool {
	if bone.ParentIndex < 0 {
		return false
	}
	parent, err := b.skeleton.Get(bone.ParentIndex)
	if err != nil {
		return false
	}
	return parent.Name() == expectedParent
}
