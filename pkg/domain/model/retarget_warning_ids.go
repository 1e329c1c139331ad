// 指示: miu200521358
package model

const (
	// RetargetWarningBoneNotFound はマッピング先ボーン欠落警告。該当ボーンのみスキップする。
	RetargetWarningBoneNotFound = "RetargetWarningBoneNotFound"
	// RetargetWarningHierarchyBoneMissing は期待階層のボーン欠落警告。
	RetargetWarningHierarchyBoneMissing = "RetargetWarningHierarchyBoneMissing"
	// RetargetWarningHierarchyParentMismatch は期待階層と実親の不一致警告。
	RetargetWarningHierarchyParentMismatch = "RetargetWarningHierarchyParentMismatch"
	// RetargetWarningNotTPose はTポーズ判定失敗警告。
	RetargetWarningNotTPose = "RetargetWarningNotTPose"
)

// RetargetWarning は転送準備・診断時の警告を表す。制御フローには使わない。
type RetargetWarning struct {
	ID      string
	Message string
}
