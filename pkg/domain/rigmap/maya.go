// 指示: miu200521358
package rigmap

// mayaMapping はMaya規約のプレースホルダを表す。対応表は未整備。
type mayaMapping struct{}

// RigType は規約種別を返す。
func (m *mayaMapping) RigType() RigType {
	return RigTypeMaya
}

// BoneHierarchy は期待ボーン階層を返す。
func (m *mayaMapping) BoneHierarchy() Hierarchy {
	return Hierarchy{}
}

// PoseMapping はポーズ対応表を返す。
func (m *mayaMapping) PoseMapping() map[string][]int {
	return map[string][]int{}
}

// HandMapping は指定した側の手対応表を返す。
func (m *mayaMapping) HandMapping(side HandSide) map[string][]int {
	return map[string][]int{}
}

// FaceMapping は顔対応表を返す。
func (m *mayaMapping) FaceMapping() map[string][]int {
	return map[string][]int{}
}

// RotationLimits は回転制限表を返す。
func (m *mayaMapping) RotationLimits() map[string]RotationLimit {
	return map[string]RotationLimit{}
}

// ScaleFactors はスケール係数表を返す。
func (m *mayaMapping) ScaleFactors() map[string]float64 {
	return map[string]float64{}
}

// AxisCorrections は軸補正表を返す。
func (m *mayaMapping) AxisCorrections() map[string]AxisCorrection {
	return map[string]AxisCorrection{}
}

// Capabilities は対応部位フラグを返す。
func (m *mayaMapping) Capabilities() Capabilities {
	return Capabilities{Face: false, Hands: false}
}

// Regions は領域割り当て表を返す。
func (m *mayaMapping) Regions() map[string]Region {
	return map[string]Region{}
}

// TPoseProbe はTポーズ判定用ボーン名を返す。Mayaは判定対象外。
func (m *mayaMapping) TPoseProbe() (string, string, string, bool) {
	return "", "", "", false
}
