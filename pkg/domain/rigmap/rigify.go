// 指示: miu200521358
package rigmap

import "strings"

// rigifyMapping はBlender Rigify規約のマッピングを表す。
type rigifyMapping struct{}

var rigifyPoseMapping = map[string][]int{
	"spine":     {11, 23},
	"spine.001": {23, 24},
	"spine.002": {24, 12},

	"neck": {11, 0},
	"head": {0, 8},

	"shoulder.L":  {11, 13},
	"upper_arm.L": {13, 15},
	"shoulder.R":  {12, 14},
	"upper_arm.R": {14, 16},

	"thigh.L": {23, 25},
	"shin.L":  {25, 27},
	"foot.L":  {27, 31},
	"thigh.R": {24, 26},
	"shin.R":  {26, 28},
	"foot.R":  {28, 32},
}

// rigifyLeftHandMapping は左手(.L)の対応表。右手は接尾辞を.Rへ読み替えて生成する。
var rigifyLeftHandMapping = map[string][]int{
	"thumb.01.L": {0, 1},
	"thumb.02.L": {1, 2},
	"thumb.03.L": {2, 3},

	"f_index.01.L": {0, 5},
	"f_index.02.L": {5, 6},
	"f_index.03.L": {6, 7},

	"f_middle.01.L": {0, 9},
	"f_middle.02.L": {9, 10},
	"f_middle.03.L": {10, 11},

	"f_ring.01.L": {0, 13},
	"f_ring.02.L": {13, 14},
	"f_ring.03.L": {14, 15},

	"f_pinky.01.L": {0, 17},
	"f_pinky.02.L": {17, 18},
	"f_pinky.03.L": {18, 19},
}

var rigifyRightHandMapping = buildRigifyRightHandMapping()

// buildRigifyRightHandMapping は左手対応表から右手対応表を生成する。
func buildRigifyRightHandMapping() map[string][]int {
	mapping := make(map[string][]int, len(rigifyLeftHandMapping))
	for name, indices := range rigifyLeftHandMapping {
		mapping[strings.TrimSuffix(name, ".L")+".R"] = indices
	}
	return mapping
}

var rigifyFaceMapping = map[string][]int{
	"jaw":   {152, 175},
	"eye.L": {33, 133},
	"eye.R": {362, 263},
}

var rigifyRotationLimits = map[string]RotationLimit{
	"spine":     limitAll(-45, 45),
	"spine.001": limitAll(-30, 30),
	"spine.002": limitAll(-30, 30),
	"spine.003": limitAll(-30, 30),
	"spine.004": limitAll(-45, 45),
	"spine.005": limitAll(-45, 45),

	"shoulder.R":  limitAll(-90, 90),
	"upper_arm.R": limitAll(-90, 90),
	"forearm.R":   limitAll(-90, 90),
	"shoulder.L":  limitAll(-90, 90),
	"upper_arm.L": limitAll(-90, 90),
	"forearm.L":   limitAll(-90, 90),
}

var rigifyScaleFactors = map[string]float64{
	"spine":     1.0,
	"spine.001": 1.0,
	"spine.002": 1.0,
	"neck":      1.0,
	"head":      1.0,

	"shoulder.R":  1.0,
	"upper_arm.R": 1.0,
	"forearm.R":   1.0,
	"shoulder.L":  1.0,
	"upper_arm.L": 1.0,
	"forearm.L":   1.0,
}

var rigifyRegions = map[string]Region{
	"spine":     RegionUpperBody,
	"spine.001": RegionUpperBody,
	"spine.002": RegionUpperBody,

	"neck": RegionHead,
	"head": RegionHead,
	"jaw":  RegionHead,

	"shoulder.L":  RegionLeftArm,
	"upper_arm.L": RegionLeftArm,
	"forearm.L":   RegionLeftArm,
	"hand.L":      RegionLeftArm,

	"shoulder.R":  RegionRightArm,
	"upper_arm.R": RegionRightArm,
	"forearm.R":   RegionRightArm,
	"hand.R":      RegionRightArm,

	"thigh.L": RegionLowerBody,
	"shin.L":  RegionLowerBody,
	"foot.L":  RegionLowerBody,
	"thigh.R": RegionLowerBody,
	"shin.R":  RegionLowerBody,
	"foot.R":  RegionLowerBody,
}

var rigifyHierarchy = Hierarchy{
	"root": Hierarchy{
		"spine": Hierarchy{
			"spine.001": Hierarchy{
				"spine.002": Hierarchy{
					"neck": Hierarchy{
						"head": Hierarchy{},
					},
				},
			},
		},
		"thigh.L": Hierarchy{
			"shin.L": Hierarchy{
				"foot.L": Hierarchy{
					"toe.L": Hierarchy{},
				},
			},
		},
		"thigh.R": Hierarchy{
			"shin.R": Hierarchy{
				"foot.R": Hierarchy{
					"toe.R": Hierarchy{},
				},
			},
		},
		"shoulder.L": Hierarchy{
			"upper_arm.L": Hierarchy{
				"forearm.L": Hierarchy{
					"hand.L": Hierarchy{
						"thumb.01.L":    Hierarchy{"thumb.02.L": Hierarchy{"thumb.03.L": Hierarchy{}}},
						"f_index.01.L":  Hierarchy{"f_index.02.L": Hierarchy{"f_index.03.L": Hierarchy{}}},
						"f_middle.01.L": Hierarchy{"f_middle.02.L": Hierarchy{"f_middle.03.L": Hierarchy{}}},
						"f_ring.01.L":   Hierarchy{"f_ring.02.L": Hierarchy{"f_ring.03.L": Hierarchy{}}},
						"f_pinky.01.L":  Hierarchy{"f_pinky.02.L": Hierarchy{"f_pinky.03.L": Hierarchy{}}},
					},
				},
			},
		},
		"shoulder.R": Hierarchy{
			"upper_arm.R": Hierarchy{
				"forearm.R": Hierarchy{
					"hand.R": Hierarchy{
						"thumb.01.R":    Hierarchy{"thumb.02.R": Hierarchy{"thumb.03.R": Hierarchy{}}},
						"f_index.01.R":  Hierarchy{"f_index.02.R": Hierarchy{"f_index.03.R": Hierarchy{}}},
						"f_middle.01.R": Hierarchy{"f_middle.02.R": Hierarchy{"f_middle.03.R": Hierarchy{}}},
						"f_ring.01.R":   Hierarchy{"f_ring.02.R": Hierarchy{"f_ring.03.R": Hierarchy{}}},
						"f_pinky.01.R":  Hierarchy{"f_pinky.02.R": Hierarchy{"f_pinky.03.R": Hierarchy{}}},
					},
				},
			},
		},
	},
}

// RigType は規約種別を返す。
func (m *rigifyMapping) RigType() RigType {
	return RigTypeRigify
}

// BoneHierarchy は期待ボーン階層を返す。
func (m *rigifyMapping) BoneHierarchy() Hierarchy {
	return rigifyHierarchy
}

// PoseMapping はポーズ対応表を返す。
func (m *rigifyMapping) PoseMapping() map[string][]int {
	return rigifyPoseMapping
}

// HandMapping は指定した側の手対応表を返す。
func (m *rigifyMapping) HandMapping(side HandSide) map[string][]int {
	if side == HandSideRight {
		return rigifyRightHandMapping
	}
	return rigifyLeftHandMapping
}

// FaceMapping は顔対応表を返す。
func (m *rigifyMapping) FaceMapping() map[string][]int {
	return rigifyFaceMapping
}

// RotationLimits は回転制限表を返す。
func (m *rigifyMapping) RotationLimits() map[string]RotationLimit {
	return rigifyRotationLimits
}

// ScaleFactors はスケール係数表を返す。
func (m *rigifyMapping) ScaleFactors() map[string]float64 {
	return rigifyScaleFactors
}

// AxisCorrections は軸補正表を返す。Rigifyは恒等補正のみ。
func (m *rigifyMapping) AxisCorrections() map[string]AxisCorrection {
	return map[string]AxisCorrection{}
}

// Capabilities は対応部位フラグを返す。
func (m *rigifyMapping) Capabilities() Capabilities {
	return Capabilities{Face: true, Hands: true}
}

// Regions は領域割り当て表を返す。
func (m *rigifyMapping) Regions() map[string]Region {
	return rigifyRegions
}

// TPoseProbe はTポーズ判定用ボーン名を返す。
func (m *rigifyMapping) TPoseProbe() (string, string, string, bool) {
	return "spine", "upper_arm.L", "upper_arm.R", true
}
