// 指示: miu200521358
package rigmap

// mixamoMapping はMixamo規約のマッピングを表す。
type mixamoMapping struct{}

// mixamoPoseMapping はMediaPipe Poseランドマーク番号との対応を保持する。
// 11=左肩 12=右肩 13=左ひじ 14=右ひじ 15=左手首 16=右手首
// 23=左腰 24=右腰 25=左ひざ 26=右ひざ 27=左足首 28=右足首 31=左かかと 32=右かかと
var mixamoPoseMapping = map[string][]int{
	"Hips":   {23, 24},
	"Spine":  {23, 11},
	"Spine1": {11, 12},
	"Spine2": {12, 0},
	"Neck":   {0, 2},
	"Head":   {2, 8},

	"RightShoulder": {11, 12},
	"RightArm":      {12, 14},
	"RightForeArm":  {14, 16},
	"LeftShoulder":  {11, 12},
	"LeftArm":       {11, 13},
	"LeftForeArm":   {13, 15},

	"RightUpLeg": {24, 26},
	"RightLeg":   {26, 28},
	"RightFoot":  {28, 32},
	"LeftUpLeg":  {23, 25},
	"LeftLeg":    {25, 27},
	"LeftFoot":   {27, 31},
}

// mixamoRightHandMapping はMediaPipe Handsランドマーク番号との対応を保持する。
// 手首=0 親指=1-4 人差指=5-8 中指=9-12 薬指=13-16 小指=17-20
var mixamoRightHandMapping = map[string][]int{
	"RightHand":        {0, 9},
	"RightHandThumb1":  {1, 2},
	"RightHandThumb2":  {2, 3},
	"RightHandThumb3":  {3, 4},
	"RightHandIndex1":  {5, 6},
	"RightHandIndex2":  {6, 7},
	"RightHandIndex3":  {7, 8},
	"RightHandMiddle1": {9, 10},
	"RightHandMiddle2": {10, 11},
	"RightHandMiddle3": {11, 12},
	"RightHandRing1":   {13, 14},
	"RightHandRing2":   {14, 15},
	"RightHandRing3":   {15, 16},
	"RightHandPinky1":  {17, 18},
	"RightHandPinky2":  {18, 19},
	"RightHandPinky3":  {19, 20},
}

var mixamoLeftHandMapping = map[string][]int{
	"LeftHand":        {0, 9},
	"LeftHandThumb1":  {1, 2},
	"LeftHandThumb2":  {2, 3},
	"LeftHandThumb3":  {3, 4},
	"LeftHandIndex1":  {5, 6},
	"LeftHandIndex2":  {6, 7},
	"LeftHandIndex3":  {7, 8},
	"LeftHandMiddle1": {9, 10},
	"LeftHandMiddle2": {10, 11},
	"LeftHandMiddle3": {11, 12},
	"LeftHandRing1":   {13, 14},
	"LeftHandRing2":   {14, 15},
	"LeftHandRing3":   {15, 16},
	"LeftHandPinky1":  {17, 18},
	"LeftHandPinky2":  {18, 19},
	"LeftHandPinky3":  {19, 20},
}

var mixamoFaceMapping = map[string][]int{
	"Head": {0, 1},
	"Neck": {1, 2},
}

var mixamoRotationLimits = map[string]RotationLimit{
	"Hips":          limitAll(-45, 45),
	"Spine":         limitAll(-30, 30),
	"Spine1":        limitAll(-30, 30),
	"Spine2":        limitAll(-30, 30),
	"Neck":          limitAll(-45, 45),
	"Head":          limitAll(-45, 45),
	"RightShoulder": limitAll(-90, 90),
	"RightArm":      limitAll(-90, 90),
	"RightForeArm":  limitAll(-90, 90),
	"LeftShoulder":  limitAll(-90, 90),
	"LeftArm":       limitAll(-90, 90),
	"LeftForeArm":   limitAll(-90, 90),
}

var mixamoScaleFactors = map[string]float64{
	"Hips":          1.0,
	"Spine":         1.0,
	"Spine1":        1.0,
	"Spine2":        1.0,
	"Neck":          1.0,
	"Head":          1.0,
	"RightShoulder": 1.0,
	"RightArm":      1.0,
	"RightForeArm":  1.0,
	"LeftShoulder":  1.0,
	"LeftArm":       1.0,
	"LeftForeArm":   1.0,

	"RightHandThumb1":  2.0,
	"RightHandThumb2":  2.0,
	"RightHandThumb3":  2.0,
	"RightHandIndex1":  2.0,
	"RightHandIndex2":  2.0,
	"RightHandIndex3":  2.0,
	"RightHandMiddle1": 2.0,
	"RightHandMiddle2": 2.0,
	"RightHandMiddle3": 2.0,
	"RightHandRing1":   2.0,
	"RightHandRing2":   2.0,
	"RightHandRing3":   2.0,
	"RightHandPinky1":  2.0,
	"RightHandPinky2":  2.0,
	"RightHandPinky3":  2.0,

	"LeftHandThumb1":  2.0,
	"LeftHandThumb2":  2.0,
	"LeftHandThumb3":  2.0,
	"LeftHandIndex1":  2.0,
	"LeftHandIndex2":  2.0,
	"LeftHandIndex3":  2.0,
	"LeftHandMiddle1": 2.0,
	"LeftHandMiddle2": 2.0,
	"LeftHandMiddle3": 2.0,
	"LeftHandRing1":   2.0,
	"LeftHandRing2":   2.0,
	"LeftHandRing3":   2.0,
	"LeftHandPinky1":  2.0,
	"LeftHandPinky2":  2.0,
	"LeftHandPinky3":  2.0,
}

// mixamoAxisCorrections は指の曲げ方向をMixamoローカル軸規約へ合わせる補正を保持する。
// 親指はX・Y反転、他の指はX反転。
var mixamoAxisCorrections = buildMixamoAxisCorrections()

// buildMixamoAxisCorrections は左右全指の軸補正表を構築する。
func buildMixamoAxisCorrections() map[string]AxisCorrection {
	thumbCorrection := AxisCorrection{
		X: AxisTerm{Source: AxisX, Negate: true},
		Y: AxisTerm{Source: AxisY, Negate: true},
		Z: AxisTerm{Source: AxisZ},
	}
	fingerCorrection := AxisCorrection{
		X: AxisTerm{Source: AxisX, Negate: true},
		Y: AxisTerm{Source: AxisY},
		Z: AxisTerm{Source: AxisZ},
	}

	corrections := map[string]AxisCorrection{}
	for _, side := range []string{"Right", "Left"} {
		for joint := 1; joint <= 3; joint++ {
			corrections[boneJointName(side, "HandThumb", joint)] = thumbCorrection
			for _, finger := range []string{"HandIndex", "HandMiddle", "HandRing", "HandPinky"} {
				corrections[boneJointName(side, finger, joint)] = fingerCorrection
			}
		}
	}
	return corrections
}

// boneJointName は側・指・関節番号からボーン名を組み立てる。
func boneJointName(side string, finger string, joint int) string {
	return side + finger + string(rune('0'+joint))
}

var mixamoRegions = map[string]Region{
	"Hips":       RegionLowerBody,
	"RightUpLeg": RegionLowerBody,
	"RightLeg":   RegionLowerBody,
	"RightFoot":  RegionLowerBody,
	"LeftUpLeg":  RegionLowerBody,
	"LeftLeg":    RegionLowerBody,
	"LeftFoot":   RegionLowerBody,

	"Spine":  RegionUpperBody,
	"Spine1": RegionUpperBody,
	"Spine2": RegionUpperBody,

	"Neck": RegionHead,
	"Head": RegionHead,

	"RightShoulder": RegionRightArm,
	"RightArm":      RegionRightArm,
	"RightForeArm":  RegionRightArm,
	"RightHand":     RegionRightArm,

	"LeftShoulder": RegionLeftArm,
	"LeftArm":      RegionLeftArm,
	"LeftForeArm":  RegionLeftArm,
	"LeftHand":     RegionLeftArm,
}

var mixamoHierarchy = Hierarchy{
	"Hips": Hierarchy{
		"Spine": Hierarchy{
			"Spine1": Hierarchy{
				"Spine2": Hierarchy{
					"Neck": Hierarchy{
						"Head": Hierarchy{
							"HeadTop_End": Hierarchy{},
						},
					},
					"RightShoulder": Hierarchy{
						"RightArm": Hierarchy{
							"RightForeArm": Hierarchy{
								"RightHand": Hierarchy{
									"RightHandThumb1":  Hierarchy{"RightHandThumb2": Hierarchy{"RightHandThumb3": Hierarchy{}}},
									"RightHandIndex1":  Hierarchy{"RightHandIndex2": Hierarchy{"RightHandIndex3": Hierarchy{}}},
									"RightHandMiddle1": Hierarchy{"RightHandMiddle2": Hierarchy{"RightHandMiddle3": Hierarchy{}}},
									"RightHandRing1":   Hierarchy{"RightHandRing2": Hierarchy{"RightHandRing3": Hierarchy{}}},
									"RightHandPinky1":  Hierarchy{"RightHandPinky2": Hierarchy{"RightHandPinky3": Hierarchy{}}},
								},
							},
						},
					},
					"LeftShoulder": Hierarchy{
						"LeftArm": Hierarchy{
							"LeftForeArm": Hierarchy{
								"LeftHand": Hierarchy{
									"LeftHandThumb1":  Hierarchy{"LeftHandThumb2": Hierarchy{"LeftHandThumb3": Hierarchy{}}},
									"LeftHandIndex1":  Hierarchy{"LeftHandIndex2": Hierarchy{"LeftHandIndex3": Hierarchy{}}},
									"LeftHandMiddle1": Hierarchy{"LeftHandMiddle2": Hierarchy{"LeftHandMiddle3": Hierarchy{}}},
									"LeftHandRing1":   Hierarchy{"LeftHandRing2": Hierarchy{"LeftHandRing3": Hierarchy{}}},
									"LeftHandPinky1":  Hierarchy{"LeftHandPinky2": Hierarchy{"LeftHandPinky3": Hierarchy{}}},
								},
							},
						},
					},
				},
			},
		},
		"RightUpLeg": Hierarchy{
			"RightLeg": Hierarchy{
				"RightFoot": Hierarchy{
					"RightToeBase": Hierarchy{"RightToe_End": Hierarchy{}},
				},
			},
		},
		"LeftUpLeg": Hierarchy{
			"LeftLeg": Hierarchy{
				"LeftFoot": Hierarchy{
					"LeftToeBase": Hierarchy{"LeftToe_End": Hierarchy{}},
				},
			},
		},
	},
}

// RigType は規約種別を返す。
func (m *mixamoMapping) RigType() RigType {
	return RigTypeMixamo
}

// BoneHierarchy は期待ボーン階層を返す。
func (m *mixamoMapping) BoneHierarchy() Hierarchy {
	return mixamoHierarchy
}

// PoseMapping はポーズ対応表を返す。
func (m *mixamoMapping) PoseMapping() map[string][]int {
	return mixamoPoseMapping
}

// HandMapping は指定した側の手対応表を返す。
func (m *mixamoMapping) HandMapping(side HandSide) map[string][]int {
	if side == HandSideRight {
		return mixamoRightHandMapping
	}
	return mixamoLeftHandMapping
}

// FaceMapping は顔対応表を返す。
func (m *mixamoMapping) FaceMapping() map[string][]int {
	return mixamoFaceMapping
}

// RotationLimits は回転制限表を返す。
func (m *mixamoMapping) RotationLimits() map[string]RotationLimit {
	return mixamoRotationLimits
}

// ScaleFactors はスケール係数表を返す。
func (m *mixamoMapping) ScaleFactors() map[string]float64 {
	return mixamoScaleFactors
}

// AxisCorrections は軸補正表を返す。
func (m *mixamoMapping) AxisCorrections() map[string]AxisCorrection {
	return mixamoAxisCorrections
}

// Capabilities は対応部位フラグを返す。
func (m *mixamoMapping) Capabilities() Capabilities {
	return Capabilities{Face: false, Hands: true}
}

// Regions は領域割り当て表を返す。
func (m *mixamoMapping) Regions() map[string]Region {
	return mixamoRegions
}

// TPoseProbe はTポーズ判定用ボーン名を返す。
func (m *mixamoMapping) TPoseProbe() (string, string, string, bool) {
	return "Spine", "LeftArm", "RightArm", true
}
