// 指示: miu200521358
// Package model はモーション転送の対象となる骨格・ランドマークのドメイン型を提供する。
package model

import "github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"

const (
	// PoseLandmarkCount は全身ポーズランドマークの点数。
	PoseLandmarkCount = 33
	// HandLandmarkCount は片手ランドマークの点数。
	HandLandmarkCount = 21
)

// Landmark は位置と可視度を持つ追跡点を表す。
type Landmark struct {
	Position   mmath.Vec3
	Visibility float64
}

// LandmarkSet は番号付きランドマークの疎な集合を表す。
type LandmarkSet struct {
	points map[int]Landmark
}

// NewLandmarkSet は空のランドマーク集合を生成する。
func NewLandmarkSet() *LandmarkSet {
	return &LandmarkSet{points: map[int]Landmark{}}
}

// Set は指定番号のランドマークを登録する。負の番号は無視する。
func (s *LandmarkSet) Set(index int, landmark Landmark) {
	if s == nil || index < 0 {
		return
	}
	s.points[index] = landmark
}

// Get は指定番号のランドマークを返す。
func (s *LandmarkSet) Get(index int) (Landmark, bool) {
	if s == nil {
		return Landmark{}, false
	}
	landmark, exists := s.points[index]
	return landmark, exists
}

// Len は登録済みランドマーク数を返す。
func (s *LandmarkSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// LandmarkFrame は1フレーム分のランドマーク集合一式を表す。
// 未検出の部位はnilのままとする。
type LandmarkFrame struct {
	Index     int
	Pose      *LandmarkSet
	Face      *LandmarkSet
	LeftHand  *LandmarkSet
	RightHand *LandmarkSet
}
