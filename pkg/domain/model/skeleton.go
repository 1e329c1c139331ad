// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
)

// Bone は骨格内の1本のボーンを表す。
type Bone struct {
	name  string
	index int

	// ParentIndex は親ボーンのindex。ルートは-1。
	ParentIndex int
	// Head はレスト姿勢でのボーン始点位置。
	Head mmath.Vec3
	// Tail はレスト姿勢でのボーン終点位置。
	Tail mmath.Vec3
	// RestRotation はバインド時のレスト回転。
	RestRotation mmath.Euler
}

// NewBone は名前を指定してボーンを生成する。
func NewBone(name string) *Bone {
	return &Bone{name: name, index: -1, ParentIndex: -1}
}

// Name はボーン名を返す。
func (b *Bone) Name() string {
	return b.name
}

// Index は骨格内indexを返す。未登録は-1。
func (b *Bone) Index() int {
	return b.index
}

// Direction はレスト姿勢でのボーン方向(終点-始点)を返す。
func (b *Bone) Direction() mmath.Vec3 {
	return b.Tail.Subed(b.Head)
}

// Skeleton は名前引きできるボーン集合を表す。
type Skeleton struct {
	name      string
	bones     []*Bone
	nameIndex map[string]int
}

// NewSkeleton は空の骨格を生成する。
func NewSkeleton(name string) *Skeleton {
	return &Skeleton{name: name, nameIndex: map[string]int{}}
}

// Name は骨格名を返す。
func (s *Skeleton) Name() string {
	return s.name
}

// Append はボーンを末尾へ追加しindexを割り当てる。
func (s *Skeleton) Append(bone *Bone) error {
	if bone == nil {
		return fmt.Errorf("追加対象ボーンがnilです")
	}
	if bone.name == "" {
		return fmt.Errorf("ボーン名が未設定です")
	}
	if _, exists := s.nameIndex[bone.name]; exists {
		return fmt.Errorf("ボーン名が重複しています: %s", bone.name)
	}
	bone.index = len(s.bones)
	s.bones = append(s.bones, bone)
	s.nameIndex[bone.name] = bone.index
	return nil
}

// Len はボーン数を返す。
func (s *Skeleton) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bones)
}

// Values は全ボーンをindex順で返す。
func (s *Skeleton) Values() []*Bone {
	if s == nil {
		return nil
	}
	return s.bones
}

// Get はindex指定でボーンを返す。
func (s *Skeleton) Get(index int) (*Bone, error) {
	if s == nil || index < 0 || index >= len(s.bones) {
		return nil, fmt.Errorf("ボーンindexが範囲外です: %d", index)
	}
	return s.bones[index], nil
}

// GetByName は名前指定でボーンを返す。
func (s *Skeleton) GetByName(name string) (*Bone, error) {
	if s == nil {
		return nil, fmt.Errorf("骨格が未設定です")
	}
	index, exists := s.nameIndex[name]
	if !exists {
		return nil, fmt.Errorf("ボーンが見つかりません: %s", name)
	}
	return s.bones[index], nil
}

// ContainsBone は名前のボーンが存在するか判定する。
func (s *Skeleton) ContainsBone(name string) bool {
	if s == nil {
		return false
	}
	_, exists := s.nameIndex[name]
	return exists
}

// BoneNames は全ボーン名をindex順で返す。
func (s *Skeleton) BoneNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.bones))
	for _, bone := range s.bones {
		names = append(names, bone.name)
	}
	return names
}
