// 指示: miu200521358
// Package mscene はメモリ上の骨格ホスト実装を提供する。
package mscene

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
)

// proxyTransform はプロキシの位置と回転を表す。
type proxyTransform struct {
	position mmath.Vec3
	rotation mmath.Euler
}

// copyRotationConstraint はプロキシからボーンへの一方向コピー回転を表す。
type copyRotationConstraint struct {
	boneName  string
	proxyName string
}

// SceneHost はシーングラフを持たない環境向けのメモリ上骨格ホストを表す。
// コンストレイント評価は設置順に行う。
type SceneHost struct {
	proxies         map[string]*proxyTransform
	constraints     map[string]*copyRotationConstraint
	constraintOrder []string
	poseRotations   map[string]mmath.Euler
}

// NewSceneHost は骨格からメモリ上ホストを生成する。全ボーンのポーズ回転はゼロで始まる。
func NewSceneHost(skeleton *model.Skeleton) *SceneHost {
	host := &SceneHost{
		proxies:       map[string]*proxyTransform{},
		constraints:   map[string]*copyRotationConstraint{},
		poseRotations: map[string]mmath.Euler{},
	}
	if skeleton != nil {
		for _, bone := range skeleton.Values() {
			host.poseRotations[bone.Name()] = mmath.Euler{}
		}
	}
	return host
}

// CreateProxy はプロキシトランスフォームを生成する。
func (h *SceneHost) CreateProxy(name string, position mmath.Vec3) error {
	if _, exists := h.proxies[name]; exists {
		return fmt.Errorf("プロキシが既に存在します: %s", name)
	}
	h.proxies[name] = &proxyTransform{position: position}
	return nil
}

// SetProxyRotation はプロキシの回転を上書きする。
func (h *SceneHost) SetProxyRotation(name string, rotation mmath.Euler) error {
	proxy, exists := h.proxies[name]
	if !exists {
		return fmt.Errorf("プロキシがありません: %s", name)
	}
	proxy.rotation = rotation
	return nil
}

// ProxyRotation はプロキシの現在回転を返す。
func (h *SceneHost) ProxyRotation(name string) (mmath.Euler, bool) {
	proxy, exists := h.proxies[name]
	if !exists {
		return mmath.Euler{}, false
	}
	return proxy.rotation, true
}

// RemoveProxiesByPrefix は名前接頭辞が一致するプロキシを削除する。
func (h *SceneHost) RemoveProxiesByPrefix(prefix string) int {
	removed := 0
	for name := range h.proxies {
		if strings.HasPrefix(name, prefix) {
			delete(h.proxies, name)
			removed++
		}
	}
	return removed
}

// InstallCopyRotation はコピー回転コンストレイントを設置する。
func (h *SceneHost) InstallCopyRotation(constraintName string, boneName string, proxyName string) error {
	if _, exists := h.constraints[constraintName]; exists {
		return fmt.Errorf("コンストレイントが既に存在します: %s", constraintName)
	}
	if _, exists := h.proxies[proxyName]; !exists {
		return fmt.Errorf("参照先プロキシがありません: %s", proxyName)
	}
	if _, exists := h.poseRotations[boneName]; !exists {
		return fmt.Errorf("対象ボーンがありません: %s", boneName)
	}
	h.constraints[constraintName] = &copyRotationConstraint{boneName: boneName, proxyName: proxyName}
	h.constraintOrder = append(h.constraintOrder, constraintName)
	return nil
}

// RemoveConstraintsByPrefix は名前接頭辞が一致するコンストレイントを削除する。
func (h *SceneHost) RemoveConstraintsByPrefix(prefix string) int {
	removed := 0
	for name := range h.constraints {
		if strings.HasPrefix(name, prefix) {
			delete(h.constraints, name)
			removed++
		}
	}
	if removed > 0 {
		order := make([]string, 0, len(h.constraintOrder)-removed)
		for _, name := range h.constraintOrder {
			if _, exists := h.constraints[name]; exists {
				order = append(order, name)
			}
		}
		h.constraintOrder = order
	}
	return removed
}

// PoseRotation はボーンの現在ポーズ回転を返す。
func (h *SceneHost) PoseRotation(boneName string) (mmath.Euler, bool) {
	rotation, exists := h.poseRotations[boneName]
	return rotation, exists
}

// SetPoseRotation はボーンのポーズ回転を直接設定する。
func (h *SceneHost) SetPoseRotation(boneName string, rotation mmath.Euler) error {
	if _, exists := h.poseRotations[boneName]; !exists {
		return fmt.Errorf("対象ボーンがありません: %s", boneName)
	}
	h.poseRotations[boneName] = rotation
	return nil
}

// PoseSnapshot は全ボーンの現在ポーズ回転を返す。
func (h *SceneHost) PoseSnapshot() map[string]mmath.Euler {
	snapshot := make(map[string]mmath.Euler, len(h.poseRotations))
	for name, rotation := range h.poseRotations {
		snapshot[name] = rotation
	}
	return snapshot
}

// EvaluateConstraints は設置済みコンストレイントを設置順に評価する。
func (h *SceneHost) EvaluateConstraints() {
	for _, name := range h.constraintOrder {
		constraint := h.constraints[name]
		proxy, exists := h.proxies[constraint.proxyName]
		if !exists {
			continue
		}
		if _, exists := h.poseRotations[constraint.boneName]; !exists {
			continue
		}
		h.poseRotations[constraint.boneName] = proxy.rotation
	}
}

// ProxyCount は現在のプロキシ数を返す。
func (h *SceneHost) ProxyCount() int {
	return len(h.proxies)
}

// ConstraintCount は現在のコンストレイント数を返す。
func (h *SceneHost) ConstraintCount() int {
	return len(h.constraints)
}
