// 指示: miu200521358
package mretarget

import (
	"fmt"
	"math"

	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/port/mhost"
)

// SessionState はリグセッションの状態を表す。
type SessionState int

const (
	// SessionStateUnbound は骨格未バインド。
	SessionStateUnbound SessionState = iota
	// SessionStateBound は骨格バインド済み。
	SessionStateBound
	// SessionStateInitialized はドライバ設置済み。
	SessionStateInitialized
	// SessionStateRunning は転送実行中。
	SessionStateRunning
	// SessionStateStopped は停止済み。再バインドから再開する。
	SessionStateStopped
)

// tPoseAlignmentLimit はTポーズ判定の軸ずれ許容値(方向ベクトル成分)。約15度。
const tPoseAlignmentLimit = 0.26

// Settings はセッションの転送設定を表す。
type Settings struct {
	SmoothingEnabled    bool
	SmoothingFactor     float64
	VisibilityThreshold float64
	RequireTPose        bool
	LockedRegions       []rigmap.Region
}

// DefaultSettings は既定の転送設定を返す。
func DefaultSettings() Settings {
	return Settings{
		SmoothingEnabled:    false,
		SmoothingFactor:     0.5,
		VisibilityThreshold: defaultVisibilityThreshold,
		RequireTPose:        false,
	}
}

// RigSession はバインドから停止までのリターゲット一連のライフサイクルを表す。
// 単一ゴルーチンでの利用を前提とし、状態遷移は順序違反をエラーにする。
type RigSession struct {
	host     mhost.ISkeletonHost
	mapping  rigmap.Mapping
	settings Settings

	skeleton     *model.Skeleton
	binder       *SkeletonBinder
	drivers      *DriverLayer
	transfer     *TransferManager
	poseSnapshot map[string]mmath.Euler
	warnings     []model.RetargetWarning
	state        SessionState
}

// NewRigSession はリグセッションを生成する。
func NewRigSession(host mhost.ISkeletonHost, mapping rigmap.Mapping, settings Settings) *RigSession {
	return &RigSession{
		host:     host,
		mapping:  mapping,
		settings: settings,
		state:    SessionStateUnbound,
	}
}

// State は現在の状態を返す。
func (s *RigSession) State() SessionState {
	return s.state
}

// Warnings はバインド以降に蓄積した警告を返す。
func (s *RigSession) Warnings() []model.RetargetWarning {
	return s.warnings
}

// Bind は骨格をセッションへ結び付ける。未バインドか停止済みからのみ遷移できる。
func (s *RigSession) Bind(skeleton *model.Skeleton) error {
	if s.state != SessionStateUnbound && s.state != SessionStateStopped {
		return fmt.Errorf("バインドできない状態です: %d", s.state)
	}
	binder, err := BindSkeleton(skeleton, s.mapping)
	if err != nil {
		return fmt.Errorf("骨格バインドに失敗しました: %w", err)
	}
	s.skeleton = skeleton
	s.binder = binder
	s.warnings = append([]model.RetargetWarning{}, binder.Warnings()...)
	s.warnings = append(s.warnings, binder.VerifyHierarchy()...)
	s.state = SessionStateBound
	return nil
}

// Initialize はポーズ退避とドライバ設置を行う。バインド直後のみ実行できる。
// 停止を経ない再初期化は多重設置になるため拒否する。
func (s *RigSession) Initialize() error {
	if s.state != SessionStateBound {
		return fmt.Errorf("初期化できない状態です: %d", s.state)
	}

	if !s.verifyTPose() {
		s.warnings = append(s.warnings, model.RetargetWarning{
			ID:      model.RetargetWarningNotTPose,
			Message: "骨格のレスト姿勢がTポーズから外れています",
		})
		if s.settings.RequireTPose {
			return fmt.Errorf("Tポーズ以外での初期化は許可されていません")
		}
	}

	snapshot := map[string]mmath.Euler{}
	if err := deepcopy.Copy(&snapshot, s.host.PoseSnapshot()); err != nil {
		return fmt.Errorf("ポーズ退避に失敗しました: %w", err)
	}
	s.poseSnapshot = snapshot

	s.drivers = NewDriverLayer(s.host)
	if err := s.drivers.CreateDrivers(s.skeleton); err != nil {
		return fmt.Errorf("ドライバ設置に失敗しました: %w", err)
	}

	s.transfer = NewTransferManager(s.drivers, s.binder, s.mapping)
	s.transfer.SetVisibilityThreshold(s.settings.VisibilityThreshold)
	s.transfer.SetSmoothing(s.settings.SmoothingEnabled, s.settings.SmoothingFactor)
	for _, region := range s.settings.LockedRegions {
		s.transfer.SetRegionLock(region, true)
	}

	s.state = SessionStateInitialized
	return nil
}

// verifyTPose は体幹が縦、左右上腕が水平のレスト姿勢かを判定する。
// プローブ未定義・ボーン未解決のリグ規約では判定せず通す。
func (s *RigSession) verifyTPose() bool {
	spineGeneric, leftGeneric, rightGeneric, ok := s.mapping.TPoseProbe()
	if !ok {
		return true
	}
	spine, ok := s.probeDirection(spineGeneric)
	if !ok {
		return true
	}
	left, ok := s.probeDirection(leftGeneric)
	if !ok {
		return true
	}
	right, ok := s.probeDirection(rightGeneric)
	if !ok {
		return true
	}
	if spine.Dot(mmath.UNIT_Y_VEC3) < 1.0-tPoseAlignmentLimit {
		return false
	}
	return math.Abs(left.Y) <= tPoseAlignmentLimit && math.Abs(right.Y) <= tPoseAlignmentLimit
}

// probeDirection は汎用ボーン名のレスト方向ベクトルを返す。
func (s *RigSession) probeDirection(generic string) (mmath.Vec3, bool) {
	concrete, exists := s.binder.Resolve(generic)
	if !exists {
		return mmath.Vec3{}, false
	}
	bone, err := s.skeleton.GetByName(concrete)
	if err != nil {
		return mmath.Vec3{}, false
	}
	return bone.Direction().Normalized(), true
}

// Start は転送を開始する。初期化済みからのみ遷移できる。
func (s *RigSession) Start() error {
	if s.state != SessionStateInitialized {
		return fmt.Errorf("開始できない状態です: %d", s.state)
	}
	s.state = SessionStateRunning
	return nil
}

// Update はランドマーク1フレーム分を転送し、コンストレイントを評価する。
// 対応部位フラグの無い部位はランドマークが来ても転送しない。
func (s *RigSession) Update(frame *model.LandmarkFrame) error {
	if s.state != SessionStateRunning {
		return fmt.Errorf("転送実行中ではありません: %d", s.state)
	}
	if frame == nil {
		return nil
	}

	caps := s.mapping.Capabilities()
	s.transfer.ApplyPoseLandmarks(frame.Pose)
	if caps.Hands {
		s.transfer.ApplyHandLandmarks(frame.LeftHand, rigmap.HandSideLeft)
		s.transfer.ApplyHandLandmarks(frame.RightHand, rigmap.HandSideRight)
	}
	if caps.Face {
		s.transfer.ApplyFaceLandmarks(frame.Face)
	}
	s.host.EvaluateConstraints()
	return nil
}

// Stop はドライバを撤去して転送を終了する。restorePose指定時は退避姿勢へ戻す。
func (s *RigSession) Stop(restorePose bool) error {
	if s.state != SessionStateInitialized && s.state != SessionStateRunning {
		return fmt.Errorf("停止できない状態です: %d", s.state)
	}
	s.drivers.Cleanup()
	if restorePose {
		for boneName, rotation := range s.poseSnapshot {
			if err := s.host.SetPoseRotation(boneName, rotation); err != nil {
				return fmt.Errorf("姿勢復元に失敗しました: %s: %w", boneName, err)
			}
		}
	}
	s.transfer = nil
	s.state = SessionStateStopped
	return nil
}

// DriverRotations は全ドライバの現在回転を返す。初期化前はnil。
func (s *RigSession) DriverRotations() map[string]mmath.Euler {
	if s.drivers == nil {
		return nil
	}
	return s.drivers.Rotations()
}
