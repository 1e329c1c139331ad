// 指示: miu200521358
package mretarget

import (
	"fmt"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/port/mhost"
)

const (
	// driverNamePrefix は本コアが生成するプロキシの予約接頭辞。
	driverNamePrefix = "Driver_"
	// copyRotationNamePrefix は本コアが設置するコンストレイントの予約接頭辞。
	copyRotationNamePrefix = "Mocap2RigCopyRot_"
)

// Driver はボーン1本分の回転プロキシを表す。
// レスト回転はバインド時に一度だけ確定し、現在回転は毎フレーム上書きされる。
type Driver struct {
	BoneName     string
	RestRotation mmath.Euler
	Rotation     mmath.Euler
}

// DriverLayer はドライバ群の生存期間と回転書き込み面を表す。
type DriverLayer struct {
	host    mhost.ISkeletonHost
	drivers map[string]*Driver
}

// NewDriverLayer はドライバ層を生成する。
func NewDriverLayer(host mhost.ISkeletonHost) *DriverLayer {
	return &DriverLayer{host: host, drivers: map[string]*Driver{}}
}

// CreateDrivers は全ボーンへドライバとコピー回転コンストレイントを生成する。
// 前セッションの残骸を予約接頭辞で必ず除去してから生成し、重複を防ぐ。
func (dl *DriverLayer) CreateDrivers(skeleton *model.Skeleton) error {
	if dl.host == nil {
		return fmt.Errorf("骨格ホストが未設定です")
	}
	if skeleton == nil || skeleton.Len() == 0 {
		return fmt.Errorf("ドライバ生成対象の骨格が空です")
	}

	dl.host.RemoveConstraintsByPrefix(copyRotationNamePrefix)
	dl.host.RemoveProxiesByPrefix(driverNamePrefix)
	dl.drivers = map[string]*Driver{}

	for _, bone := range skeleton.Values() {
		proxyName := driverNamePrefix + bone.Name()
		if err := dl.host.CreateProxy(proxyName, bone.Head); err != nil {
			return fmt.Errorf("プロキシ生成に失敗しました: %s: %w", proxyName, err)
		}
		constraintName := copyRotationNamePrefix + bone.Name()
		if err := dl.host.InstallCopyRotation(constraintName, bone.Name(), proxyName); err != nil {
			return fmt.Errorf("コンストレイント設置に失敗しました: %s: %w", constraintName, err)
		}
		dl.drivers[bone.Name()] = &Driver{
			BoneName:     bone.Name(),
			RestRotation: bone.RestRotation,
		}
	}
	return nil
}

// RestRotation は指定ボーンのレスト回転を返す。
func (dl *DriverLayer) RestRotation(boneName string) (mmath.Euler, bool) {
	driver, exists := dl.drivers[boneName]
	if !exists {
		return mmath.Euler{}, false
	}
	return driver.RestRotation, true
}

// Rotation は指定ボーンのドライバ現在回転を返す。
func (dl *DriverLayer) Rotation(boneName string) (mmath.Euler, bool) {
	driver, exists := dl.drivers[boneName]
	if !exists {
		return mmath.Euler{}, false
	}
	return driver.Rotation, true
}

// Contains は指定ボーンのドライバが存在するか判定する。
func (dl *DriverLayer) Contains(boneName string) bool {
	_, exists := dl.drivers[boneName]
	return exists
}

// Len はドライバ数を返す。
func (dl *DriverLayer) Len() int {
	return len(dl.drivers)
}

// UpdateDriver は指定ボーンのドライバ回転を上書きし、プロキシへ反映する。
// コンストレイント評価は呼び出し側(フレーム境界)で行う。
func (dl *DriverLayer) UpdateDriver(boneName string, rotation mmath.Euler) bool {
	driver, exists := dl.drivers[boneName]
	if !exists {
		return false
	}
	driver.Rotation = rotation
	if dl.host != nil {
		if err := dl.host.SetProxyRotation(driverNamePrefix+boneName, rotation); err != nil {
			return false
		}
	}
	return true
}

// Rotations は全ドライバの現在回転を返す。
func (dl *DriverLayer) Rotations() map[string]mmath.Euler {
	rotations := make(map[string]mmath.Euler, len(dl.drivers))
	for name, driver := range dl.drivers {
		rotations[name] = driver.Rotation
	}
	return rotations
}

// Cleanup は生成済みドライバとコンストレイントを全て除去する。冪等。
func (dl *DriverLayer) Cleanup() {
	if dl.host != nil {
		dl.host.RemoveConstraintsByPrefix(copyRotationNamePrefix)
		dl.host.RemoveProxiesByPrefix(driverNamePrefix)
	}
	dl.drivers = map[string]*Driver{}
}
