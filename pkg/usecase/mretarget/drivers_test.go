// 指示: miu200521358
package mretarget

import (
	"testing"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/mscene"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
)

func TestCreateDrivers(t *testing.T) {
	skeleton := newTPoseSkeleton(t)
	host := mscene.NewSceneHost(skeleton)
	drivers := NewDriverLayer(host)

	if err := drivers.CreateDrivers(skeleton); err != nil {
		t.Fatalf("ドライバ生成に失敗: %v", err)
	}

	if drivers.Len() != skeleton.Len() {
		t.Errorf("ドライバ数が不正: got %d, want %d", drivers.Len(), skeleton.Len())
	}
	if host.ProxyCount() != skeleton.Len() {
		t.Errorf("プロキシ数が不正: got %d, want %d", host.ProxyCount(), skeleton.Len())
	}
	if host.ConstraintCount() != skeleton.Len() {
		t.Errorf("コンストレイント数が不正: got %d, want %d", host.ConstraintCount(), skeleton.Len())
	}

	boneName := testBonePrefix + "LeftArm"
	if !drivers.Contains(boneName) {
		t.Fatalf("左上腕ドライバが存在しない")
	}
	rest, exists := drivers.RestRotation(boneName)
	if !exists {
		t.Fatalf("レスト回転が取得できない")
	}
	bone, err := skeleton.GetByName(boneName)
	if err != nil {
		t.Fatalf("ボーン取得に失敗: %v", err)
	}
	if !rest.NearEquals(bone.RestRotation, 1e-10) {
		t.Errorf("レスト回転が不正: got %+v, want %+v", rest, bone.RestRotation)
	}
}

func TestCreateDriversRemovesPrevious(t *testing.T) {
	skeleton := newTPoseSkeleton(t)
	host := mscene.NewSceneHost(skeleton)
	drivers := NewDriverLayer(host)

	if err := drivers.CreateDrivers(skeleton); err != nil {
		t.Fatalf("1回目のドライバ生成に失敗: %v", err)
	}
	if err := drivers.CreateDrivers(skeleton); err != nil {
		t.Fatalf("2回目のドライバ生成に失敗: %v", err)
	}

	if host.ProxyCount() != skeleton.Len() {
		t.Errorf("再生成後のプロキシ数が不正: got %d, want %d", host.ProxyCount(), skeleton.Len())
	}
	if host.ConstraintCount() != skeleton.Len() {
		t.Errorf("再生成後のコンストレイント数が不正: got %d, want %d", host.ConstraintCount(), skeleton.Len())
	}
}

func TestUpdateDriver(t *testing.T) {
	skeleton := newTPoseSkeleton(t)
	host := mscene.NewSceneHost(skeleton)
	drivers := NewDriverLayer(host)

	if err := drivers.CreateDrivers(skeleton); err != nil {
		t.Fatalf("ドライバ生成に失敗: %v", err)
	}

	boneName := testBonePrefix + "Neck"
	rotation := mmath.NewEulerFromDegrees(10, -5, 20)
	if !drivers.UpdateDriver(boneName, rotation) {
		t.Fatalf("ドライバ更新に失敗")
	}

	actual, exists := drivers.Rotation(boneName)
	if !exists || !actual.NearEquals(rotation, 1e-10) {
		t.Errorf("ドライバ回転が不正: got %+v, want %+v", actual, rotation)
	}
	proxyRotation, exists := host.ProxyRotation("Driver_" + boneName)
	if !exists || !proxyRotation.NearEquals(rotation, 1e-10) {
		t.Errorf("プロキシ回転が不正: got %+v, want %+v", proxyRotation, rotation)
	}

	if drivers.UpdateDriver(testBonePrefix+"Tail", rotation) {
		t.Errorf("存在しないボーンの更新が成功している")
	}
}

func TestDriverLayerCleanup(t *testing.T) {
	skeleton := newTPoseSkeleton(t)
	host := mscene.NewSceneHost(skeleton)
	drivers := NewDriverLayer(host)

	if err := drivers.CreateDrivers(skeleton); err != nil {
		t.Fatalf("ドライバ生成に失敗: %v", err)
	}

	drivers.Cleanup()
	drivers.Cleanup()

	if drivers.Len() != 0 {
		t.Errorf("撤去後のドライバ数が不正: got %d", drivers.Len())
	}
	if host.ProxyCount() != 0 {
		t.Errorf("撤去後のプロキシ数が不正: got %d", host.ProxyCount())
	}
	if host.ConstraintCount() != 0 {
		t.Errorf("撤去後のコンストレイント数が不正: got %d", host.ConstraintCount())
	}
}

func TestCreateDriversInvalidInputs(t *testing.T) {
	skeleton := newTPoseSkeleton(t)
	host := mscene.NewSceneHost(skeleton)

	if err := NewDriverLayer(host).CreateDrivers(nil); err == nil {
		t.Errorf("nil骨格でエラーが返らない")
	}
	if err := NewDriverLayer(host).CreateDrivers(model.NewSkeleton("Empty")); err == nil {
		t.Errorf("空骨格でエラーが返らない")
	}
	if err := NewDriverLayer(nil).CreateDrivers(skeleton); err == nil {
		t.Errorf("ホスト未設定でエラーが返らない")
	}
}
