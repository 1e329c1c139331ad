// 指示: miu200521358
package io_rig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/io_common"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
)

// writeRigFile はテスト用リグ定義を書き出す。
func writeRigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rig.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("テストファイル作成に失敗: %v", err)
	}
	return path
}

func TestRigRepositoryLoad(t *testing.T) {
	// 子が親より先に並んでいても親から登録する
	content := `{
  "armature_name": "TestRig",
  "bones": {
    "mixamorig:Spine": {"head": [0, 1.1, 0], "tail": [0, 1.25, 0], "rest_rotation": [0, 90, 0], "parent": "mixamorig:Hips"},
    "mixamorig:Hips": {"head": [0, 1.0, 0], "tail": [0, 1.1, 0], "rest_rotation": [0, 0, 0]}
  }
}`
	path := writeRigFile(t, content)

	skeleton, err := NewRigRepository().Load(path)
	if err != nil {
		t.Fatalf("読み込みに失敗: %v", err)
	}
	if skeleton.Name() != "TestRig" {
		t.Errorf("骨格名が不正: %q", skeleton.Name())
	}
	if skeleton.Len() != 2 {
		t.Fatalf("ボーン数が不正: %d", skeleton.Len())
	}

	hips, err := skeleton.GetByName("mixamorig:Hips")
	if err != nil {
		t.Fatalf("Hips取得に失敗: %v", err)
	}
	spine, err := skeleton.GetByName("mixamorig:Spine")
	if err != nil {
		t.Fatalf("Spine取得に失敗: %v", err)
	}
	if hips.Index() >= spine.Index() {
		t.Errorf("親が子より後に登録されている")
	}
	if spine.ParentIndex != hips.Index() {
		t.Errorf("親indexが不正: got %d, want %d", spine.ParentIndex, hips.Index())
	}
	if !spine.RestRotation.NearEquals(mmath.NewEulerFromDegrees(0, 90, 0), 1e-10) {
		t.Errorf("レスト回転が不正: %+v", spine.RestRotation)
	}
	if !spine.Head.NearEquals(mmath.Vec3{Vec: r3.Vec{X: 0, Y: 1.1, Z: 0}}, 1e-12) {
		t.Errorf("始点が不正: %+v", spine.Head)
	}
}

func TestRigRepositoryLoadErrors(t *testing.T) {
	repository := NewRigRepository()

	var ioErr *io_common.IoError
	if _, err := repository.Load("rig.yaml"); !errors.As(err, &ioErr) || ioErr.Kind != io_common.IoErrorKindExtInvalid {
		t.Errorf("拡張子エラーが返らない: %v", err)
	}
	if _, err := repository.Load(filepath.Join(t.TempDir(), "missing.json")); !errors.As(err, &ioErr) || ioErr.Kind != io_common.IoErrorKindFileNotFound {
		t.Errorf("未検出エラーが返らない: %v", err)
	}
	if _, err := repository.Load(writeRigFile(t, `{"armature_name": "Empty", "bones": {}}`)); err == nil {
		t.Errorf("空リグでエラーが返らない")
	}

	missingParent := `{"armature_name": "R", "bones": {"Child": {"head": [0,0,0], "tail": [0,1,0], "rest_rotation": [0,0,0], "parent": "Ghost"}}}`
	if _, err := repository.Load(writeRigFile(t, missingParent)); err == nil {
		t.Errorf("未定義親でエラーが返らない")
	}

	cyclic := `{"armature_name": "R", "bones": {
  "A": {"head": [0,0,0], "tail": [0,1,0], "rest_rotation": [0,0,0], "parent": "B"},
  "B": {"head": [0,0,0], "tail": [0,1,0], "rest_rotation": [0,0,0], "parent": "A"}}}`
	if _, err := repository.Load(writeRigFile(t, cyclic)); err == nil {
		t.Errorf("循環参照でエラーが返らない")
	}
}

func TestRigRepositorySaveRoundTrip(t *testing.T) {
	skeleton := model.NewSkeleton("RoundTrip")
	root := model.NewBone("Root")
	root.Head = mmath.Vec3{Vec: r3.Vec{X: 0, Y: 1, Z: 0}}
	root.Tail = mmath.Vec3{Vec: r3.Vec{X: 0, Y: 1.2, Z: 0}}
	if err := skeleton.Append(root); err != nil {
		t.Fatalf("ボーン追加に失敗: %v", err)
	}
	child := model.NewBone("Child")
	child.Head = root.Tail
	child.Tail = mmath.Vec3{Vec: r3.Vec{X: 0.3, Y: 1.2, Z: 0}}
	child.ParentIndex = root.Index()
	child.RestRotation = mmath.NewEulerFromDegrees(10, 0, -45)
	if err := skeleton.Append(child); err != nil {
		t.Fatalf("ボーン追加に失敗: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	repository := NewRigRepository()
	if err := repository.Save(path, skeleton); err != nil {
		t.Fatalf("保存に失敗: %v", err)
	}

	loaded, err := repository.Load(path)
	if err != nil {
		t.Fatalf("再読み込みに失敗: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("再読み込みボーン数が不正: %d", loaded.Len())
	}
	loadedChild, err := loaded.GetByName("Child")
	if err != nil {
		t.Fatalf("Child取得に失敗: %v", err)
	}
	if !loadedChild.RestRotation.NearEquals(child.RestRotation, 1e-10) {
		t.Errorf("レスト回転が往復で崩れる: %+v", loadedChild.RestRotation)
	}
	loadedParent, err := loaded.Get(loadedChild.ParentIndex)
	if err != nil || loadedParent.Name() != "Root" {
		t.Errorf("親子関係が往復で崩れる")
	}
}

func TestRigRepositorySaveEmpty(t *testing.T) {
	if err := NewRigRepository().Save(filepath.Join(t.TempDir(), "out.json"), model.NewSkeleton("Empty")); err == nil {
		t.Errorf("空骨格の保存が成功している")
	}
}
