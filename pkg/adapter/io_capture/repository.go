// 指示: miu200521358
// Package io_capture はランドマークキャプチャ(JSONL)入力の読み込みを提供する。
package io_capture

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/io_common"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
)

// captureScanBufferSize は1行の最大読み込みサイズ。
const captureScanBufferSize = 4 * 1024 * 1024

// capturePoint はJSONL上のランドマーク1点を表す。
type capturePoint struct {
	Index      int     `json:"index"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// captureFrame はJSONL1行分のフレームを表す。
type captureFrame struct {
	Index     int            `json:"index"`
	Pose      []capturePoint `json:"pose"`
	Face      []capturePoint `json:"face"`
	LeftHand  []capturePoint `json:"left_hand"`
	RightHand []capturePoint `json:"right_hand"`
}

// CaptureRepository はJSONLキャプチャ入力の読み込み契約を表す。
type CaptureRepository struct{}

// NewCaptureRepository はCaptureRepositoryを生成する。
func NewCaptureRepository() *CaptureRepository {
	return &CaptureRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *CaptureRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jsonl")
}

// InferName はパスから表示名を推定する。
func (r *CaptureRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はキャプチャフレーム列を読み込む。
// 各座標はキャプチャ空間からリグ空間(x, -z, y)へ変換して保持する。
func (r *CaptureRepository) Load(path string) ([]*model.LandmarkFrame, error) {
	if !r.CanLoad(path) {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, io_common.NewIoFileNotFound(path, err)
		}
		return nil, io_common.NewIoParseFailed("キャプチャファイルの読み取りに失敗しました", err)
	}
	defer file.Close()

	var frames []*model.LandmarkFrame
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), captureScanBufferSize)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		raw := captureFrame{Index: -1}
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, io_common.NewIoParseFailed("キャプチャフレームの解析に失敗しました(line=%d)", err, lineNumber)
		}
		frames = append(frames, convertFrame(raw, len(frames)))
	}
	if err := scanner.Err(); err != nil {
		return nil, io_common.NewIoParseFailed("キャプチャファイルの走査に失敗しました", err)
	}
	return frames, nil
}

// convertFrame はJSONLフレームをドメインフレームへ変換する。
func convertFrame(raw captureFrame, fallbackIndex int) *model.LandmarkFrame {
	frame := &model.LandmarkFrame{Index: raw.Index}
	if raw.Index < 0 {
		frame.Index = fallbackIndex
	}
	frame.Pose = convertPoints(raw.Pose)
	frame.Face = convertPoints(raw.Face)
	frame.LeftHand = convertPoints(raw.LeftHand)
	frame.RightHand = convertPoints(raw.RightHand)
	return frame
}

// convertPoints はランドマーク点列を集合へ変換する。空はnilのまま返す。
func convertPoints(points []capturePoint) *model.LandmarkSet {
	if len(points) == 0 {
		return nil
	}
	set := model.NewLandmarkSet()
	for _, point := range points {
		set.Set(point.Index, model.Landmark{
			Position:   captureToRigSpace(point),
			Visibility: point.Visibility,
		})
	}
	return set
}

// captureToRigSpace はキャプチャ空間座標をリグ空間へ写す。
func captureToRigSpace(point capturePoint) mmath.Vec3 {
	return mmath.Vec3{Vec: r3.Vec{X: point.X, Y: -point.Z, Z: point.Y}}
}
