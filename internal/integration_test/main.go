// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/io_rig"
	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/mscene"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/model"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/mretarget"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/port/moutput"
)

const (
	batchOutputDirMode = 0o755
	// batchFrameCount は合成キャプチャのフレーム数。
	batchFrameCount = 120
)

var targetRigTypes = []rigmap.RigType{
	rigmap.RigTypeMixamo,
	rigmap.RigTypeRigify,
	// rigmap.RigTypeMaya, // 対応表未整備
}

// batchConfig は一括リターゲット検証の実行設定を表す。
type batchConfig struct {
	OutputRoot string
	DryRun     bool
	FailFast   bool
}

// retargetEntry は1リグ規約分の検証入力情報を表す。
type retargetEntry struct {
	Index   int
	RigType rigmap.RigType
	CaseDir string
	RigPath string
}

// retargetResult は1リグ規約分の検証結果を表す。
type retargetResult struct {
	Entry        retargetEntry
	Status       string
	Duration     time.Duration
	Err          error
	FrameCount   int
	WarningCount int
}

// main は合成キャプチャによる全リグ規約の一括リターゲット検証を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括検証を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildRetargetEntries(config.OutputRoot, targetRigTypes)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "検証対象リグ規約がありません")
		return 2
	}

	results := executeBatchRetarget(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", defaultOutputRoot, "検証結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "実転送せず、対象解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	currentDir := filepath.Dir(currentFilePath)
	return filepath.Join(currentDir, "output"), nil
}

// buildRetargetEntries はリグ規約一覧から検証対象エントリを生成する。
func buildRetargetEntries(outputRoot string, rigTypes []rigmap.RigType) []retargetEntry {
	entries := make([]retargetEntry, 0, len(rigTypes))
	for i, rigType := range rigTypes {
		caseDirName := fmt.Sprintf("%03d_%s", i+1, strings.ToLower(string(rigType)))
		caseDir := filepath.Join(outputRoot, caseDirName)
		entries = append(entries, retargetEntry{
			Index:   i + 1,
			RigType: rigType,
			CaseDir: caseDir,
			RigPath: filepath.Join(caseDir, "rig.json"),
		})
	}
	return entries
}

// executeBatchRetarget は全リグ規約の検証処理を順次実行する。
func executeBatchRetarget(config batchConfig, entries []retargetEntry) []retargetResult {
	results := make([]retargetResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 検証開始: rig=%s\n", entry.Index, total, entry.RigType)
		result := retargetRigEntry(config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 検証成功: rig=%s frames=%d warnings=%d elapsed=%s\n",
				entry.Index, total, entry.RigType, result.FrameCount, result.WarningCount, result.Duration.Round(time.Millisecond))
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: rig=%s output=%s\n", entry.Index, total, entry.RigType, entry.CaseDir)
		default:
			fmt.Printf("[%d/%d] 検証失敗: rig=%s reason=%v\n", entry.Index, total, entry.RigType, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// retargetRigEntry は1リグ規約分の検証を実行する。
func retargetRigEntry(config batchConfig, entry retargetEntry) retargetResult {
	result := retargetResult{Entry: entry, Status: "failed"}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	startedAt := time.Now()

	if err := os.MkdirAll(entry.CaseDir, batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力先の作成に失敗しました: %w", err)
		return result
	}

	mapping, err := rigmap.Create(entry.RigType)
	if err != nil {
		result.Err = err
		return result
	}
	skeleton, err := buildSyntheticSkeleton(mapping)
	if err != nil {
		result.Err = err
		return result
	}
	var rigWriter moutput.IRigWriter = io_rig.NewRigRepository()
	if err := rigWriter.Save(entry.RigPath, skeleton); err != nil {
		result.Err = fmt.Errorf("リグ保存に失敗しました: %w", err)
		return result
	}

	host := mscene.NewSceneHost(skeleton)
	settings := mretarget.DefaultSettings()
	settings.SmoothingEnabled = true
	settings.SmoothingFactor = 0.5
	session := mretarget.NewRigSession(host, mapping, settings)
	if err := session.Bind(skeleton); err != nil {
		result.Err = err
		return result
	}
	if err := session.Initialize(); err != nil {
		result.Err = err
		return result
	}
	result.WarningCount = len(session.Warnings())
	if err := session.Start(); err != nil {
		result.Err = err
		return result
	}

	for frameIndex := 0; frameIndex < batchFrameCount; frameIndex++ {
		frame := buildSyntheticFrame(frameIndex)
		if err := session.Update(frame); err != nil {
			result.Err = fmt.Errorf("フレーム転送に失敗しました(frame=%d): %w", frameIndex, err)
			return result
		}
		if err := verifyFrameRotations(session); err != nil {
			result.Err = fmt.Errorf("フレーム検証に失敗しました(frame=%d): %w", frameIndex, err)
			return result
		}
	}
	if err := session.Stop(true); err != nil {
		result.Err = err
		return result
	}

	result.FrameCount = batchFrameCount
	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	return result
}

// buildSyntheticSkeleton はマッピングのポーズ対応表を網羅するTポーズ骨格を生成する。
// 位置は規約共通の概形を使い、平面配置の縮退を避けるため奥行きを僅かに散らす。
func buildSyntheticSkeleton(mapping rigmap.Mapping) (*model.Skeleton, error) {
	prefix := syntheticPrefix(mapping.RigType())
	skeleton := model.NewSkeleton(fmt.Sprintf("Synthetic%s", mapping.RigType()))

	index := 0
	var appendNode func(node rigmap.Hierarchy, parentIndex int) error
	appendNode = func(node rigmap.Hierarchy, parentIndex int) error {
		for generic, children := range node {
			bone := model.NewBone(prefix + generic)
			bone.ParentIndex = parentIndex
			bone.Head = syntheticBonePosition(index)
			bone.Tail = bone.Head.Added(mmath.Vec3{Vec: r3.Vec{X: 0, Y: 0.1, Z: 0.001}})
			if rest, ok := mretarget.CalculateBoneRotation(bone.Head, bone.Tail, mmath.UNIT_Y_VEC3); ok {
				bone.RestRotation = rest
			}
			if err := skeleton.Append(bone); err != nil {
				return err
			}
			index++
			if err := appendNode(children, bone.Index()); err != nil {
				return err
			}
		}
		return nil
	}
	if err := appendNode(mapping.BoneHierarchy(), -1); err != nil {
		return nil, err
	}
	if skeleton.Len() == 0 {
		return nil, fmt.Errorf("階層が空のリグ規約です: %s", mapping.RigType())
	}
	return skeleton, nil
}

// syntheticPrefix はリグ規約ごとの合成ボーン名接頭辞を返す。
func syntheticPrefix(rigType rigmap.RigType) string {
	if rigType == rigmap.RigTypeMixamo {
		return "mixamorig:"
	}
	return ""
}

// syntheticBonePosition は登録順に応じた重複しないボーン位置を返す。
func syntheticBonePosition(index int) mmath.Vec3 {
	return mmath.Vec3{Vec: r3.Vec{
		X: 0.05 * float64(index%7),
		Y: 1.0 + 0.05*float64(index),
		Z: 0.01 * float64(index%3),
	}}
}

// buildSyntheticFrame は腕振りを模した合成ランドマークフレームを生成する。
func buildSyntheticFrame(frameIndex int) *model.LandmarkFrame {
	phase := 2 * math.Pi * float64(frameIndex) / float64(batchFrameCount)
	swing := 0.3 * math.Sin(phase)

	pose := model.NewLandmarkSet()
	base := map[int]mmath.Vec3{
		0:  {Vec: r3.Vec{X: 0, Y: 1.65, Z: 0.05}},
		2:  {Vec: r3.Vec{X: 0.03, Y: 1.68, Z: 0.05}},
		8:  {Vec: r3.Vec{X: 0.07, Y: 1.68, Z: 0}},
		11: {Vec: r3.Vec{X: 0.15, Y: 1.5, Z: 0}},
		12: {Vec: r3.Vec{X: -0.15, Y: 1.5, Z: 0}},
		13: {Vec: r3.Vec{X: 0.45, Y: 1.5 + swing, Z: 0.1 * swing}},
		14: {Vec: r3.Vec{X: -0.45, Y: 1.5 - swing, Z: -0.1 * swing}},
		15: {Vec: r3.Vec{X: 0.7, Y: 1.5 + 2*swing, Z: 0.2 * swing}},
		16: {Vec: r3.Vec{X: -0.7, Y: 1.5 - 2*swing, Z: -0.2 * swing}},
		23: {Vec: r3.Vec{X: 0.1, Y: 1.0, Z: 0}},
		24: {Vec: r3.Vec{X: -0.1, Y: 1.0, Z: 0}},
		25: {Vec: r3.Vec{X: 0.1, Y: 0.55, Z: 0.05 * swing}},
		26: {Vec: r3.Vec{X: -0.1, Y: 0.55, Z: -0.05 * swing}},
		27: {Vec: r3.Vec{X: 0.1, Y: 0.1, Z: 0}},
		28: {Vec: r3.Vec{X: -0.1, Y: 0.1, Z: 0}},
		31: {Vec: r3.Vec{X: 0.1, Y: 0.05, Z: 0.12}},
		32: {Vec: r3.Vec{X: -0.1, Y: 0.05, Z: 0.12}},
	}
	for index, position := range base {
		pose.Set(index, model.Landmark{Position: position, Visibility: 1.0})
	}
	return &model.LandmarkFrame{Index: frameIndex, Pose: pose}
}

// verifyFrameRotations は転送結果にNaNが混入していないか検証する。
func verifyFrameRotations(session *mretarget.RigSession) error {
	for name, rotation := range session.DriverRotations() {
		if math.IsNaN(rotation.X) || math.IsNaN(rotation.Y) || math.IsNaN(rotation.Z) {
			return fmt.Errorf("NaN回転が検出されました: %s", name)
		}
	}
	return nil
}

// printBatchSummary は検証結果のサマリを出力する。
func printBatchSummary(results []retargetResult) {
	succeeded := 0
	failed := 0
	for _, result := range results {
		if result.Status == "succeeded" {
			succeeded++
		} else if result.Status == "failed" {
			failed++
		}
	}
	fmt.Println("----")
	fmt.Printf("検証サマリ: total=%d succeeded=%d failed=%d\n", len(results), succeeded, failed)
	for _, result := range results {
		line := fmt.Sprintf("  [%s] %s", result.Status, result.Entry.RigType)
		if result.Err != nil {
			line += fmt.Sprintf(" (%v)", result.Err)
		}
		fmt.Println(line)
	}
}
