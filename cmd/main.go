// 指示: miu200521358
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/io_capture"
	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/io_rig"
	"github.com/miu200521358/mu_mocap2rig/pkg/adapter/mscene"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
	"github.com/miu200521358/mu_mocap2rig/pkg/infra/mconfig"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/mretarget"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/port/moutput"
)

// options はCLI引数を保持する。
type options struct {
	rigPath     string
	capturePath string
	configPath  string
	rigType     string
	outputPath  string
}

// motionFrame はJSONL出力1行分のフレームを表す。
type motionFrame struct {
	Index     int                   `json:"index"`
	Rotations map[string][3]float64 `json:"rotations"`
}

// main はキャプチャからリグ回転への一括リターゲットを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	config, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	mapping, err := rigmap.Create(rigmap.RigType(config.RigType))
	if err != nil {
		return fmt.Errorf("リグ規約の解決に失敗しました: %w", err)
	}

	var rigReader moutput.IRigReader = io_rig.NewRigRepository()
	var captureReader moutput.ICaptureReader = io_capture.NewCaptureRepository()

	fmt.Fprintf(out, "[mu_mocap2rig] リグ読み込み開始: %s\n", opts.rigPath)
	skeleton, err := rigReader.Load(opts.rigPath)
	if err != nil {
		return fmt.Errorf("リグ読み込みに失敗しました: %w", err)
	}
	fmt.Fprintf(out, "[mu_mocap2rig] リグ読み込み完了: bones=%d\n", skeleton.Len())

	fmt.Fprintf(out, "[mu_mocap2rig] キャプチャ読み込み開始: %s\n", opts.capturePath)
	frames, err := captureReader.Load(opts.capturePath)
	if err != nil {
		return fmt.Errorf("キャプチャ読み込みに失敗しました: %w", err)
	}
	fmt.Fprintf(out, "[mu_mocap2rig] キャプチャ読み込み完了: frames=%d\n", len(frames))

	host := mscene.NewSceneHost(skeleton)
	session := mretarget.NewRigSession(host, mapping, config.SessionSettings())
	if err := session.Bind(skeleton); err != nil {
		return fmt.Errorf("骨格バインドに失敗しました: %w", err)
	}
	if err := session.Initialize(); err != nil {
		return fmt.Errorf("セッション初期化に失敗しました: %w", err)
	}
	for _, warning := range session.Warnings() {
		fmt.Fprintf(errOut, "[mu_mocap2rig] 警告: %s\n", warning.Message)
	}
	if err := session.Start(); err != nil {
		return fmt.Errorf("セッション開始に失敗しました: %w", err)
	}

	outputPath, err := resolveOutputPath(opts.capturePath, opts.outputPath)
	if err != nil {
		return err
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("出力ファイルの作成に失敗しました: %w", err)
	}
	defer outputFile.Close()

	fmt.Fprintf(out, "[mu_mocap2rig] 転送開始: %s\n", outputPath)
	writer := bufio.NewWriter(outputFile)
	for _, frame := range frames {
		if err := session.Update(frame); err != nil {
			return fmt.Errorf("フレーム転送に失敗しました(frame=%d): %w", frame.Index, err)
		}
		if err := writeMotionFrame(writer, frame.Index, session.DriverRotations()); err != nil {
			return fmt.Errorf("フレーム出力に失敗しました(frame=%d): %w", frame.Index, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("出力の書き込みに失敗しました: %w", err)
	}

	if err := session.Stop(true); err != nil {
		return fmt.Errorf("セッション停止に失敗しました: %w", err)
	}
	fmt.Fprintf(out, "[mu_mocap2rig] 転送完了: frames=%d output=%s\n", len(frames), outputPath)
	return nil
}

// writeMotionFrame は1フレーム分のドライバ回転をJSONLへ書き出す。
func writeMotionFrame(writer io.Writer, index int, rotations map[string]mmath.Euler) error {
	frame := motionFrame{Index: index, Rotations: make(map[string][3]float64, len(rotations))}
	names := make([]string, 0, len(rotations))
	for name := range rotations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		x, y, z := rotations[name].Degrees()
		frame.Rotations[name] = [3]float64{x, y, z}
	}

	b, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := writer.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// resolveConfig は設定ファイルとCLI上書きから実行設定を組み立てる。
func resolveConfig(opts options) (mconfig.Config, error) {
	config := mconfig.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := mconfig.Load(opts.configPath)
		if err != nil {
			return config, fmt.Errorf("設定読み込みに失敗しました: %w", err)
		}
		config = loaded
	}
	if opts.rigType != "" {
		config.RigType = strings.ToUpper(opts.rigType)
	}
	return config, nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_mocap2rig", flag.ContinueOnError)
	fs.SetOutput(errOut)

	rig := fs.String("rig", "", "リグ定義JSONファイルパス")
	capture := fs.String("capture", "", "キャプチャJSONLファイルパス")
	config := fs.String("config", "", "実行設定ファイルパス(toml/yaml/json)")
	rigType := fs.String("type", "", "リグ規約(MIXAMO/RIGIFY/MAYA)")
	out := fs.String("out", "", "出力モーションJSONLファイルパス")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *rig == "" && fs.NArg() > 0 {
		*rig = fs.Arg(0)
	}
	if *capture == "" && fs.NArg() > 1 {
		*capture = fs.Arg(1)
	}
	if *out == "" && fs.NArg() > 2 {
		*out = fs.Arg(2)
	}
	if *rig == "" {
		return options{}, fmt.Errorf("リグ定義ファイルを指定してください (-rig)")
	}
	if *capture == "" {
		return options{}, fmt.Errorf("キャプチャファイルを指定してください (-capture)")
	}

	if !strings.EqualFold(filepath.Ext(*rig), ".json") {
		return options{}, fmt.Errorf("リグ定義の拡張子が .json ではありません: %s", *rig)
	}
	if !strings.EqualFold(filepath.Ext(*capture), ".jsonl") {
		return options{}, fmt.Errorf("キャプチャの拡張子が .jsonl ではありません: %s", *capture)
	}

	return options{
		rigPath:     *rig,
		capturePath: *capture,
		configPath:  *config,
		rigType:     *rigType,
		outputPath:  *out,
	}, nil
}

// resolveOutputPath は出力モーションパスを解決する。
func resolveOutputPath(capturePath string, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		dir := filepath.Dir(capturePath)
		base := strings.TrimSuffix(filepath.Base(capturePath), filepath.Ext(capturePath))
		return filepath.Join(dir, base+"_motion.jsonl"), nil
	}
	if !strings.EqualFold(filepath.Ext(outputPath), ".jsonl") {
		return "", fmt.Errorf("出力拡張子が .jsonl ではありません: %s", outputPath)
	}
	return outputPath, nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}
