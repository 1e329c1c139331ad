// 指示: miu200521358
// Package mconfig はリターゲット実行設定の読み込みを提供する。
package mconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_mocap2rig/pkg/domain/rigmap"
	"github.com/miu200521358/mu_mocap2rig/pkg/usecase/mretarget"
)

// Config はリターゲット実行設定を表す。
type Config struct {
	RigType             string   `toml:"rig_type" yaml:"rig_type" json:"rig_type"`
	SmoothingEnabled    bool     `toml:"smoothing_enabled" yaml:"smoothing_enabled" json:"smoothing_enabled"`
	SmoothingFactor     float64  `toml:"smoothing_factor" yaml:"smoothing_factor" json:"smoothing_factor"`
	VisibilityThreshold float64  `toml:"visibility_threshold" yaml:"visibility_threshold" json:"visibility_threshold"`
	RequireTPose        bool     `toml:"require_t_pose" yaml:"require_t_pose" json:"require_t_pose"`
	LockedRegions       []string `toml:"locked_regions" yaml:"locked_regions" json:"locked_regions"`
}

// DefaultConfig は既定の実行設定を返す。
func DefaultConfig() Config {
	settings := mretarget.DefaultSettings()
	return Config{
		RigType:             string(rigmap.RigTypeMixamo),
		SmoothingEnabled:    settings.SmoothingEnabled,
		SmoothingFactor:     settings.SmoothingFactor,
		VisibilityThreshold: settings.VisibilityThreshold,
		RequireTPose:        settings.RequireTPose,
	}
}

// Load は拡張子に応じた形式で実行設定を読み込む。
// 未指定項目は既定値のまま残る。
func Load(path string) (Config, error) {
	config := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("設定ファイルの読み取りに失敗しました: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &config)
	case ".json":
		err = json.Unmarshal(b, &config)
	default:
		return config, fmt.Errorf("対応していない設定形式です: %s", filepath.Ext(path))
	}
	if err != nil {
		return config, fmt.Errorf("設定ファイルの解析に失敗しました: %w", err)
	}

	if err := config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

// validate は設定値の整合を検証する。
func (c Config) validate() error {
	if c.SmoothingFactor < 0 || c.SmoothingFactor > 1 {
		return fmt.Errorf("smoothing_factor は0-1で指定してください: %f", c.SmoothingFactor)
	}
	if c.VisibilityThreshold < 0 || c.VisibilityThreshold > 1 {
		return fmt.Errorf("visibility_threshold は0-1で指定してください: %f", c.VisibilityThreshold)
	}
	for _, region := range c.LockedRegions {
		if !isKnownRegion(region) {
			return fmt.Errorf("不明な領域名です: %s", region)
		}
	}
	return nil
}

// isKnownRegion は領域名が定義済みか判定する。
func isKnownRegion(name string) bool {
	switch rigmap.Region(name) {
	case rigmap.RegionUpperBody, rigmap.RegionLowerBody, rigmap.RegionLeftArm, rigmap.RegionRightArm, rigmap.RegionHead:
		return true
	}
	return false
}

// SessionSettings は実行設定をセッション設定へ変換する。
func (c Config) SessionSettings() mretarget.Settings {
	settings := mretarget.Settings{
		SmoothingEnabled:    c.SmoothingEnabled,
		SmoothingFactor:     c.SmoothingFactor,
		VisibilityThreshold: c.VisibilityThreshold,
		RequireTPose:        c.RequireTPose,
	}
	for _, region := range c.LockedRegions {
		settings.LockedRegions = append(settings.LockedRegions, rigmap.Region(region))
	}
	return settings
}
