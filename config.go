package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// 実行条件
type Config struct {
	BaseDir      string  // 装置種別ごとのフォルダを含むディレクトリ
	PAtm         float64 // 大気圧, Pa
	LogLevel     string
	ProfilesPath string // 装置種別の定義ファイル（yaml）
	ResultCSV    string // 計算結果の CSV 出力先
}

func default_config() Config {
	return Config{
		BaseDir:  ".",
		PAtm:     p_atm_std,
		LogLevel: "info",
	}
}

// ini ファイルから実行条件を読み込む。path が空の場合は既定値を返す。
func load_config(path string) (Config, error) {
	if path == "" {
		return default_config(), nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return parse_config(file)
}

func parse_config(file *ini.File) (Config, error) {
	sec := file.Section("analysis")
	cfg := Config{
		BaseDir:      sec.Key("BaseDir").MustString("."),
		PAtm:         sec.Key("PAtm").MustFloat64(p_atm_std),
		LogLevel:     sec.Key("LogLevel").MustString("info"),
		ProfilesPath: sec.Key("Profiles").String(),
		ResultCSV:    sec.Key("ResultCSV").String(),
	}

	if !(cfg.PAtm > 0.0) {
		return Config{}, fmt.Errorf("%w: PAtm must be positive, got %g", ErrUnsupportedConfig, cfg.PAtm)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrUnsupportedConfig, err)
	}

	return cfg, nil
}
