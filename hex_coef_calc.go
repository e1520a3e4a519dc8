package main

import (
	"flag"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

/*
解析処理の実行

	Args:
	    cfg: 実行条件
	    hex_type: 装置種別
	    sheetname: データセット名（シート名、ファイル名は sheetname.xlsx）
	    mode: 解析モード
*/
func run(cfg Config, hex_type, sheetname string, mode AnalysisMode) (*Table, error) {
	profiles := default_profiles()
	if cfg.ProfilesPath != "" {
		log.Printf("装置種別の読み込み: %s", cfg.ProfilesPath)
		ps, err := LoadProfiles(cfg.ProfilesPath)
		if err != nil {
			return nil, stage_error(StageConfiguration, err)
		}
		profiles = ps
	}

	return analyze_data(AnalysisRequest{
		HEXType:   hex_type,
		BaseDir:   cfg.BaseDir,
		FileName:  sheetname + ".xlsx",
		SheetName: sheetname,
		PAtm:      cfg.PAtm,
		Mode:      mode,
		Profiles:  profiles,
		ResultCSV: cfg.ResultCSV,
	})
}

func main() {
	var hex_type string
	flag.StringVar(&hex_type, "hex", "Two-stage_EC", "装置種別を指定します。 (DEC, Two-stage_EC)")

	var sheetname string
	flag.StringVar(&sheetname, "sheet", "Pacak2022", "データセット名を指定します。ファイル名はシート名に .xlsx を付けたものです。")

	var mode string
	flag.StringVar(&mode, "mode", string(HeatTransfer), "解析モードを指定します。 (pre-treatment, heat_transfer)")

	var config_path string
	flag.StringVar(&config_path, "config", "", "実行条件のiniファイル")

	var logLevel string
	flag.StringVar(&logLevel, "log", "", "ログレベルを指定します。 (Default=iniファイルの値またはinfo)")

	// 引数を受け取る
	flag.Parse()

	cfg, err := load_config(config_path)
	if err != nil {
		log.Fatal(err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	start := time.Now()

	t, err := run(cfg, hex_type, sheetname, AnalysisMode(mode))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %d rows, columns %v\n", sheetname, t.Len(), t.Columns())

	elapsedTime := time.Since(start)
	log.Printf("elapsed_time: %v [sec]", elapsedTime)
}
