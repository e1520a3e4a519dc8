package main

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// 解析の条件
type AnalysisRequest struct {
	HEXType   string       // 装置種別
	BaseDir   string       // 装置種別ごとのフォルダを含むディレクトリ
	FileName  string       // ブックのファイル名
	SheetName string       // シート名
	PAtm      float64      // 大気圧, Pa
	Mode      AnalysisMode // 解析モード

	// 以下は省略可
	Profiles  Profiles
	Air       MoistAirProperties
	Nusselt   NusseltModel
	ResultCSV string
}

// ブックのパス
func (req *AnalysisRequest) path() string {
	return filepath.Join(req.BaseDir, req.HEXType, req.FileName)
}

/*
実験データのシートを解析する。

	Args:
	    req: 解析の条件

	Returns:
	    計算結果の列を加えた表

	Notes:
	    pre-treatment: 入口絶対湿度を推定して表に設定する。ブックには書き戻さない。
	    heat_transfer: 対流熱伝達率を計算し、全ての計算が終わってからブックに書き戻す。
	    装置種別と解析モードはブックを開く前に確認する。
*/
func analyze_data(req AnalysisRequest) (*Table, error) {
	profiles := req.Profiles
	if profiles == nil {
		profiles = default_profiles()
	}

	profile, err := profiles.lookup(req.HEXType)
	if err != nil {
		return nil, stage_error(StageConfiguration, err)
	}
	a, err := lookup_analyzer(req.Mode)
	if err != nil {
		return nil, stage_error(StageConfiguration, err)
	}

	c := &analysis_context{
		profile: profile,
		air:     req.Air,
		nusselt: req.Nusselt,
		p_atm:   req.PAtm,
	}
	if c.air == nil {
		c.air = HumidAir{}
	}
	if c.nusselt == nil {
		c.nusselt = default_nusselt
	}
	if c.p_atm == 0.0 {
		c.p_atm = p_atm_std
	}

	path := req.path()
	logger := log.WithFields(log.Fields{
		"hex":   profile.Name,
		"mode":  req.Mode,
		"sheet": req.SheetName,
	})
	logger.Infof("analysis start: %s", path)

	t, err := read_table(path, req.SheetName, profile.Columns, profile.SkipRows)
	if err != nil {
		return nil, stage_error(StageRead, err)
	}

	rec, err := a.analyze(c, t)
	if err != nil {
		return nil, err
	}
	if err := rec.apply(t); err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}
	logger.WithField("rows", t.Len()).Infof("derived columns: %v", rec.names())

	if a.persists() {
		if err := write_table(path, req.SheetName, t); err != nil {
			return nil, stage_error(StageWriteBack, err)
		}
	}

	if req.ResultCSV != "" {
		if err := rec.save_csv(req.ResultCSV); err != nil {
			return nil, stage_error(StageExport, err)
		}
		logger.Infof("results saved to `%s`", req.ResultCSV)
	}

	return t, nil
}
