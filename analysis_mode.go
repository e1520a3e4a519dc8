package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// 解析モード
type AnalysisMode string

const (
	PreTreatment AnalysisMode = "pre-treatment" // 前処理: 湿球効率から入口絶対湿度を推定する
	HeatTransfer AnalysisMode = "heat_transfer" // 対流熱伝達率を計算してシートに書き戻す
)

// 解析モードごとの処理
type analyzer interface {
	// 計算結果を Recorder に記録する。表は変更しない。
	analyze(c *analysis_context, t *Table) (*Recorder, error)
	// 計算結果をブックに書き戻すか否か
	persists() bool
}

var analyzers = map[AnalysisMode]analyzer{
	PreTreatment: pre_treatment{},
	HeatTransfer: heat_transfer{},
}

func lookup_analyzer(mode AnalysisMode) (analyzer, error) {
	a, ok := analyzers[mode]
	if !ok {
		return nil, fmt.Errorf("%w: analysis mode %q", ErrUnsupportedConfig, mode)
	}
	return a, nil
}

// 解析に共通する条件
type analysis_context struct {
	profile *ApparatusProfile
	air     MoistAirProperties
	nusselt NusseltModel
	p_atm   float64
}

type pre_treatment struct{}

func (pre_treatment) persists() bool { return false }

/*
入口・出口温度と湿球効率から入口空気の絶対湿度を推定する。

	Notes:
	    湿球温度 = T_i - (T_i - T_o) / epsilon_wb を theta_wb_min で下限処理し、
	    乾球温度 T_i と組み合わせて絶対湿度を求める。
*/
func (pre_treatment) analyze(c *analysis_context, t *Table) (*Recorder, error) {
	p := c.profile
	if p.TempOut == "" || p.EpsilonWB == "" {
		return nil, stage_error(StageConfiguration,
			fmt.Errorf("%w: profile %q has no pre-treatment columns", ErrUnsupportedConfig, p.Name))
	}

	cols, err := t.require(p.TempIn, p.TempOut, p.EpsilonWB)
	if err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	fs := &FlowSample{
		n:          t.Len(),
		theta_i_ns: cols[p.TempIn],
		theta_o_ns: cols[p.TempOut],
		eps_wb_ns:  cols[p.EpsilonWB],
	}
	if err := fs.validate(); err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	theta_wb_ns, err := get_theta_wb_i_ns(fs.theta_i_ns, fs.theta_o_ns, fs.eps_wb_ns)
	if err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	x_ns := make([]float64, fs.n)
	for i := range x_ns {
		s := state_tb(fs.theta_i_ns[i]+k_offset, theta_wb_ns[i]+k_offset, c.p_atm)
		x, err := c.air.Property(HAHumidityRatio, s)
		if err != nil {
			return nil, stage_error(StagePropertyLookup, fmt.Errorf("row %q: %w", t.Index[i], err))
		}
		x_ns[i] = x
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log_inlet_rh(c, t, fs.theta_i_ns, x_ns)
	}

	rec := NewRecorder(p.Name, t.Index)
	if err := rec.record_humidity(p.Humidity, x_ns); err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}
	return rec, nil
}

// 推定した入口空気の相対湿度をデバッグ出力する。
func log_inlet_rh(c *analysis_context, t *Table, theta_i_ns, x_ns []float64) {
	for i := range x_ns {
		entry := log.WithFields(log.Fields{"hex": c.profile.Name, "index": t.Index[i]})
		rh, err := c.air.Property(HARelativeHumidity, state_tw(theta_i_ns[i]+k_offset, x_ns[i], c.p_atm))
		if err != nil {
			entry.WithError(err).Debug("inlet relative humidity unavailable")
			continue
		}
		entry.WithField("rh", rh).Debug("inlet relative humidity")
	}
}

type heat_transfer struct{}

func (heat_transfer) persists() bool { return true }

/*
1次側と2次側の対流熱伝達率を計算する。

	Notes:
	    水力直径 D_h = 2 h_ch / WWR は全ての流れで共通とする。
	    2次側の絶対湿度は1次側入口の値を用いる。
*/
func (heat_transfer) analyze(c *analysis_context, t *Table) (*Recorder, error) {
	p := c.profile

	names := []string{p.TempIn, p.Humidity, p.Velocity, p.ChannelHeight, p.WWR}
	if p.needs_outlet(HeatTransfer) {
		names = append(names, p.TempOut)
	}
	for _, s := range p.Secondary {
		names = append(names, s.Velocity)
	}
	cols, err := t.require(names...)
	if err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	fs := &FlowSample{
		n:          t.Len(),
		theta_i_ns: cols[p.TempIn],
		x_i_ns:     cols[p.Humidity],
		v_ns:       cols[p.Velocity],
		h_ch_ns:    cols[p.ChannelHeight],
		wwr_ns:     cols[p.WWR],
	}
	if p.needs_outlet(HeatTransfer) {
		fs.theta_o_ns = cols[p.TempOut]
	}
	for _, s := range p.Secondary {
		fs.secondary_v = append(fs.secondary_v, cols[s.Velocity])
	}
	if err := fs.validate(); err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	d_h_ns, err := get_d_h_ns(fs.h_ch_ns, fs.wwr_ns)
	if err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	rec := NewRecorder(p.Name, t.Index)
	if fs.n == 0 {
		for _, name := range append([]string{p.Re, p.Nu, p.HeatTransferCoef}, secondary_outputs(p)...) {
			if err := rec.add(name, "", []float64{}); err != nil {
				return nil, stage_error(StageColumnResolution, err)
			}
		}
		return rec, nil
	}

	// 1次側
	coef, err := calc_heat_transfer_coef(c.air, c.nusselt, d_h_ns, fs.theta_i_ns, fs.x_i_ns, fs.v_ns, c.p_atm)
	if err != nil {
		return nil, stage_error(StagePropertyLookup, fmt.Errorf("primary stream: %w", err))
	}
	if err := rec.record_primary(p, coef); err != nil {
		return nil, stage_error(StageColumnResolution, err)
	}

	// 2次側
	for i, s := range p.Secondary {
		theta_ns := fs.theta_i_ns
		if s.Temperature == StreamTempOutlet {
			theta_ns = fs.theta_o_ns
		}
		coef, err := calc_heat_transfer_coef(c.air, c.nusselt, d_h_ns, theta_ns, fs.x_i_ns, fs.secondary_v[i], c.p_atm)
		if err != nil {
			return nil, stage_error(StagePropertyLookup, fmt.Errorf("secondary stream %s: %w", s.Velocity, err))
		}
		if err := rec.record_secondary(s, coef); err != nil {
			return nil, stage_error(StageColumnResolution, err)
		}
	}

	return rec, nil
}

func secondary_outputs(p *ApparatusProfile) []string {
	names := make([]string, len(p.Secondary))
	for i, s := range p.Secondary {
		names[i] = s.Output
	}
	return names
}
