package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// 実験データの各行の流れの状態
// 未使用の列は nil のままにする。
type FlowSample struct {
	n           int
	theta_i_ns  []float64 // 入口温度, degree C, [n]
	theta_o_ns  []float64 // 出口温度, degree C, [n]
	x_i_ns      []float64 // 入口絶対湿度, kg/kgDA, [n]
	v_ns        []float64 // 風速, m/s, [n]
	h_ch_ns     []float64 // 流路高さ, m, [n]
	wwr_ns      []float64 // WWR, -, [n]
	eps_wb_ns   []float64 // 湿球効率, -, [n]
	secondary_v [][]float64
}

// 全ての列の長さが行数と一致することを確認する。
func (fs *FlowSample) validate() error {
	cols := map[string][]float64{
		"theta_i": fs.theta_i_ns,
		"theta_o": fs.theta_o_ns,
		"x_i":     fs.x_i_ns,
		"v":       fs.v_ns,
		"h_ch":    fs.h_ch_ns,
		"wwr":     fs.wwr_ns,
		"eps_wb":  fs.eps_wb_ns,
	}
	for i, v := range fs.secondary_v {
		cols[fmt.Sprintf("v_sec_%d", i+1)] = v
	}
	for name, c := range cols {
		if c != nil && len(c) != fs.n {
			return fmt.Errorf("%w: %s has %d rows, expected %d", ErrShapeMismatch, name, len(c), fs.n)
		}
	}
	return nil
}

/*
水力直径を計算する。

	Args:
	    h_ch_ns: 流路高さ, m, [n]
	    wwr_ns: WWR, -, [n]

	Returns:
	    水力直径, m, [n]
*/
func get_d_h_ns(h_ch_ns, wwr_ns []float64) ([]float64, error) {
	if len(h_ch_ns) != len(wwr_ns) {
		return nil, fmt.Errorf("%w: h_ch %d vs WWR %d", ErrShapeMismatch, len(h_ch_ns), len(wwr_ns))
	}
	if len(h_ch_ns) == 0 {
		return []float64{}, nil
	}

	d_h := mat.NewVecDense(len(h_ch_ns), nil)
	d_h.ScaleVec(2.0, mat.NewVecDense(len(h_ch_ns), h_ch_ns))
	d_h.DivElemVec(d_h, mat.NewVecDense(len(wwr_ns), wwr_ns))

	return d_h.RawVector().Data, nil
}

/*
入口・出口温度と湿球効率から入口空気の湿球温度を推定する。

	Args:
	    theta_i_ns: 入口温度, degree C, [n]
	    theta_o_ns: 出口温度, degree C, [n]
	    eps_wb_ns: 湿球効率, -, [n]

	Returns:
	    入口空気の湿球温度, degree C, [n]

	Notes:
	    推定値が theta_wb_min を下回る場合は theta_wb_min とする。
*/
func get_theta_wb_i_ns(theta_i_ns, theta_o_ns, eps_wb_ns []float64) ([]float64, error) {
	n := len(theta_i_ns)
	if len(theta_o_ns) != n || len(eps_wb_ns) != n {
		return nil, fmt.Errorf("%w: T_i %d, T_o %d, epsilon_wb %d",
			ErrShapeMismatch, n, len(theta_o_ns), len(eps_wb_ns))
	}
	if n == 0 {
		return []float64{}, nil
	}

	theta_i := mat.NewVecDense(n, theta_i_ns)

	// (T_i - T_o) / epsilon_wb
	dt := mat.NewVecDense(n, nil)
	dt.SubVec(theta_i, mat.NewVecDense(n, theta_o_ns))
	dt.DivElemVec(dt, mat.NewVecDense(n, eps_wb_ns))

	theta_wb := mat.NewVecDense(n, nil)
	theta_wb.SubVec(theta_i, dt)

	ret := theta_wb.RawVector().Data
	for i := range ret {
		ret[i] = clamp_theta_wb(ret[i])
	}
	return ret, nil
}

// 湿球温度の下限処理
func clamp_theta_wb(theta_wb float64) float64 {
	return math.Max(theta_wb, theta_wb_min)
}
