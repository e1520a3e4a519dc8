package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// 流路のヌセルト数の計算方法
type NusseltModel interface {
	Nu(re, d_h float64) float64
}

// 流れの状態によらず一定のヌセルト数
type ConstantNusselt float64

func (c ConstantNusselt) Nu(re, d_h float64) float64 {
	return float64(c)
}

// 既定のヌセルト数
// TODO: レイノルズ数に応じてヌセルト数を変える相関式に置き換える
var default_nusselt NusseltModel = ConstantNusselt(nu_parallel_plates)

// 対流熱伝達率の計算結果
type HeatTransferCoef struct {
	Re  []float64 // レイノルズ数, -
	Nu  []float64 // ヌセルト数, -
	H_T []float64 // 対流熱伝達率, W/m2 K
}

/*
流路の対流熱伝達率を計算する。

	Args:
	    air: 湿り空気の物性値
	    nu_model: ヌセルト数の計算方法
	    d_h_ns: 水力直径, m, [n]
	    theta_ns: 空気温度, degree C, [n]
	    x_ns: 絶対湿度, kg/kgDA, [n]
	    v_ns: 風速, m/s, [n]
	    p_atm: 大気圧, Pa

	Returns:
	    レイノルズ数、ヌセルト数、対流熱伝達率

	Notes:
	    長さ1の配列はスカラーとして他の配列の長さに拡張する。
	    動粘性係数は 粘性係数×比容積 とする。
*/
func calc_heat_transfer_coef(
	air MoistAirProperties,
	nu_model NusseltModel,
	d_h_ns []float64,
	theta_ns []float64,
	x_ns []float64,
	v_ns []float64,
	p_atm float64,
) (*HeatTransferCoef, error) {
	n, err := broadcast_len(d_h_ns, theta_ns, x_ns, v_ns)
	if err != nil {
		return nil, err
	}
	if nu_model == nil {
		nu_model = default_nusselt
	}

	d_h := broadcast(d_h_ns, n)
	theta := broadcast(theta_ns, n)
	x := broadcast(x_ns, n)
	v := broadcast(v_ns, n)

	// 動粘性係数, m2/s, [n]
	nu_air := make([]float64, n)
	// 熱伝導率, W/m K, [n]
	k_air := make([]float64, n)

	for i := 0; i < n; i++ {
		s := state_tw(theta[i]+k_offset, x[i], p_atm)

		mu, err := air.Property(HADynamicViscosity, s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		v_ha, err := air.Property(HASpecificVolume, s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		k, err := air.Property(HAThermalConductivity, s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		nu_air[i] = mu * v_ha
		k_air[i] = k
	}

	// レイノルズ数
	re := make([]float64, n)
	floats.MulTo(re, v, d_h)
	floats.Div(re, nu_air)

	// ヌセルト数
	nu := make([]float64, n)
	for i := range nu {
		nu[i] = nu_model.Nu(re[i], d_h[i])
	}

	// 対流熱伝達率
	h_t := make([]float64, n)
	floats.MulTo(h_t, nu, k_air)
	floats.Div(h_t, d_h)

	return &HeatTransferCoef{Re: re, Nu: nu, H_T: h_t}, nil
}

// 長さ1の配列を除いて長さが揃っていることを確認し、その長さを返す。
func broadcast_len(xs ...[]float64) (int, error) {
	n := 1
	for _, x := range xs {
		switch {
		case len(x) == 1:
		case n == 1:
			n = len(x)
		case len(x) != n:
			return 0, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(x), n)
		}
	}
	for _, x := range xs {
		if len(x) == 0 {
			return 0, fmt.Errorf("%w: empty input", ErrShapeMismatch)
		}
	}
	return n, nil
}

func broadcast(x []float64, n int) []float64 {
	if len(x) == n {
		return x
	}
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = x[0]
	}
	return ret
}
