package main

import (
	"fmt"
	"math"
)

// 湿り空気の物性値の種類
type HAProperty string

const (
	HADynamicViscosity    HAProperty = "mu" // 粘性係数, Pa s
	HASpecificVolume      HAProperty = "V"  // 比容積, m3/kg(DA)
	HAThermalConductivity HAProperty = "K"  // 熱伝導率, W/m K
	HAHumidityRatio       HAProperty = "W"  // 絶対湿度, kg/kg(DA)
	HARelativeHumidity    HAProperty = "R"  // 相対湿度, -
)

// 湿り空気の状態を決める2つ目の入力
type HAInput string

const (
	HAInputHumidityRatio HAInput = "W" // 絶対湿度, kg/kg(DA)
	HAInputWetBulb       HAInput = "B" // 湿球温度, K
)

// 湿り空気の状態
//
//	T: 乾球温度, K
//	Input, Value: 絶対湿度 kg/kg(DA) または湿球温度 K
//	P: 全圧, Pa
type HAState struct {
	T     float64
	Input HAInput
	Value float64
	P     float64
}

func (s HAState) String() string {
	return fmt.Sprintf("T=%g K, %s=%g, P=%g Pa", s.T, s.Input, s.Value, s.P)
}

// 乾球温度と絶対湿度から状態を作る。
func state_tw(t, w, p float64) HAState {
	return HAState{T: t, Input: HAInputHumidityRatio, Value: w, P: p}
}

// 乾球温度と湿球温度から状態を作る。
func state_tb(t, t_wb, p float64) HAState {
	return HAState{T: t, Input: HAInputWetBulb, Value: t_wb, P: p}
}

// 湿り空気の物性値
// 熱力学的に成立しない状態では値を丸めずにエラーを返すこと。
type MoistAirProperties interface {
	Property(name HAProperty, s HAState) (float64, error)
}

// 理想気体混合物としての湿り空気
type HumidAir struct{}

// 計算可能な乾球温度の範囲, K
const (
	t_ha_min = 173.15
	t_ha_max = 623.15
)

func (HumidAir) Property(name HAProperty, s HAState) (float64, error) {
	if err := check_state(s); err != nil {
		return math.NaN(), err
	}

	w, err := resolve_w(s)
	if err != nil {
		return math.NaN(), err
	}

	switch name {
	case HAHumidityRatio:
		return w, nil
	case HASpecificVolume:
		return get_v_ha(s.T, w, s.P), nil
	case HADynamicViscosity:
		return get_mu_ha(s.T, w), nil
	case HAThermalConductivity:
		return get_k_ha(s.T, w), nil
	case HARelativeHumidity:
		theta := s.T - k_offset
		return get_h(get_p_v(w, s.P), get_p_vs(theta)) / 100.0, nil
	default:
		return math.NaN(), fmt.Errorf("%w: unknown property %q", ErrUnsupportedConfig, name)
	}
}

func check_state(s HAState) error {
	if !(s.T >= t_ha_min && s.T <= t_ha_max) {
		return fmt.Errorf("%w: dry-bulb temperature out of range (%s)", ErrInfeasibleState, s)
	}
	if !(s.P > 0.0) {
		return fmt.Errorf("%w: non-positive pressure (%s)", ErrInfeasibleState, s)
	}
	if get_p_vs(s.T-k_offset) >= s.P {
		return fmt.Errorf("%w: saturation pressure reaches total pressure (%s)", ErrInfeasibleState, s)
	}
	return nil
}

/*
状態から絶対湿度を求める。

	Args:
	    s: 湿り空気の状態

	Returns:
	    絶対湿度, kg/kg(DA)

	Notes:
	    絶対湿度で与えられた場合は飽和絶対湿度を超えないことを確認する。
	    湿球温度で与えられた場合は乾球温度を超えないことを確認する。
*/
func resolve_w(s HAState) (float64, error) {
	theta := s.T - k_offset

	switch s.Input {
	case HAInputHumidityRatio:
		w := s.Value
		if !(w >= 0.0) {
			return math.NaN(), fmt.Errorf("%w: negative humidity ratio (%s)", ErrInfeasibleState, s)
		}
		if w > get_x_s(theta, s.P)*(1.0+1e-9) {
			return math.NaN(), fmt.Errorf("%w: humidity ratio above saturation (%s)", ErrInfeasibleState, s)
		}
		return w, nil

	case HAInputWetBulb:
		if !(s.Value >= t_ha_min) {
			return math.NaN(), fmt.Errorf("%w: wet-bulb temperature out of range (%s)", ErrInfeasibleState, s)
		}
		if s.Value > s.T {
			return math.NaN(), fmt.Errorf("%w: wet-bulb temperature above dry-bulb (%s)", ErrInfeasibleState, s)
		}
		w := get_x_from_wet_bulb(theta, s.Value-k_offset, s.P)
		if !(w >= 0.0) {
			return math.NaN(), fmt.Errorf("%w: wet-bulb depression too large (%s)", ErrInfeasibleState, s)
		}
		return w, nil

	default:
		return math.NaN(), fmt.Errorf("%w: unknown state input %q", ErrUnsupportedConfig, s.Input)
	}
}

/*
相対湿度を計算する。

	Args:
	    p_v: 水蒸気圧, Pa
	    p_vs: 飽和水蒸気圧, Pa

	Returns:
	    相対湿度, %

	Notes:
	    省エネ基準第11章「その他」第5節「湿り空気」式(1)
*/
func get_h(p_v, p_vs float64) float64 {
	return p_v / p_vs * 100.0
}

/*
水蒸気圧から絶対湿度を計算する。

	Args:
	    p_v: 水蒸気圧, Pa
	    p: 全圧, Pa

	Returns:
	    絶対湿度, kg/kgDA
*/
func get_x(p_v, p float64) float64 {
	return r_mw * p_v / (p - p_v)
}

/*
絶対湿度から水蒸気圧を求める。

	Args:
	    x: 絶対湿度, kg/kgDA
	    p: 全圧, Pa

	Returns:
	    水蒸気圧, Pa
*/
func get_p_v(x, p float64) float64 {
	return p * x / (x + r_mw)
}

// 飽和絶対湿度, kg/kgDA
func get_x_s(theta, p float64) float64 {
	return get_x(get_p_vs(theta), p)
}

/*
飽和水蒸気圧を計算する。

	Args:
	    theta: 空気温度, degree C

	Returns:
	    飽和水蒸気圧, Pa

	Notes:
	    省エネ基準
	    0℃以上は水面、0℃未満は氷面に対する値
*/
func get_p_vs(theta float64) float64 {
	// 絶対温度の計算
	t := theta + k_offset

	const a1 = -6096.9385
	const a2 = 21.2409642
	const a3 = -0.02711193
	const a4 = 0.00001673952
	const a5 = 2.433502
	const b1 = -6024.5282
	const b2 = 29.32707
	const b3 = 0.010613863
	const b4 = -0.000013198825
	const b5 = -0.49382577

	var p_vs float64
	if theta >= 0.0 {
		p_vs = math.Exp(a1/t + a2 + a3*t + a4*t*t + a5*math.Log(t))
	} else {
		p_vs = math.Exp(b1/t + b2 + b3*t + b4*t*t + b5*math.Log(t))
	}

	return p_vs
}

/*
乾球温度と湿球温度から絶対湿度を計算する。

	Args:
	    theta: 乾球温度, degree C
	    theta_wb: 湿球温度, degree C
	    p: 全圧, Pa

	Returns:
	    絶対湿度, kg/kgDA

	Notes:
	    ASHRAE Handbook Fundamentals 第1章 式(33), 式(35)
	    湿球温度が0℃未満の場合は氷面の式を用いる。
*/
func get_x_from_wet_bulb(theta, theta_wb, p float64) float64 {
	// 湿球温度における飽和絶対湿度, kg/kgDA
	x_s_wb := get_x_s(theta_wb, p)

	if theta_wb >= 0.0 {
		return ((2501.0-2.326*theta_wb)*x_s_wb - 1.006*(theta-theta_wb)) /
			(2501.0 + 1.86*theta - 4.186*theta_wb)
	}
	return ((2830.0-0.24*theta_wb)*x_s_wb - 1.006*(theta-theta_wb)) /
		(2830.0 + 1.86*theta - 2.1*theta_wb)
}

/*
湿り空気の比容積を計算する。

	Args:
	    t: 乾球温度, K
	    x: 絶対湿度, kg/kgDA
	    p: 全圧, Pa

	Returns:
	    乾き空気1kgあたりの比容積, m3/kg(DA)
*/
func get_v_ha(t, x, p float64) float64 {
	return r_da * t * (1.0 + x/r_mw) / p
}

// 水蒸気のモル分率, -
func get_psi_w(x float64) float64 {
	return x / (r_mw + x)
}

// 乾き空気の粘性係数（Sutherlandの式）, Pa s
func get_mu_da(t float64) float64 {
	const mu_0 = 1.716e-5
	const t_0 = 273.15
	const s = 110.4
	return mu_0 * math.Pow(t/t_0, 1.5) * (t_0 + s) / (t + s)
}

// 水蒸気の粘性係数, Pa s
func get_mu_w(t float64) float64 {
	return 4.07e-8*t - 3.077e-6
}

// 乾き空気の熱伝導率, W/m K
func get_k_da(t float64) float64 {
	return 2.646e-3 * math.Pow(t, 1.5) / (t + 245.4*math.Pow(10.0, -12.0/t))
}

// 水蒸気の熱伝導率, W/m K
func get_k_w(t float64) float64 {
	return 7.341e-3 - 1.013e-5*t + 1.801e-7*t*t - 9.1e-11*t*t*t
}

// Wilke の混合則の係数 phi_ij
func get_phi_wilke(mu_i, mu_j, m_i, m_j float64) float64 {
	n := 1.0 + math.Sqrt(mu_i/mu_j)*math.Pow(m_j/m_i, 0.25)
	return n * n / math.Sqrt(8.0*(1.0+m_i/m_j))
}

/*
乾き空気と水蒸気の物性値を Wilke の混合則で混合する。

	Args:
	    t: 乾球温度, K
	    x: 絶対湿度, kg/kgDA
	    f_da: 乾き空気の物性値
	    f_w: 水蒸気の物性値

	Returns:
	    湿り空気の物性値

	Notes:
	    熱伝導率にも粘性係数から求めた係数を用いる（Mason-Saxena）。
*/
func mix_wilke(t, x, f_da, f_w float64) float64 {
	psi_w := get_psi_w(x)
	psi_da := 1.0 - psi_w

	mu_da, mu_w := get_mu_da(t), get_mu_w(t)
	phi_da_w := get_phi_wilke(mu_da, mu_w, m_da, m_w)
	phi_w_da := get_phi_wilke(mu_w, mu_da, m_w, m_da)

	return psi_da*f_da/(psi_da+psi_w*phi_da_w) + psi_w*f_w/(psi_w+psi_da*phi_w_da)
}

// 湿り空気の粘性係数, Pa s
func get_mu_ha(t, x float64) float64 {
	return mix_wilke(t, x, get_mu_da(t), get_mu_w(t))
}

// 湿り空気の熱伝導率, W/m K
func get_k_ha(t, x float64) float64 {
	return mix_wilke(t, x, get_k_da(t), get_k_w(t))
}
