package main

// 標準大気圧, Pa
const p_atm_std = 101325.0

// 絶対温度への換算, K
const k_offset = 273.15

// 水蒸気と乾き空気の分子量の比, -
const r_mw = 0.621945

// 乾き空気のガス定数, J/kg K
const r_da = 287.055

// 乾き空気の分子量, kg/kmol
const m_da = 28.966

// 水蒸気の分子量, kg/kmol
const m_w = 18.015268

// 推定湿球温度の下限値, degree C
const theta_wb_min = 15.0

// 平行平板流路（両面等温）の十分発達した層流のヌセルト数
const nu_parallel_plates = 7.54
