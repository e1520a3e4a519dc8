package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 物性値を固定値で返し、呼び出しを記録する。
type fake_air struct {
	mu, v, k, w float64
	fail        error
	calls       []fake_call
}

type fake_call struct {
	name HAProperty
	s    HAState
}

func (f *fake_air) Property(name HAProperty, s HAState) (float64, error) {
	f.calls = append(f.calls, fake_call{name, s})
	if f.fail != nil {
		return 0, f.fail
	}
	switch name {
	case HADynamicViscosity:
		return f.mu, nil
	case HASpecificVolume:
		return f.v, nil
	case HAThermalConductivity:
		return f.k, nil
	case HAHumidityRatio:
		return f.w, nil
	}
	return 0, ErrUnsupportedConfig
}

func new_fake_air() *fake_air {
	return &fake_air{mu: 1.8e-5, v: 0.85, k: 0.026, w: 0.0123}
}

func TestCalcHeatTransferCoef(t *testing.T) {
	air := new_fake_air()

	coef, err := calc_heat_transfer_coef(air, nil, []float64{0.005}, []float64{25.0}, []float64{0.01}, []float64{1.5}, p_atm_std)
	require.NoError(t, err)

	assert.InDelta(t, 1.5*0.005/(1.8e-5*0.85), coef.Re[0], 1e-9)
	assert.Equal(t, []float64{7.54}, coef.Nu)
	assert.InDelta(t, 7.54*0.026/0.005, coef.H_T[0], 1e-12)

	// T は K で渡す
	require.Len(t, air.calls, 3)
	for _, c := range air.calls {
		assert.InDelta(t, 298.15, c.s.T, 1e-9)
		assert.Equal(t, HAInputHumidityRatio, c.s.Input)
		assert.Equal(t, 0.01, c.s.Value)
		assert.Equal(t, p_atm_std, c.s.P)
	}
}

func TestReynoldsLinearInVelocityAndDiameter(t *testing.T) {
	air := HumidAir{}
	theta := []float64{20.0, 25.0, 35.0}
	x := []float64{0.005, 0.01, 0.015}
	d_h := []float64{0.004, 0.005, 0.006}
	v := []float64{0.5, 1.5, 3.0}

	base, err := calc_heat_transfer_coef(air, nil, d_h, theta, x, v, p_atm_std)
	require.NoError(t, err)

	v2 := []float64{1.0, 3.0, 6.0}
	by_v, err := calc_heat_transfer_coef(air, nil, d_h, theta, x, v2, p_atm_std)
	require.NoError(t, err)

	d_h3 := []float64{0.012, 0.015, 0.018}
	by_d, err := calc_heat_transfer_coef(air, nil, d_h3, theta, x, v, p_atm_std)
	require.NoError(t, err)

	for i := range theta {
		assert.InEpsilon(t, 2.0*base.Re[i], by_v.Re[i], 1e-12)
		assert.InEpsilon(t, 3.0*base.Re[i], by_d.Re[i], 1e-12)

		// h_T は D_h に反比例し、風速には依らない
		assert.InEpsilon(t, base.H_T[i]/3.0, by_d.H_T[i], 1e-12)
		assert.InEpsilon(t, base.H_T[i], by_v.H_T[i], 1e-12)
	}
}

func TestCalcHeatTransferCoefBroadcast(t *testing.T) {
	air := new_fake_air()

	coef, err := calc_heat_transfer_coef(air, nil, []float64{0.005}, []float64{25.0}, []float64{0.01}, []float64{1.0, 2.0, 3.0}, p_atm_std)
	require.NoError(t, err)
	require.Len(t, coef.Re, 3)
	assert.InEpsilon(t, 3.0*coef.Re[0], coef.Re[2], 1e-12)
	assert.Equal(t, []float64{7.54, 7.54, 7.54}, coef.Nu)
}

func TestCalcHeatTransferCoefShapeMismatch(t *testing.T) {
	air := new_fake_air()

	_, err := calc_heat_transfer_coef(air, nil, []float64{0.005, 0.005}, []float64{25.0, 25.0, 25.0}, []float64{0.01}, []float64{1.0}, p_atm_std)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = calc_heat_transfer_coef(air, nil, []float64{}, []float64{25.0}, []float64{0.01}, []float64{1.0}, p_atm_std)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	assert.Empty(t, air.calls)
}

type re_nusselt struct{}

func (re_nusselt) Nu(re, d_h float64) float64 { return re / 100.0 }

func TestCalcHeatTransferCoefNusseltModel(t *testing.T) {
	air := new_fake_air()

	coef, err := calc_heat_transfer_coef(air, re_nusselt{}, []float64{0.005}, []float64{25.0}, []float64{0.01}, []float64{1.5}, p_atm_std)
	require.NoError(t, err)
	assert.InDelta(t, coef.Re[0]/100.0, coef.Nu[0], 1e-12)
	assert.InDelta(t, coef.Nu[0]*0.026/0.005, coef.H_T[0], 1e-9)
}

func TestCalcHeatTransferCoefOracleFailure(t *testing.T) {
	_, err := calc_heat_transfer_coef(HumidAir{}, nil, []float64{0.005}, []float64{25.0}, []float64{0.5}, []float64{1.5}, p_atm_std)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasibleState))
}
