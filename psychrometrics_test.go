package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPVs(t *testing.T) {
	assert.InDelta(t, 1705.0, get_p_vs(15.0), 5.0)
	assert.InDelta(t, 2339.0, get_p_vs(20.0), 5.0)
	assert.InEpsilon(t, 101325.0, get_p_vs(100.0), 0.005)
	// 氷面
	assert.InDelta(t, 103.0, get_p_vs(-20.0), 1.0)
}

func TestGetXFromWetBulb(t *testing.T) {
	// 乾球温度 30℃、湿球温度 15℃
	assert.InDelta(t, 0.00448, get_x_from_wet_bulb(30.0, 15.0, p_atm_std), 1e-4)

	// 湿球温度と乾球温度が等しければ飽和
	assert.InDelta(t, get_x_s(20.0, p_atm_std), get_x_from_wet_bulb(20.0, 20.0, p_atm_std), 1e-12)
}

func TestDryAirTransportProperties(t *testing.T) {
	assert.InDelta(t, 1.846e-5, get_mu_da(300.0), 2e-7)
	assert.InDelta(t, 0.0263, get_k_da(300.0), 3e-4)

	// 絶対湿度 0 では乾き空気の値になる
	assert.InDelta(t, get_mu_da(300.0), get_mu_ha(300.0, 0.0), 1e-15)
	assert.InDelta(t, get_k_da(300.0), get_k_ha(300.0, 0.0), 1e-15)
}

func TestHumidAirProperty(t *testing.T) {
	air := HumidAir{}
	s := state_tw(298.15, 0.01, p_atm_std)

	mu, err := air.Property(HADynamicViscosity, s)
	require.NoError(t, err)
	assert.True(t, mu > 1.78e-5 && mu < 1.86e-5, "mu = %g", mu)

	v, err := air.Property(HASpecificVolume, s)
	require.NoError(t, err)
	assert.InDelta(t, 0.8583, v, 1e-3)

	k, err := air.Property(HAThermalConductivity, s)
	require.NoError(t, err)
	assert.True(t, k > 0.025 && k < 0.027, "k = %g", k)

	w, err := air.Property(HAHumidityRatio, s)
	require.NoError(t, err)
	assert.Equal(t, 0.01, w)

	w, err = air.Property(HAHumidityRatio, state_tb(303.15, 288.15, p_atm_std))
	require.NoError(t, err)
	assert.InDelta(t, 0.00448, w, 1e-4)

	rh, err := air.Property(HARelativeHumidity, state_tb(293.15, 293.15, p_atm_std))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rh, 1e-9)
}

func TestHumidAirInfeasibleState(t *testing.T) {
	air := HumidAir{}

	cases := map[string]HAState{
		"wet bulb above dry bulb": state_tb(293.15, 298.15, p_atm_std),
		"above saturation":        state_tw(298.15, 0.05, p_atm_std),
		"negative humidity":       state_tw(298.15, -0.001, p_atm_std),
		"negative temperature":    state_tw(-10.0, 0.01, p_atm_std),
		"zero pressure":           state_tw(298.15, 0.01, 0.0),
		"boiling":                 state_tw(383.15, 0.01, p_atm_std),
		"large depression":        state_tb(343.15, 273.15, p_atm_std),
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := air.Property(HAThermalConductivity, s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInfeasibleState), err.Error())
		})
	}
}

func TestHumidAirUnknownProperty(t *testing.T) {
	_, err := HumidAir{}.Property(HAProperty("H"), state_tw(298.15, 0.01, p_atm_std))
	assert.ErrorIs(t, err, ErrUnsupportedConfig)
}
