package rc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAxisFromChannel(t *testing.T) {
	testCases := []struct {
		raw    uint16
		expect Axis
	}{
		{1000, 0},
		{1800, 1},
		{200, -1},
		{1400, 0.5},
		{600, -0.5},
		{1015, 0},
		{985, 0},
		{1016, 0.02},
		{2047, 1},
		{0, -1},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d", tc.raw), func(t *testing.T) {
			a := AxisFromChannel(tc.raw)
			require.Truef(t, a.Equal(tc.expect), "raw %d: %v != %v", tc.raw, a, tc.expect)
		})
	}
}

func TestAxisDeadZone(t *testing.T) {
	for raw := uint16(0); raw < 2048; raw++ {
		v := (float32(raw) - 1000) / 800
		a := AxisFromChannel(raw)
		if v > -0.02 && v < 0.02 {
			require.Equalf(t, Axis(0), a, "raw %d", raw)
		}
		require.Truef(t, a >= -1 && a <= 1, "raw %d out of range: %v", raw, a)
	}
}

func TestAxisEqual(t *testing.T) {
	require.True(t, Axis(0.5).Equal(Axis(0.5)))
	require.True(t, Axis(1).Equal(Axis(1+axisEpsilon/2)))
	require.False(t, Axis(0.5).Equal(Axis(0.5001)))
}

func TestButtonFromChannel(t *testing.T) {
	require.Equal(t, Pressed, ButtonFromChannel(1001))
	require.Equal(t, Pressed, ButtonFromChannel(2047))
	require.Equal(t, Released, ButtonFromChannel(1000))
	require.Equal(t, Released, ButtonFromChannel(0))
	var b Button
	require.Equal(t, Released, b)
}

func TestThreeWayFromChannel(t *testing.T) {
	testCases := []struct {
		raw    uint16
		expect ThreeWay
	}{
		{1800, Up},
		{1000, Mid},
		{200, Down},
		{900, Mid},
		{1799, Mid},
		{201, Mid},
		{0, Mid},
		{2047, Mid},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expect, ThreeWayFromChannel(tc.raw), "raw %d", tc.raw)
		require.Equalf(t, tc.expect, ThreeWayFromChannelTolerance(tc.raw, 0), "raw %d", tc.raw)
	}
	var s ThreeWay
	require.Equal(t, Mid, s)
}

func TestThreeWayFromChannelTolerance(t *testing.T) {
	testCases := []struct {
		raw    uint16
		tol    uint16
		expect ThreeWay
	}{
		{1790, 10, Up},
		{1811, 10, Mid},
		{210, 10, Down},
		{189, 10, Mid},
		{1000, 10, Mid},
		{1500, 400, Up},
		{0, 200, Down},
		// tolerances are capped below SwitchToleranceLimit.
		{1000, 800, Mid},
		{1401, 800, Up},
		{1400, 800, Mid},
		{600, 65535, Mid},
		{599, 65535, Down},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expect, ThreeWayFromChannelTolerance(tc.raw, tc.tol), "raw %d tol %d", tc.raw, tc.tol)
	}
}

func TestControlStrings(t *testing.T) {
	require.Equal(t, "pressed", Pressed.String())
	require.Equal(t, "released", Released.String())
	require.Equal(t, "up", Up.String())
	require.Equal(t, "mid", Mid.String())
	require.Equal(t, "down", Down.String())
	require.Equal(t, "-0.500", Axis(-0.5).String())
}
