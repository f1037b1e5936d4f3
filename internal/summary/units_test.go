package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.01, 1, 3, 5, 13.1, 26.2, 100, 12345.678} {
		assert.InDelta(t, v, KmToMiles(MilesToKm(v)), 1e-9, "miles %v", v)
		assert.InDelta(t, v, MilesToKm(KmToMiles(v)), 1e-9, "km %v", v)
	}
}

func TestMilesToKm(t *testing.T) {
	assert.InDelta(t, 4.82802, MilesToKm(3), 1e-9)
	assert.Equal(t, 4.83, Round2(MilesToKm(3)))
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("KM")
	require.NoError(t, err)
	assert.Equal(t, Kilometers, u)

	u, err = ParseUnit("miles")
	require.NoError(t, err)
	assert.Equal(t, Miles, u)

	_, err = ParseUnit("furlongs")
	assert.Error(t, err)
}

func TestDistanceInputToggleDoesNotDrift(t *testing.T) {
	d := NewDistanceInput(Miles)
	d.Set(5)

	d.Toggle()
	assert.Equal(t, Kilometers, d.Unit())
	assert.Equal(t, 8.05, d.Display())

	d.Toggle()
	assert.Equal(t, Miles, d.Unit())
	assert.Equal(t, 5.0, d.Display())
	assert.Equal(t, 5.0, d.Miles())

	for i := 0; i < 101; i++ {
		d.Toggle()
	}
	assert.Equal(t, Kilometers, d.Unit())
	assert.Equal(t, 5.0, d.Miles())
}

func TestDistanceInputKilometersNormalizeToMiles(t *testing.T) {
	d := NewDistanceInput(Kilometers)
	d.Set(10)

	assert.InDelta(t, 6.21371, d.Miles(), 1e-5)
	assert.Equal(t, 10.0, d.Display())
}

func TestDistanceInputDefaultsToMiles(t *testing.T) {
	d := NewDistanceInput("")
	d.Set(2.5)
	assert.Equal(t, Miles, d.Unit())
	assert.Equal(t, 2.5, d.Miles())
}
