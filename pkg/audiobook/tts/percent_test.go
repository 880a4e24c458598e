package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-5", "-5%"},
		{"+3dB", "+3%"},
		{"+3db", "+3%"},
		{"-2DB", "-2%"},
		{"10%", "10%"},
		{" +0% ", "+0%"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EnsurePercent(tt.in))
		})
	}
}

func TestParsePercent(t *testing.T) {
	t.Run("Should parse values within range", func(t *testing.T) {
		p, err := ParsePercent("rate", "-5", MinRatePercent, MaxRatePercent)
		require.NoError(t, err)
		assert.Equal(t, -5.0, p)

		p, err = ParsePercent("volume", "+12.5%", MinVolumePercent, MaxVolumePercent)
		require.NoError(t, err)
		assert.Equal(t, 12.5, p)
	})

	t.Run("Should reject out of range values", func(t *testing.T) {
		_, err := ParsePercent("rate", "-60%", MinRatePercent, MaxRatePercent)
		var target *ErrInvalidParameter
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "rate", target.Name)
		assert.Equal(t, "-60%", target.Value)
	})

	t.Run("Should reject non-numeric values", func(t *testing.T) {
		_, err := ParsePercent("volume", "loud", MinVolumePercent, MaxVolumePercent)
		var target *ErrInvalidParameter
		assert.ErrorAs(t, err, &target)
	})
}

func TestScaleFromPercent(t *testing.T) {
	s, err := scaleFromPercent("rate", "+10%", MinRatePercent, MaxRatePercent)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, s, 1e-9)

	s, err = scaleFromPercent("rate", "-5%", MinRatePercent, MaxRatePercent)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, s, 1e-9)
}
