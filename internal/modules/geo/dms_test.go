package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDMS(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		axis  Axis
		want  string
	}{
		{"negative latitude", -10.5, Latitude, `10°30'0.0"S`},
		{"zero longitude", 0, Longitude, `0°0'0.0"E`},
		{"zero latitude", 0, Latitude, `0°0'0.0"N`},
		{"positive latitude", 45.5, Latitude, `45°30'0.0"N`},
		{"negative longitude", -0.5, Longitude, `0°30'0.0"W`},
		{"positive longitude", 116.25, Longitude, `116°15'0.0"E`},
		{"seconds fraction", 22.01, Latitude, `22°0'36.0"N`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDMS(tt.value, tt.axis))
		})
	}
}

func TestParseDMS(t *testing.T) {
	got, err := ParseDMS("-10.5", Latitude)
	require.NoError(t, err)
	assert.Equal(t, `10°30'0.0"S`, got)
}

func TestParseDMSNonNumeric(t *testing.T) {
	_, err := ParseDMS("not-a-number", Longitude)
	require.Error(t, err)

	_, err = ParseDMS("", Latitude)
	require.Error(t, err)
}
