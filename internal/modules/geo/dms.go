package geo

import (
	"fmt"
	"math"
	"strconv"

	"github.com/samber/oops"
)

// Axis selects the hemisphere letters used when formatting a coordinate.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// Extraction is what the external extractor reads off a photo.
type Extraction struct {
	Lat  string
	Lon  string
	Date string
}

// FormatDMS converts a signed decimal-degree value into a
// degrees/minutes/seconds string with a hemisphere letter, e.g.
// -10.5 latitude -> 10°30'0.0"S. Zero is treated as non-negative.
func FormatDMS(value float64, axis Axis) string {
	degrees := math.Trunc(value)
	minutesFloat := (math.Abs(value) - math.Abs(degrees)) * 60
	minutes := math.Trunc(minutesFloat)
	seconds := (minutesFloat - minutes) * 60

	var hemisphere string
	switch {
	case axis == Latitude && value >= 0:
		hemisphere = "N"
	case axis == Latitude:
		hemisphere = "S"
	case value >= 0:
		hemisphere = "E"
	default:
		hemisphere = "W"
	}

	return fmt.Sprintf("%d°%d'%.1f\"%s", int(math.Abs(degrees)), int(minutes), seconds, hemisphere)
}

// ParseDMS parses a raw decimal-degree string as delivered by the extractor
// and formats it. Non-numeric input is a formatting error, not a panic.
func ParseDMS(raw string, axis Axis) (string, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", oops.With("raw", raw).Wrapf(err, "not a decimal coordinate")
	}
	return FormatDMS(value, axis), nil
}
