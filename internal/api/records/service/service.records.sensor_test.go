package recordssvc

import (
	"math"
	"testing"
)

func TestParseMeasurement(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"23.5°C", 23.5},
		{"45%", 45},
		{"-3℃", -3},
		{"+12.25", 12.25},
		{".5", 0.5},
		{"  18.0 °C ", 18},
		{"0", 0},
	}
	for _, tc := range cases {
		if got := ParseMeasurement(tc.in); got != tc.want {
			t.Errorf("ParseMeasurement(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMeasurementUnparseable(t *testing.T) {
	for _, in := range []string{"", "N/A", "エラー", "--", "°C"} {
		if got := ParseMeasurement(in); !math.IsNaN(got) {
			t.Errorf("ParseMeasurement(%q) = %v, want NaN", in, got)
		}
	}
}
