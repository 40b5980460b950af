package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNullableFloatMarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"plain value", 23.5, "23.5"},
		{"integer value", 45, "45"},
		{"negative value", -3, "-3"},
		{"NaN becomes null", math.NaN(), "null"},
		{"positive infinity becomes null", math.Inf(1), "null"},
		{"negative infinity becomes null", math.Inf(-1), "null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(NullableFloat(tc.in))
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Marshal(%v) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestSensorReadingNullValues(t *testing.T) {
	reading := SensorReading{
		Device:      "sensor-01",
		Temperature: NullableFloat(21.5),
		Humidity:    NullableFloat(math.NaN()),
	}
	raw, err := json.Marshal(reading)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["temperature"] != 21.5 {
		t.Errorf("temperature = %v, want 21.5", decoded["temperature"])
	}
	if v, ok := decoded["humidity"]; !ok || v != nil {
		t.Errorf("humidity = %v, want null", v)
	}
}
