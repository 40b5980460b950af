package models

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NullableFloat serializes NaN as JSON null. Sensor stations report values
// as display strings ("23.5°C", "45%"); when one cannot be parsed the
// reading is kept with a null value instead of being dropped.
type NullableFloat float64

// MarshalJSON writes null for NaN, the plain number otherwise.
func (f NullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(formatFloat(v)), nil
}

// IsNaN reports whether the reading failed to parse.
func (f NullableFloat) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// SensorRecord is one temperature/humidity submission as stored: raw
// display strings, unparsed.
type SensorRecord struct {
	ID          primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	Device      string                 `json:"device,omitempty" bson:"device,omitempty"`
	Factory     string                 `json:"工場,omitempty" bson:"工場,omitempty"`
	Date        string                 `json:"Date,omitempty" bson:"Date,omitempty"`
	Time        string                 `json:"Time,omitempty" bson:"Time,omitempty"`
	Temperature string                 `json:"Temperature,omitempty" bson:"Temperature,omitempty"`
	Humidity    string                 `json:"Humidity,omitempty" bson:"Humidity,omitempty"`
	Extra       map[string]interface{} `json:"-" bson:",inline"`
}

// SensorReading is a SensorRecord with the measurement strings parsed into
// numbers for charting.
type SensorReading struct {
	ID          primitive.ObjectID `json:"_id,omitempty"`
	Device      string             `json:"device,omitempty"`
	Factory     string             `json:"工場,omitempty"`
	Date        string             `json:"Date,omitempty"`
	Time        string             `json:"Time,omitempty"`
	Temperature NullableFloat      `json:"temperature"`
	Humidity    NullableFloat      `json:"humidity"`
}
