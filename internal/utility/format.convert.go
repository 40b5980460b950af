package utility

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID converts a hex string to an ObjectID, returning the nil
// ObjectID on parse failure.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ObjectID2String converts an ObjectID to its hex string.
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}

// StringArray2ObjectIDArray converts a slice of hex strings to ObjectIDs.
func StringArray2ObjectIDArray(ids []string) []primitive.ObjectID {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		objectIDs = append(objectIDs, String2ObjectID(id))
	}
	return objectIDs
}

// ParseObjectID validates a 24-char hex ObjectID and parses it. Unlike
// String2ObjectID the failure is reported instead of swallowed.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, fmt.Errorf("'%s' is not a valid ObjectID (must be a 24-character hex string)", id)
	}
	return primitive.ObjectIDFromHex(id)
}

// ConvertStruct converts one struct into another through JSON, matching
// fields by json tag.
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(jsonData, target)
	if err != nil {
		return nil, err
	}

	return target, nil
}
