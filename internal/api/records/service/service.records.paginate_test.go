package recordssvc

import (
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
)

func TestNormalizeQueryConvertsIDStrings(t *testing.T) {
	hex := "507f1f77bcf86cd799439011"
	out, err := NormalizeQuery(map[string]interface{}{"_id": hex})
	if err != nil {
		t.Fatalf("NormalizeQuery: %v", err)
	}
	oid, ok := out["_id"].(primitive.ObjectID)
	if !ok {
		t.Fatalf("_id = %T, want primitive.ObjectID", out["_id"])
	}
	if oid.Hex() != hex {
		t.Errorf("_id hex = %s, want %s", oid.Hex(), hex)
	}
}

func TestNormalizeQueryRejectsBadIDHex(t *testing.T) {
	_, err := NormalizeQuery(map[string]interface{}{"_id": "not-a-hex-id"})
	if err == nil {
		t.Fatal("expected error for malformed _id")
	}
	var cerr *common.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *common.Error", err)
	}
	if cerr.StatusCode != common.StatusBadRequest {
		t.Errorf("status = %d, want %d", cerr.StatusCode, common.StatusBadRequest)
	}
}

func TestNormalizeQueryExtendedJSONOid(t *testing.T) {
	hex := "507f1f77bcf86cd799439011"
	out, err := NormalizeQuery(map[string]interface{}{
		"recordId": map[string]interface{}{"$oid": hex},
	})
	if err != nil {
		t.Fatalf("NormalizeQuery: %v", err)
	}
	if _, ok := out["recordId"].(primitive.ObjectID); !ok {
		t.Errorf("recordId = %T, want primitive.ObjectID", out["recordId"])
	}
}

func TestNormalizeQueryIDOperators(t *testing.T) {
	hex := "507f1f77bcf86cd799439011"
	out, err := NormalizeQuery(map[string]interface{}{
		"_id": map[string]interface{}{"$in": []interface{}{hex}},
	})
	if err != nil {
		t.Fatalf("NormalizeQuery: %v", err)
	}
	in, ok := out["_id"].(bson.M)["$in"].([]interface{})
	if !ok || len(in) != 1 {
		t.Fatalf("$in = %#v, want one-element slice", out["_id"])
	}
	if _, ok := in[0].(primitive.ObjectID); !ok {
		t.Errorf("$in[0] = %T, want primitive.ObjectID", in[0])
	}
}

func TestNormalizeQueryNumbers(t *testing.T) {
	out, err := NormalizeQuery(map[string]interface{}{
		"count": json.Number("42"),
		"ratio": json.Number("0.5"),
	})
	if err != nil {
		t.Fatalf("NormalizeQuery: %v", err)
	}
	if got, ok := out["count"].(int64); !ok || got != 42 {
		t.Errorf("count = %#v, want int64(42)", out["count"])
	}
	if got, ok := out["ratio"].(float64); !ok || got != 0.5 {
		t.Errorf("ratio = %#v, want float64(0.5)", out["ratio"])
	}
}

func TestParseSortPreservesClientOrder(t *testing.T) {
	sort := ParseSort(json.RawMessage(`{"Date": -1, "Time": -1, "品番": 1}`))
	if len(sort) != 3 {
		t.Fatalf("len = %d, want 3", len(sort))
	}
	wantKeys := []string{"Date", "Time", "品番"}
	for i, key := range wantKeys {
		if sort[i].Key != key {
			t.Errorf("sort[%d].Key = %s, want %s", i, sort[i].Key, key)
		}
	}
	if sort[0].Value != -1 || sort[2].Value != 1 {
		t.Errorf("sort values = %v/%v, want -1/1", sort[0].Value, sort[2].Value)
	}
}

func TestParseSortSkipsInvalidDirections(t *testing.T) {
	sort := ParseSort(json.RawMessage(`{"Date": -1, "Time": "desc", "工場": 5}`))
	if len(sort) != 1 {
		t.Fatalf("len = %d, want 1 (only Date survives)", len(sort))
	}
	if sort[0].Key != "Date" {
		t.Errorf("sort[0].Key = %s, want Date", sort[0].Key)
	}
}

func TestParseSortEmptyAndMalformed(t *testing.T) {
	if got := ParseSort(nil); len(got) != 0 {
		t.Errorf("nil input: len = %d, want 0", len(got))
	}
	if got := ParseSort(json.RawMessage(`[1,2]`)); len(got) != 0 {
		t.Errorf("array input: len = %d, want 0", len(got))
	}
}

func TestInclusionProjection(t *testing.T) {
	out := inclusionProjection(map[string]interface{}{
		"品番":       json.Number("1"),
		"Date":     true,
		"工場":       json.Number("0"),
		"comment":  false,
		"password": json.Number("1"),
		"token":    true,
	})
	if len(out) != 2 {
		t.Fatalf("projection = %v, want 2 fields", out)
	}
	for _, field := range []string{"品番", "Date"} {
		if out[field] != 1 {
			t.Errorf("missing included field %s", field)
		}
	}
	for _, field := range []string{"password", "token", "工場", "comment"} {
		if _, ok := out[field]; ok {
			t.Errorf("field %s must not be projected", field)
		}
	}
}
