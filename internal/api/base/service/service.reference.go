package basesvc

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// ReferenceDefinition describes one inbound reference declared on a model
// via the `reference` struct tag. Process collections reference master data
// by field value (a part number string), so the check matches on the tagged
// field's own value rather than the document's _id.
type ReferenceDefinition struct {
	CollectionNames []string
	FieldName       string
	ErrorMessage    string
	Optional        bool
}

// ReferenceCheck is one resolved check: does any document in the collection
// have FieldName equal to Value?
type ReferenceCheck struct {
	CollectionName string
	FieldName      string
	Value          interface{}
	ErrorMessage   string
	Optional       bool
}

// ParseReferenceTag reads `reference:"collections:a;b,field:x,msg:..."` tags
// from the struct type. Multiple definitions on one field are separated by
// "|".
func ParseReferenceTag(structType reflect.Type) map[int][]ReferenceDefinition {
	defs := make(map[int][]ReferenceDefinition)
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tag := field.Tag.Get("reference")
		if tag == "" {
			continue
		}
		parsed := parseReferenceTagValue(tag)
		if len(parsed) > 0 {
			defs[i] = parsed
		}
	}
	return defs
}

func parseReferenceTagValue(tagValue string) []ReferenceDefinition {
	var defs []ReferenceDefinition
	for _, part := range strings.Split(tagValue, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		def := ReferenceDefinition{}
		for _, pair := range strings.Split(part, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			value := strings.TrimSpace(kv[1])
			switch key {
			case "collections", "collection":
				for _, name := range strings.Split(value, ";") {
					name = strings.TrimSpace(name)
					if name != "" {
						def.CollectionNames = append(def.CollectionNames, name)
					}
				}
			case "field":
				def.FieldName = value
			case "message", "msg":
				def.ErrorMessage = value
			case "optional":
				def.Optional = value == "true" || value == "1"
			}
		}
		if len(def.CollectionNames) > 0 && def.FieldName != "" {
			defs = append(defs, def)
		}
	}
	return defs
}

// CheckReferencesExist fails with 409 if any check finds referencing
// documents.
func CheckReferencesExist(ctx context.Context, checks []ReferenceCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("collection '%s' not registered for reference check", check.CollectionName),
				common.StatusInternalServerError,
				nil,
			)
		}
		filter := bson.M{check.FieldName: check.Value}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			errorMsg := check.ErrorMessage
			if errorMsg == "" {
				errorMsg = fmt.Sprintf("cannot delete: %d document(s) in collection '%s' still reference this record", count, check.CollectionName)
			} else {
				errorMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			return common.NewError(common.ErrCodeBusinessOperation, errorMsg, common.StatusConflict, nil)
		}
	}
	return nil
}

// GetReferenceCount returns how many documents in one collection reference
// the given value.
func GetReferenceCount(ctx context.Context, collectionName, fieldName string, value interface{}) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(common.ErrCodeInternalServer, fmt.Sprintf("collection '%s' not registered", collectionName), common.StatusInternalServerError, nil)
	}
	return collection.CountDocuments(ctx, bson.M{fieldName: value})
}

// validateReferencesDelete runs every `reference` tag check declared on the
// record's type before it is deleted. Models without tags pass immediately,
// as do zero-valued tagged fields.
func validateReferencesDelete(ctx context.Context, record interface{}) error {
	val := reflect.ValueOf(record)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	defs := ParseReferenceTag(val.Type())
	if len(defs) == 0 {
		return nil
	}

	var checks []ReferenceCheck
	for fieldIndex, fieldDefs := range defs {
		fieldVal := val.Field(fieldIndex)
		if !fieldVal.IsValid() || fieldVal.IsZero() {
			continue
		}
		value := fieldVal.Interface()
		for _, def := range fieldDefs {
			for _, collName := range def.CollectionNames {
				checks = append(checks, ReferenceCheck{
					CollectionName: collName,
					FieldName:      def.FieldName,
					Value:          value,
					ErrorMessage:   def.ErrorMessage,
					Optional:       def.Optional,
				})
			}
		}
	}
	return CheckReferencesExist(ctx, checks)
}
