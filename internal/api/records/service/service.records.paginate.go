// Package recordssvc - queries over the process record collections: the
// generic paginate engine, sensor history, and manufacturing lot search.
package recordssvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/models"
	basesvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/service"
	recordsdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/dto"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/utility"
)

// projectionDeniedFields are never returned by the generic paginate
// endpoint, whatever the client projects.
var projectionDeniedFields = []string{"password", "token"}

// RecordService serves the dashboard's record queries. It resolves
// collections per request instead of binding to one, because the generic
// endpoints take the target collection from the body.
type RecordService struct{}

// NewRecordService creates a RecordService.
func NewRecordService() *RecordService {
	return &RecordService{}
}

// allowedCollections maps each database name to the collections the
// dashboard endpoints may query. The users collection is deliberately
// absent: accounts are only reachable through the users domain, which
// strips credentials.
func allowedCollections() map[string]map[string]bool {
	cfg := global.MongoDB_ServerConfig
	names := global.MongoDB_ColNames
	return map[string]map[string]bool{
		cfg.MongoDB_DBName_Data: {
			names.Kensa:        true,
			names.Press:        true,
			names.Slit:         true,
			names.SRS:          true,
			names.TempHumidity: true,
		},
		cfg.MongoDB_DBName_Master: {
			names.Master: true,
		},
	}
}

// ResolveCollection returns the handle for a database/collection pair,
// rejecting names outside the registered set.
func ResolveCollection(dbName, collectionName string) (*mongo.Collection, error) {
	if dbName == "" || collectionName == "" {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"dbName and collectionName are required",
			common.StatusBadRequest,
			nil,
		)
	}

	allowed, ok := allowedCollections()[dbName]
	if !ok {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("unknown database '%s'", dbName),
			common.StatusBadRequest,
			nil,
		)
	}
	if !allowed[collectionName] {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("unknown collection '%s' in database '%s'", collectionName, dbName),
			common.StatusBadRequest,
			nil,
		)
	}

	db, exists := global.RegistryDatabase.Get(dbName)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			fmt.Sprintf("database '%s' is not registered", dbName),
			common.StatusServiceUnavailable,
			nil,
		)
	}
	return db.Collection(collectionName), nil
}

// Paginate runs the generic paginated query: an aggregation pipeline when
// one is supplied, otherwise find + count on one snapshot.
func (s *RecordService) Paginate(ctx context.Context, req *recordsdto.PaginateRequest) (*basemodels.PaginateResult[bson.M], error) {
	coll, err := ResolveCollection(req.DBName, req.CollectionName)
	if err != nil {
		return nil, err
	}

	cfg := global.MongoDB_ServerConfig
	itemsPerPage := basemodels.EffectiveItemsPerPage(req.Limit, req.MaxLimit, cfg.Paginate_DefaultLimit, cfg.Paginate_MaxLimit)
	sort := ParseSort(req.Sort)
	svc := basesvc.NewBaseServiceMongo[bson.M](coll)

	if len(req.Aggregation) > 0 {
		pipeline := make([]interface{}, 0, len(req.Aggregation))
		for _, stage := range req.Aggregation {
			normalized, err := NormalizeQuery(stage)
			if err != nil {
				return nil, err
			}
			pipeline = append(pipeline, normalized)
		}
		var sortDoc interface{}
		if len(sort) > 0 {
			sortDoc = sort
		}
		return svc.AggregateWithPagination(ctx, pipeline, req.Page, itemsPerPage, sortDoc)
	}

	query, err := NormalizeQuery(req.Query)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if projection := inclusionProjection(req.Projection); len(projection) > 0 {
		opts.SetProjection(projection)
	}

	return svc.FindWithPagination(ctx, query, req.Page, itemsPerPage, opts)
}

// NormalizeQuery converts a decoded JSON query into a driver-ready filter:
// json.Number becomes int64/float64, `_id` strings and Extended JSON
// {"$oid": ...} become ObjectIDs. A malformed `_id` hex string is a client
// error, not an empty result.
func NormalizeQuery(query map[string]interface{}) (bson.M, error) {
	out := bson.M{}
	if query == nil {
		return out, nil
	}
	for field, value := range query {
		normalized, err := normalizeQueryValue(field, value, field == "_id")
		if err != nil {
			return nil, err
		}
		out[field] = normalized
	}
	return out, nil
}

func normalizeQueryValue(field string, value interface{}, isID bool) (interface{}, error) {
	switch v := value.(type) {
	case string:
		if isID {
			if !primitive.IsValidObjectID(v) {
				return nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("'%s' is not a valid ObjectId for field '%s'", v, field),
					common.StatusBadRequest,
					nil,
				)
			}
			oid, err := primitive.ObjectIDFromHex(v)
			if err != nil {
				return nil, common.ConvertMongoError(err)
			}
			return oid, nil
		}
		return v, nil

	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("invalid number '%s' for field '%s'", v.String(), field),
				common.StatusBadRequest,
				err,
			)
		}
		return f, nil

	case map[string]interface{}:
		if oidValue, hasOid := v["$oid"]; hasOid && len(v) == 1 {
			oidStr, ok := oidValue.(string)
			if !ok || !primitive.IsValidObjectID(oidStr) {
				return nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("invalid $oid value for field '%s'", field),
					common.StatusBadRequest,
					nil,
				)
			}
			oid, err := primitive.ObjectIDFromHex(oidStr)
			if err != nil {
				return nil, common.ConvertMongoError(err)
			}
			return oid, nil
		}

		out := bson.M{}
		for key, val := range v {
			// $eq/$in/... under an _id key still hold id values
			childIsID := key == "_id" || (isID && strings.HasPrefix(key, "$"))
			normalized, err := normalizeQueryValue(key, val, childIsID)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil

	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			normalized, err := normalizeQueryValue(field, item, isID)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil

	default:
		return value, nil
	}
}

// ParseSort reads a sort object from raw JSON with a token decoder so the
// field order the client sent is preserved. Only 1 and -1 are accepted;
// invalid entries are skipped.
func ParseSort(raw json.RawMessage) bson.D {
	sortBson := bson.D{}
	if len(raw) == 0 {
		return sortBson
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return sortBson
	}

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			break
		}
		field, ok := keyToken.(string)
		if !ok {
			continue
		}

		valueToken, err := decoder.Token()
		if err != nil {
			break
		}

		var sortValue int
		switch v := valueToken.(type) {
		case json.Number:
			intVal, err := v.Int64()
			if err != nil {
				floatVal, ferr := v.Float64()
				if ferr != nil {
					continue
				}
				intVal = int64(floatVal)
			}
			sortValue = int(intVal)
		case float64:
			sortValue = int(v)
		default:
			continue
		}

		if sortValue != 1 && sortValue != -1 {
			continue
		}

		sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
	}

	return sortBson
}

// inclusionProjection keeps only field-inclusion entries (1/true) and drops
// credential fields. Exclusion projections are ignored.
func inclusionProjection(projection map[string]interface{}) bson.M {
	out := bson.M{}
	for field, value := range projection {
		if utility.Contains(projectionDeniedFields, field) {
			continue
		}
		include := false
		switch v := value.(type) {
		case bool:
			include = v
		case json.Number:
			if i, err := v.Int64(); err == nil && i == 1 {
				include = true
			}
		case float64:
			include = v == 1
		case int:
			include = v == 1
		}
		if include {
			out[field] = 1
		}
	}
	return out
}
