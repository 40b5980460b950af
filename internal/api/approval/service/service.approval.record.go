// Package approvalsvc - the approval workflow over process records:
// role-scoped pagination, status statistics, factory lists, and status
// transitions.
package approvalsvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/models"
	basesvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/service"
	approvaldto "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/dto"
	recordsmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/utility"
)

// RoleScope is the server-resolved identity an approval query runs as. It
// comes from the session middleware, never from the request body.
type RoleScope struct {
	Username      string
	Role          string
	FactoryAccess []string
}

// ApprovalService serves the approval endpoints.
type ApprovalService struct{}

// NewApprovalService creates an ApprovalService and makes sure the stats
// cache invalidation hook is registered.
func NewApprovalService() *ApprovalService {
	registerStatsInvalidation()
	return &ApprovalService{}
}

// resolveProcessCollection returns the handle for an approval-bearing
// collection. Only the four process collections carry approval state.
func resolveProcessCollection(dbName, collectionName string) (*mongo.Collection, error) {
	cfg := global.MongoDB_ServerConfig
	names := global.MongoDB_ColNames

	if dbName == "" {
		dbName = cfg.MongoDB_DBName_Data
	}
	if dbName != cfg.MongoDB_DBName_Data {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("approval queries are not available on database '%s'", dbName),
			common.StatusBadRequest,
			nil,
		)
	}

	switch collectionName {
	case names.Kensa, names.Press, names.Slit, names.SRS:
	default:
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("collection '%s' does not carry approval state", collectionName),
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

// pendingStatusFilter matches every record that counts as pending: no
// approvalStatus field, an empty one, or the literal "pending".
func pendingStatusFilter() bson.M {
	return bson.M{"$or": []bson.M{
		{"approvalStatus": bson.M{"$exists": false}},
		{"approvalStatus": ""},
		{"approvalStatus": recordsmodels.StatusPending},
	}}
}

// buildApprovalFilter combines the request filters with the caller's
// factory scope. Free-text search input is regex-escaped before it reaches
// the driver.
func buildApprovalFilter(filters approvaldto.ApprovalFilters, scope RoleScope) bson.M {
	clauses := []bson.M{}

	if filters.Factory != "" {
		clauses = append(clauses, bson.M{"工場": filters.Factory})
	}

	dateRange := bson.M{}
	if filters.DateFrom != "" {
		dateRange["$gte"] = filters.DateFrom
	}
	if filters.DateTo != "" {
		dateRange["$lte"] = filters.DateTo
	}
	if len(dateRange) > 0 {
		clauses = append(clauses, bson.M{"Date": dateRange})
	}

	if filters.Status != "" {
		if filters.Status == recordsmodels.StatusPending {
			clauses = append(clauses, pendingStatusFilter())
		} else {
			clauses = append(clauses, bson.M{"approvalStatus": filters.Status})
		}
	}

	if search := strings.TrimSpace(filters.SearchText); search != "" {
		escaped := regexp.QuoteMeta(search)
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"品番": bson.M{"$regex": escaped, "$options": "i"}},
			{"背番号": bson.M{"$regex": escaped, "$options": "i"}},
		}})
	}

	if !global.RoleSeesAllFactories(scope.Role) {
		access := scope.FactoryAccess
		if access == nil {
			access = []string{}
		}
		clauses = append(clauses, bson.M{"工場": bson.M{"$in": access}})
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// Paginate returns one page of approval records for the caller's scope,
// newest date first with _id as the tiebreak.
func (s *ApprovalService) Paginate(ctx context.Context, req *approvaldto.ApprovalPaginateRequest, scope RoleScope) (*basemodels.PaginateResult[recordsmodels.ProcessRecord], error) {
	coll, err := resolveProcessCollection(req.DBName, req.CollectionName)
	if err != nil {
		return nil, err
	}

	cfg := global.MongoDB_ServerConfig
	itemsPerPage := basemodels.EffectiveItemsPerPage(req.Limit, req.MaxLimit, cfg.Paginate_DefaultLimit, cfg.Paginate_MaxLimit)
	filter := buildApprovalFilter(req.Filters, scope)

	opts := options.Find().SetSort(bson.D{
		{Key: "Date", Value: -1},
		{Key: "_id", Value: -1},
	})

	svc := basesvc.NewBaseServiceMongo[recordsmodels.ProcessRecord](coll)
	return svc.FindWithPagination(ctx, filter, req.Page, itemsPerPage, opts)
}

// Factories returns the distinct factories the caller may see in a
// collection, without blanks, sorted ascending.
func (s *ApprovalService) Factories(ctx context.Context, req *approvaldto.ApprovalFactoriesRequest, scope RoleScope) ([]string, error) {
	coll, err := resolveProcessCollection(req.DBName, req.CollectionName)
	if err != nil {
		return nil, err
	}

	filter := buildApprovalFilter(approvaldto.ApprovalFilters{}, scope)
	values, err := basesvc.NewBaseServiceMongo[recordsmodels.ProcessRecord](coll).Distinct(ctx, "工場", filter)
	if err != nil {
		return nil, err
	}

	factories := make([]string, 0, len(values))
	for _, v := range values {
		name, ok := v.(string)
		if !ok || name == "" {
			continue
		}
		factories = append(factories, name)
	}
	return utility.UniqueSortedStrings(factories), nil
}

// allowedStatusesForRole returns the status values a role may set.
func allowedStatusesForRole(role string) []string {
	switch role {
	case global.RoleAdmin, global.RoleBucho:
		return recordsmodels.KnownApprovalStatuses
	case global.RoleKacho, global.RoleKakaricho:
		return []string{
			recordsmodels.StatusFullyApproved,
			recordsmodels.StatusCorrectionFromKacho,
		}
	case global.RoleHancho:
		return []string{
			recordsmodels.StatusHanchoApproved,
			recordsmodels.StatusCorrectionNeeded,
		}
	default:
		return nil
	}
}

// CanSetStatus reports whether a role may set a status value.
func CanSetStatus(role, status string) bool {
	return utility.Contains(allowedStatusesForRole(role), status)
}

// UpdateApproval sets a record's approval status after validating the id,
// the status value, and the caller's authority over the transition. Last
// write wins; the mutation emits a data-change event which drops the
// cached statistics.
func (s *ApprovalService) UpdateApproval(ctx context.Context, req *approvaldto.ApprovalUpdateRequest, scope RoleScope) (recordsmodels.ProcessRecord, error) {
	var zero recordsmodels.ProcessRecord

	coll, err := resolveProcessCollection(req.DBName, req.CollectionName)
	if err != nil {
		return zero, err
	}

	oid, err := utility.ParseObjectID(req.ID)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, err)
	}

	if !recordsmodels.IsKnownApprovalStatus(req.NewStatus) {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("'%s' is not a valid approval status", req.NewStatus),
			common.StatusBadRequest,
			nil,
		)
	}

	if !CanSetStatus(scope.Role, req.NewStatus) {
		return zero, common.NewError(
			common.ErrCodeAuthRole,
			fmt.Sprintf("role '%s' may not set status '%s'", scope.Role, req.NewStatus),
			common.StatusForbidden,
			nil,
		)
	}

	svc := basesvc.NewBaseServiceMongo[recordsmodels.ProcessRecord](coll)

	// Factory-scoped users may only touch records in their factories
	existing, err := svc.FindOneById(ctx, oid)
	if err != nil {
		return zero, err
	}
	if !global.RoleSeesAllFactories(scope.Role) && existing.Factory != "" {
		if !utility.Contains(scope.FactoryAccess, existing.Factory) {
			return zero, common.ErrRoleForbidden
		}
	}

	update := &basesvc.UpdateData{Set: bson.M{
		"approvalStatus": req.NewStatus,
		"approvedBy":     scope.Username,
	}}
	if req.Comment != "" {
		update.Set["comment"] = req.Comment
	}

	return svc.UpdateById(ctx, oid, update)
}
