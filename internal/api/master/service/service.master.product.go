// Package mastersvc - catalog service for the master domain.
package mastersvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/models"
	basesvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/service"
	masterdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/dto"
	mastermodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// MasterService handles the master product catalog.
type MasterService struct {
	*basesvc.BaseServiceMongoImpl[mastermodels.Product]
}

// NewMasterService creates a MasterService bound to the master collection.
func NewMasterService() (*MasterService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Master)
	if !exist {
		return nil, fmt.Errorf("collection %s not registered: %w", global.MongoDB_ColNames.Master, common.ErrNotFound)
	}
	return &MasterService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[mastermodels.Product](coll),
	}, nil
}

// buildCatalogFilter combines the search/factory/category filters with the
// caller's factory scope. Search input is regex-escaped before it reaches
// the driver.
func buildCatalogFilter(req *masterdto.MasterPaginateRequest, role string, factoryAccess []string) bson.M {
	clauses := []bson.M{}

	if search := strings.TrimSpace(req.Search); search != "" {
		escaped := regexp.QuoteMeta(search)
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"品番": bson.M{"$regex": escaped, "$options": "i"}},
			{"背番号": bson.M{"$regex": escaped, "$options": "i"}},
			{"モデル": bson.M{"$regex": escaped, "$options": "i"}},
		}})
	}

	if req.Factory != "" {
		clauses = append(clauses, bson.M{"工場": req.Factory})
	}
	if req.Category != "" {
		clauses = append(clauses, bson.M{"category": req.Category})
	}

	if !global.RoleSeesAllFactories(role) {
		access := factoryAccess
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

// Paginate returns one page of catalog entries matching the search and the
// caller's factory scope, part number ascending.
func (s *MasterService) Paginate(ctx context.Context, req *masterdto.MasterPaginateRequest, role string, factoryAccess []string) (*basemodels.PaginateResult[mastermodels.Product], error) {
	cfg := global.MongoDB_ServerConfig
	if req.DBName != "" && req.DBName != cfg.MongoDB_DBName_Master {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("master queries are not available on database '%s'", req.DBName),
			common.StatusBadRequest,
			nil,
		)
	}
	if req.CollectionName != "" && req.CollectionName != global.MongoDB_ColNames.Master {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("master queries are not available on collection '%s'", req.CollectionName),
			common.StatusBadRequest,
			nil,
		)
	}

	itemsPerPage := basemodels.EffectiveItemsPerPage(req.Limit, req.MaxLimit, cfg.Paginate_DefaultLimit, cfg.Paginate_MaxLimit)
	filter := buildCatalogFilter(req, role, factoryAccess)

	opts := options.Find().SetSort(bson.D{{Key: "品番", Value: 1}})
	return s.FindWithPagination(ctx, filter, req.Page, itemsPerPage, opts)
}
