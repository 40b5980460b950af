package mastersvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	masterdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/dto"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

func TestBuildCatalogFilterSearchCoversThreeFields(t *testing.T) {
	req := &masterdto.MasterPaginateRequest{Search: "GN200"}
	filter := buildCatalogFilter(req, global.RoleAdmin, nil)

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("filter = %v, want $or over 品番/背番号/モデル", filter)
	}
}

func TestBuildCatalogFilterEscapesSearch(t *testing.T) {
	req := &masterdto.MasterPaginateRequest{Search: "A.B*"}
	filter := buildCatalogFilter(req, global.RoleAdmin, nil)

	or := filter["$or"].([]bson.M)
	regex := or[0]["品番"].(bson.M)["$regex"].(string)
	if regex != `A\.B\*` {
		t.Errorf("regex = %q, want meta characters escaped", regex)
	}
}

func TestBuildCatalogFilterFactoryScope(t *testing.T) {
	req := &masterdto.MasterPaginateRequest{}
	filter := buildCatalogFilter(req, global.RoleHancho, []string{"第一工場"})

	in, ok := filter["工場"].(bson.M)
	if !ok {
		t.Fatalf("filter = %v, want 工場 $in clause", filter)
	}
	access := in["$in"].([]string)
	if len(access) != 1 || access[0] != "第一工場" {
		t.Errorf("$in = %v, want [第一工場]", access)
	}
}

func TestBuildCatalogFilterCombinesClauses(t *testing.T) {
	req := &masterdto.MasterPaginateRequest{Factory: "第二工場", Category: "coating"}
	filter := buildCatalogFilter(req, global.RoleBucho, nil)

	and, ok := filter["$and"].([]bson.M)
	if !ok || len(and) != 2 {
		t.Fatalf("filter = %v, want $and with 2 clauses", filter)
	}
}
