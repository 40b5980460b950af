package approvalsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	approvaldto "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/dto"
	recordsmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

func TestFoldStatusCounts(t *testing.T) {
	stats := foldStatusCounts(map[string]int64{
		"":                                        1,
		recordsmodels.StatusPending:               1,
		recordsmodels.StatusHanchoApproved:        1,
		recordsmodels.StatusFullyApproved:         1,
		recordsmodels.StatusCorrectionNeeded:      1,
		recordsmodels.StatusCorrectionFromKacho:   0,
	})
	if stats.Pending != 2 {
		t.Errorf("Pending = %d, want 2 (empty string folds into pending)", stats.Pending)
	}
	if stats.HanchoApproved != 1 || stats.FullyApproved != 1 || stats.CorrectionNeeded != 1 {
		t.Errorf("unexpected buckets: %+v", stats)
	}
	if stats.CorrectionNeededFromKacho != 0 {
		t.Errorf("CorrectionNeededFromKacho = %d, want 0", stats.CorrectionNeededFromKacho)
	}
}

func TestFoldStatusCountsIgnoresUnknown(t *testing.T) {
	stats := foldStatusCounts(map[string]int64{"archived": 7})
	if stats != (ApprovalStatistics{}) {
		t.Errorf("unknown status leaked into stats: %+v", stats)
	}
}

func TestPendingStatusFilterCoversAbsentAndEmpty(t *testing.T) {
	filter := pendingStatusFilter()
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("filter = %v, want $or with 3 clauses", filter)
	}
}

func TestBuildApprovalFilterScopesFactoryAccess(t *testing.T) {
	scope := RoleScope{Role: global.RoleHancho, FactoryAccess: []string{"第一工場"}}
	filter := buildApprovalFilter(approvaldto.ApprovalFilters{}, scope)

	in, ok := filter["工場"].(bson.M)
	if !ok {
		t.Fatalf("filter = %v, want 工場 $in clause", filter)
	}
	access, ok := in["$in"].([]string)
	if !ok || len(access) != 1 || access[0] != "第一工場" {
		t.Errorf("$in = %v, want [第一工場]", in["$in"])
	}
}

func TestBuildApprovalFilterEmptyAccessMatchesNothing(t *testing.T) {
	// A scoped user with no factory grants must get an empty result set,
	// not an unscoped one.
	filter := buildApprovalFilter(approvaldto.ApprovalFilters{}, RoleScope{Role: global.RoleHancho})
	in, ok := filter["工場"].(bson.M)
	if !ok {
		t.Fatalf("filter = %v, want 工場 $in clause", filter)
	}
	if access, ok := in["$in"].([]string); !ok || len(access) != 0 {
		t.Errorf("$in = %v, want empty slice", in["$in"])
	}
}

func TestBuildApprovalFilterAdminIsUnscoped(t *testing.T) {
	filter := buildApprovalFilter(approvaldto.ApprovalFilters{}, RoleScope{Role: global.RoleAdmin})
	if len(filter) != 0 {
		t.Errorf("filter = %v, want empty for admin with no filters", filter)
	}
}

func TestBuildApprovalFilterEscapesSearchText(t *testing.T) {
	scope := RoleScope{Role: global.RoleBucho}
	filter := buildApprovalFilter(approvaldto.ApprovalFilters{SearchText: "9.6*"}, scope)

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("filter = %v, want $or over 品番/背番号", filter)
	}
	regex := or[0]["品番"].(bson.M)["$regex"].(string)
	if regex != `9\.6\*` {
		t.Errorf("regex = %q, want meta characters escaped", regex)
	}
}

func TestBuildApprovalFilterPendingFoldsEmptyAndAbsent(t *testing.T) {
	scope := RoleScope{Role: global.RoleBucho}
	filter := buildApprovalFilter(approvaldto.ApprovalFilters{Status: recordsmodels.StatusPending}, scope)
	if _, ok := filter["$or"]; !ok {
		t.Errorf("filter = %v, want the pending $or clause", filter)
	}
}

func TestCanSetStatus(t *testing.T) {
	cases := []struct {
		role   string
		status string
		want   bool
	}{
		{global.RoleAdmin, recordsmodels.StatusFullyApproved, true},
		{global.RoleBucho, recordsmodels.StatusPending, true},
		{global.RoleKacho, recordsmodels.StatusFullyApproved, true},
		{global.RoleKacho, recordsmodels.StatusCorrectionFromKacho, true},
		{global.RoleKacho, recordsmodels.StatusHanchoApproved, false},
		{global.RoleKakaricho, recordsmodels.StatusFullyApproved, true},
		{global.RoleHancho, recordsmodels.StatusHanchoApproved, true},
		{global.RoleHancho, recordsmodels.StatusCorrectionNeeded, true},
		{global.RoleHancho, recordsmodels.StatusFullyApproved, false},
		{global.RoleMember, recordsmodels.StatusHanchoApproved, false},
		{"", recordsmodels.StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanSetStatus(tc.role, tc.status); got != tc.want {
			t.Errorf("CanSetStatus(%q, %q) = %v, want %v", tc.role, tc.status, got, tc.want)
		}
	}
}
