package approvalsvc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	approvaldto "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/dto"
	recordsmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/events"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/utility"
)

const statsCachePrefix = "approval_stats:"

// ApprovalStatistics is the status histogram the dashboard cards render.
// The two correction states are separate buckets.
type ApprovalStatistics struct {
	Pending                   int64 `json:"pending"`
	HanchoApproved            int64 `json:"hanchoApproved"`
	FullyApproved             int64 `json:"fullyApproved"`
	CorrectionNeeded          int64 `json:"correctionNeeded"`
	CorrectionNeededFromKacho int64 `json:"correctionNeededFromKacho"`
	TodayTotal                int64 `json:"todayTotal"`
	OverallTotal              int64 `json:"overallTotal"`
}

var (
	statsCache     *utility.Cache
	statsCacheOnce sync.Once

	statsInvalidationOnce sync.Once
)

// getStatsCache builds the cache on first use so the TTL comes from the
// loaded configuration.
func getStatsCache() *utility.Cache {
	statsCacheOnce.Do(func() {
		ttl := 30 * time.Second
		if cfg := global.MongoDB_ServerConfig; cfg != nil && cfg.StatsCacheTTL > 0 {
			ttl = time.Duration(cfg.StatsCacheTTL) * time.Second
		}
		statsCache = utility.NewCache(ttl, 2*ttl)
	})
	return statsCache
}

// registerStatsInvalidation drops every cached statistics entry whenever a
// process record changes.
func registerStatsInvalidation() {
	statsInvalidationOnce.Do(func() {
		events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
			names := global.MongoDB_ColNames
			switch e.CollectionName {
			case names.Kensa, names.Press, names.Slit, names.SRS:
				getStatsCache().DeletePrefix(statsCachePrefix)
			}
		})
	})
}

// statsCacheKey is deterministic for a given collection, scope, and filter
// set.
func statsCacheKey(req *approvaldto.ApprovalStatsRequest, scope RoleScope) string {
	access := utility.UniqueSortedStrings(scope.FactoryAccess)
	return fmt.Sprintf("%s%s:%s:%s:%+v",
		statsCachePrefix,
		req.CollectionName,
		scope.Role,
		strings.Join(access, ","),
		req.Filters,
	)
}

// statsFacetResult is the shape of the single $facet output document.
type statsFacetResult struct {
	ByStatus []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	} `bson:"byStatus"`
	Today []struct {
		Count int64 `bson:"count"`
	} `bson:"today"`
	Overall []struct {
		Count int64 `bson:"count"`
	} `bson:"overall"`
}

// foldStatusCounts maps the histogram buckets onto the statistics struct.
// An absent approvalStatus surfaces as "pending" via $ifNull; the empty
// string folds into pending here.
func foldStatusCounts(buckets map[string]int64) ApprovalStatistics {
	stats := ApprovalStatistics{}
	for status, count := range buckets {
		switch status {
		case "", recordsmodels.StatusPending:
			stats.Pending += count
		case recordsmodels.StatusHanchoApproved:
			stats.HanchoApproved += count
		case recordsmodels.StatusFullyApproved:
			stats.FullyApproved += count
		case recordsmodels.StatusCorrectionNeeded:
			stats.CorrectionNeeded += count
		case recordsmodels.StatusCorrectionFromKacho:
			stats.CorrectionNeededFromKacho += count
		}
	}
	return stats
}

// Stats computes the approval status histogram plus today's and overall
// totals in one $facet round trip. Results are cached briefly; any process
// record mutation invalidates the cache.
func (s *ApprovalService) Stats(ctx context.Context, req *approvaldto.ApprovalStatsRequest, scope RoleScope) (ApprovalStatistics, error) {
	var zero ApprovalStatistics

	key := statsCacheKey(req, scope)
	if cached, ok := getStatsCache().Get(key); ok {
		if stats, ok := cached.(ApprovalStatistics); ok {
			return stats, nil
		}
	}

	coll, err := resolveProcessCollection(req.DBName, req.CollectionName)
	if err != nil {
		return zero, err
	}

	filter := buildApprovalFilter(req.Filters, scope)
	today := time.Now().Format("2006-01-02")

	pipeline := []interface{}{}
	if len(filter) > 0 {
		pipeline = append(pipeline, bson.M{"$match": filter})
	}
	pipeline = append(pipeline, bson.M{"$facet": bson.M{
		"byStatus": []bson.M{
			{"$group": bson.M{
				"_id":   bson.M{"$ifNull": []interface{}{"$approvalStatus", recordsmodels.StatusPending}},
				"count": bson.M{"$sum": 1},
			}},
		},
		"today": []bson.M{
			{"$match": bson.M{"Date": today}},
			{"$count": "count"},
		},
		"overall": []bson.M{
			{"$count": "count"},
		},
	}})

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []statsFacetResult
	if err := cursor.All(ctx, &results); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if len(results) == 0 {
		return zero, nil
	}

	facet := results[0]
	buckets := make(map[string]int64, len(facet.ByStatus))
	for _, b := range facet.ByStatus {
		buckets[b.Status] += b.Count
	}

	stats := foldStatusCounts(buckets)
	if len(facet.Today) > 0 {
		stats.TodayTotal = facet.Today[0].Count
	}
	if len(facet.Overall) > 0 {
		stats.OverallTotal = facet.Overall[0].Count
	}

	getStatsCache().Set(key, stats)
	return stats, nil
}
