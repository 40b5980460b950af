package recordssvc

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	basesvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/service"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

const (
	// LotSearchMinLength is the shortest search term the lot search accepts.
	LotSearchMinLength = 3

	// lotSearchConcurrency bounds the collection fan-out.
	lotSearchConcurrency = 4

	// lotSearchPerCollectionLimit caps hits per collection.
	lotSearchPerCollectionLimit = 100
)

// LotSearchResult groups lot search hits per collection.
type LotSearchResult struct {
	Success    bool                `json:"success"`
	SearchTerm string              `json:"searchTerm"`
	Results    map[string][]bson.M `json:"results"`
	TotalCount int64               `json:"totalCount"`
}

// LotSearchPattern builds the case-insensitive regex for a lot search term.
// The term is regex-escaped and matched two ways: exactly as typed, and
// with hyphens optional between every character, so "916-4B" finds
// "9164B"-style values and vice versa.
func LotSearchPattern(term string) string {
	asTyped := regexp.QuoteMeta(term)

	stripped := strings.ReplaceAll(term, "-", "")
	runes := []rune(stripped)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = regexp.QuoteMeta(string(r))
	}
	flexible := strings.Join(parts, "-?")

	if flexible == asTyped {
		return asTyped
	}
	return "(?:" + asTyped + ")|(?:" + flexible + ")"
}

// SearchManufacturingLot looks a lot number up across every process
// collection and the master catalog concurrently, matching 品番 or 背番号
// with a hyphen-tolerant regex.
func (s *RecordService) SearchManufacturingLot(ctx context.Context, searchTerm string) (*LotSearchResult, error) {
	term := strings.TrimSpace(searchTerm)
	if utf8.RuneCountInString(term) < LotSearchMinLength {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"search term must be at least 3 characters",
			common.StatusBadRequest,
			nil,
		)
	}

	pattern := LotSearchPattern(term)
	filter := bson.M{"$or": []bson.M{
		{"品番": bson.M{"$regex": pattern, "$options": "i"}},
		{"背番号": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	cfg := global.MongoDB_ServerConfig
	names := global.MongoDB_ColNames
	targets := []struct {
		db   string
		coll string
	}{
		{cfg.MongoDB_DBName_Data, names.Kensa},
		{cfg.MongoDB_DBName_Data, names.Press},
		{cfg.MongoDB_DBName_Data, names.Slit},
		{cfg.MongoDB_DBName_Data, names.SRS},
		{cfg.MongoDB_DBName_Master, names.Master},
	}

	hits := make([][]bson.M, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lotSearchConcurrency)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			coll, err := ResolveCollection(target.db, target.coll)
			if err != nil {
				return err
			}
			opts := options.Find().
				SetSort(bson.D{{Key: "Date", Value: -1}}).
				SetLimit(lotSearchPerCollectionLimit)
			docs, err := basesvc.NewBaseServiceMongo[bson.M](coll).Find(gctx, filter, opts)
			if err != nil {
				return err
			}
			hits[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LotSearchResult{
		Success:    true,
		SearchTerm: term,
		Results:    make(map[string][]bson.M, len(targets)),
	}
	for i, target := range targets {
		docs := hits[i]
		if docs == nil {
			docs = []bson.M{}
		}
		result.Results[target.coll] = docs
		result.TotalCount += int64(len(docs))
	}
	return result, nil
}
