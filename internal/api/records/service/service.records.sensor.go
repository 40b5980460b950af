package recordssvc

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/models"
	basesvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/service"
	recordsdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/dto"
	recordsmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// sensorHistoryLookbackDays is the default window when the request carries
// no explicit date range.
const sensorHistoryLookbackDays = 30

// measurementPattern extracts the leading number from a sensor display
// string ("23.5°C", "45%", "-3℃").
var measurementPattern = regexp.MustCompile(`^[+-]?[0-9]*\.?[0-9]+`)

// ParseMeasurement pulls the numeric value out of a sensor display string.
// An unparseable string yields NaN, which serializes as JSON null; the
// reading is kept, not dropped.
func ParseMeasurement(s string) float64 {
	s = strings.TrimSpace(s)
	match := measurementPattern.FindString(s)
	if match == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// SensorHistory returns one page of a device's temperature/humidity
// readings, newest first, with the measurement strings parsed into numbers.
func (s *RecordService) SensorHistory(ctx context.Context, req *recordsdto.SensorHistoryRequest) (*basemodels.PaginateResult[recordsmodels.SensorReading], error) {
	cfg := global.MongoDB_ServerConfig

	dbName := req.DBName
	if dbName == "" {
		dbName = cfg.MongoDB_DBName_Data
	}
	collectionName := req.CollectionName
	if collectionName == "" {
		collectionName = global.MongoDB_ColNames.TempHumidity
	}

	coll, err := ResolveCollection(dbName, collectionName)
	if err != nil {
		return nil, err
	}

	startDate, endDate := req.StartDate, req.EndDate
	if startDate == "" && endDate == "" {
		now := time.Now()
		startDate = now.AddDate(0, 0, -sensorHistoryLookbackDays).Format("2006-01-02")
		endDate = now.Format("2006-01-02")
	}

	filter := bson.M{"device": req.DeviceID}
	dateRange := bson.M{}
	if startDate != "" {
		dateRange["$gte"] = startDate
	}
	if endDate != "" {
		dateRange["$lte"] = endDate
	}
	if len(dateRange) > 0 {
		filter["Date"] = dateRange
	}
	if req.FactoryName != "" {
		filter["工場"] = req.FactoryName
	}

	itemsPerPage := basemodels.EffectiveItemsPerPage(req.Limit, req.MaxLimit, cfg.Paginate_DefaultLimit, cfg.Paginate_MaxLimit)
	opts := options.Find().SetSort(bson.D{
		{Key: "Date", Value: -1},
		{Key: "Time", Value: -1},
	})

	svc := basesvc.NewBaseServiceMongo[recordsmodels.SensorRecord](coll)
	page, err := svc.FindWithPagination(ctx, filter, req.Page, itemsPerPage, opts)
	if err != nil {
		return nil, err
	}

	readings := make([]recordsmodels.SensorReading, 0, len(page.Data))
	for _, record := range page.Data {
		readings = append(readings, recordsmodels.SensorReading{
			ID:          record.ID,
			Device:      record.Device,
			Factory:     record.Factory,
			Date:        record.Date,
			Time:        record.Time,
			Temperature: recordsmodels.NullableFloat(ParseMeasurement(record.Temperature)),
			Humidity:    recordsmodels.NullableFloat(ParseMeasurement(record.Humidity)),
		})
	}

	return &basemodels.PaginateResult[recordsmodels.SensorReading]{
		Data:       readings,
		Pagination: page.Pagination,
		Success:    true,
	}, nil
}
