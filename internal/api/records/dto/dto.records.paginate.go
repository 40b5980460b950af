// Package dto - request DTOs for the records domain.
package dto

import "encoding/json"

// PaginateRequest is the body of POST /api/paginate, the generic paginated
// query over a registered collection. Sort stays raw JSON so the field order
// the client sent survives into the Mongo sort document.
type PaginateRequest struct {
	DBName         string                   `json:"dbName" validate:"required"`
	CollectionName string                   `json:"collectionName" validate:"required"`
	Query          map[string]interface{}   `json:"query,omitempty"`
	Sort           json.RawMessage          `json:"sort,omitempty"`
	Page           int64                    `json:"page,omitempty"`
	Limit          int64                    `json:"limit,omitempty"`
	MaxLimit       int64                    `json:"maxLimit,omitempty"`
	Aggregation    []map[string]interface{} `json:"aggregation,omitempty"`
	Projection     map[string]interface{}   `json:"projection,omitempty"`
}

// SensorHistoryRequest is the body of POST /api/sensor-history. Without an
// explicit range the query looks back 30 days from today.
type SensorHistoryRequest struct {
	DeviceID       string `json:"deviceId" validate:"required"`
	Page           int64  `json:"page,omitempty"`
	Limit          int64  `json:"limit,omitempty"`
	MaxLimit       int64  `json:"maxLimit,omitempty"`
	StartDate      string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FactoryName    string `json:"factoryName,omitempty"`
	DBName         string `json:"dbName,omitempty"`
	CollectionName string `json:"collectionName,omitempty"`
}

// LotSearchRequest is the body of POST /api/search-manufacturing-lot.
type LotSearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}
