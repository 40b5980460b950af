// Package models holds the shared types of the repository/base layer
// (pagination envelope, count results).
package models

// Pagination is the envelope block every paginated endpoint returns.
// StartIndex/EndIndex are 1-based and meant for "X–Y of N" display text.
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	ItemsPerPage int64 `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
	StartIndex   int64 `json:"startIndex"`
	EndIndex     int64 `json:"endIndex"`
}

// NewPagination derives the envelope block from page, effective page size
// and total record count. totalPages is 0 when there are no records.
func NewPagination(page, itemsPerPage, totalRecords int64) Pagination {
	if page < 1 {
		page = 1
	}
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}

	var totalPages int64
	if totalRecords > 0 {
		totalPages = (totalRecords + itemsPerPage - 1) / itemsPerPage
	}

	startIndex := (page-1)*itemsPerPage + 1
	endIndex := page * itemsPerPage
	if endIndex > totalRecords {
		endIndex = totalRecords
	}

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecords: totalRecords,
		ItemsPerPage: itemsPerPage,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
		StartIndex:   startIndex,
		EndIndex:     endIndex,
	}
}

// EffectiveItemsPerPage resolves the page size from a request's limit and
// maxLimit: a missing limit falls back to defaultLimit, the client's
// maxLimit caps it, and hardCap bounds both.
func EffectiveItemsPerPage(limit, maxLimit, defaultLimit, hardCap int64) int64 {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if hardCap <= 0 {
		hardCap = 100
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit <= 0 || maxLimit > hardCap {
		maxLimit = hardCap
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// PaginateResult is one page of data plus its envelope.
type PaginateResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Success    bool       `json:"success"`
}

// CountResult is the result of a bare count.
type CountResult struct {
	TotalCount int64 `json:"totalCount" bson:"totalCount"`
	Limit      int64 `json:"limit" bson:"limit"`
	TotalPage  int64 `json:"totalPage" bson:"totalPage"`
}
