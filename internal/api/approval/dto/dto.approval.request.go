// Package dto - request DTOs for the approval domain.
package dto

// ApprovalFilters narrows an approval query. Status accepts the stored
// values plus "pending", which also matches records with no approvalStatus
// at all.
type ApprovalFilters struct {
	Factory    string `json:"factory,omitempty"`
	DateFrom   string `json:"dateFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string `json:"dateTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status     string `json:"status,omitempty" validate:"omitempty,approval_status"`
	SearchText string `json:"searchText,omitempty"`
}

// ApprovalPaginateRequest is the body of POST /api/approval-paginate.
// UserRole and FactoryAccess are accepted for compatibility with older
// dashboard builds but ignored; the effective role comes from the session.
type ApprovalPaginateRequest struct {
	CollectionName string          `json:"collectionName" validate:"required"`
	DBName         string          `json:"dbName,omitempty"`
	Page           int64           `json:"page,omitempty"`
	Limit          int64           `json:"limit,omitempty"`
	MaxLimit       int64           `json:"maxLimit,omitempty"`
	Filters        ApprovalFilters `json:"filters,omitempty"`
	UserRole       string          `json:"userRole,omitempty"`
	FactoryAccess  []string        `json:"factoryAccess,omitempty"`
}

// ApprovalStatsRequest is the body of POST /api/approval-stats.
type ApprovalStatsRequest struct {
	CollectionName string          `json:"collectionName" validate:"required"`
	DBName         string          `json:"dbName,omitempty"`
	Filters        ApprovalFilters `json:"filters,omitempty"`
	UserRole       string          `json:"userRole,omitempty"`
	FactoryAccess  []string        `json:"factoryAccess,omitempty"`
}

// ApprovalFactoriesRequest is the body of POST /api/approval-factories.
type ApprovalFactoriesRequest struct {
	CollectionName string   `json:"collectionName" validate:"required"`
	DBName         string   `json:"dbName,omitempty"`
	UserRole       string   `json:"userRole,omitempty"`
	FactoryAccess  []string `json:"factoryAccess,omitempty"`
}

// ApprovalUpdateRequest is the body of POST /api/approval-update.
type ApprovalUpdateRequest struct {
	CollectionName string `json:"collectionName" validate:"required"`
	ID             string `json:"id" validate:"required"`
	NewStatus      string `json:"newStatus" validate:"required,approval_status"`
	Comment        string `json:"comment,omitempty" validate:"omitempty,max=1000,no_xss"`
	DBName         string `json:"dbName,omitempty"`
}
