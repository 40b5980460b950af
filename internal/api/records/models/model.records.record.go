// Package models - process record models for the records domain.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcessRecord is one production submission from the factory floor
// (inspection, press, slit, or surface treatment). The named fields are the
// ones the dashboard queries on; everything else a station submits
// round-trips through Extra untouched.
type ProcessRecord struct {
	ID             primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	PartNumber     string                 `json:"品番,omitempty" bson:"品番,omitempty"`
	SerialNumber   string                 `json:"背番号,omitempty" bson:"背番号,omitempty"`
	Factory        string                 `json:"工場,omitempty" bson:"工場,omitempty"`
	Worker         string                 `json:"Worker_Name,omitempty" bson:"Worker_Name,omitempty"`
	Date           string                 `json:"Date,omitempty" bson:"Date,omitempty"`
	Total          int64                  `json:"Total,omitempty" bson:"Total,omitempty"`
	TotalNG        int64                  `json:"Total_NG,omitempty" bson:"Total_NG,omitempty"`
	ApprovalStatus string                 `json:"approvalStatus,omitempty" bson:"approvalStatus,omitempty"`
	ApprovedBy     string                 `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	Comment        string                 `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt      int64                  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt      int64                  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Extra          map[string]interface{} `json:"-" bson:",inline"`
}

// Approval status values stored on process records. A missing or empty
// approvalStatus counts as pending.
const (
	StatusPending             = "pending"
	StatusHanchoApproved      = "hancho_approved"
	StatusFullyApproved       = "fully_approved"
	StatusCorrectionNeeded    = "correction_needed"
	StatusCorrectionFromKacho = "correction_needed_from_kacho"
)

// KnownApprovalStatuses lists every storable approval status.
var KnownApprovalStatuses = []string{
	StatusPending,
	StatusHanchoApproved,
	StatusFullyApproved,
	StatusCorrectionNeeded,
	StatusCorrectionFromKacho,
}

// IsKnownApprovalStatus reports whether s is a storable status value.
func IsKnownApprovalStatus(s string) bool {
	for _, known := range KnownApprovalStatuses {
		if s == known {
			return true
		}
	}
	return false
}
