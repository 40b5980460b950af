// Package models - master catalog models.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is one master catalog entry. Process records reference it by
// part number (品番), so deleting a product that still has process records
// is refused with a conflict.
type Product struct {
	ID           primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	PartNumber   string                 `json:"品番,omitempty" bson:"品番,omitempty" index:"single:1" reference:"collections:kensaDB;pressDB;slitDB;SRSDB,field:品番,msg:%d process record(s) still reference this part number" validate:"omitempty,max=64,no_xss"`
	SerialNumber string                 `json:"背番号,omitempty" bson:"背番号,omitempty" index:"single:1" validate:"omitempty,max=64,no_xss"`
	Model        string                 `json:"モデル,omitempty" bson:"モデル,omitempty" validate:"omitempty,max=128,no_xss"`
	Factory      string                 `json:"工場,omitempty" bson:"工場,omitempty" index:"single:1" validate:"omitempty,max=64,no_xss"`
	Category     string                 `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=64,no_xss"`
	ImageURL     string                 `json:"imageURL,omitempty" bson:"imageURL,omitempty" validate:"omitempty,max=512"`
	CreatedAt    int64                  `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt    int64                  `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Extra        map[string]interface{} `json:"-" bson:",inline"`
}
