// Package dto - request DTOs for the master domain.
package dto

// ProductCreateInput is the body for creating a master catalog entry.
type ProductCreateInput struct {
	PartNumber   string `json:"品番" bson:"品番" validate:"required,max=64,no_xss"`
	SerialNumber string `json:"背番号,omitempty" bson:"背番号,omitempty" validate:"omitempty,max=64,no_xss"`
	Model        string `json:"モデル,omitempty" bson:"モデル,omitempty" validate:"omitempty,max=128,no_xss"`
	Factory      string `json:"工場,omitempty" bson:"工場,omitempty" validate:"omitempty,max=64,no_xss"`
	Category     string `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=64,no_xss"`
	ImageURL     string `json:"imageURL,omitempty" bson:"imageURL,omitempty" validate:"omitempty,max=512"`
}

// ProductUpdateInput is the body for a partial catalog update.
type ProductUpdateInput struct {
	SerialNumber string `json:"背番号,omitempty" bson:"背番号,omitempty" validate:"omitempty,max=64,no_xss"`
	Model        string `json:"モデル,omitempty" bson:"モデル,omitempty" validate:"omitempty,max=128,no_xss"`
	Factory      string `json:"工場,omitempty" bson:"工場,omitempty" validate:"omitempty,max=64,no_xss"`
	Category     string `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=64,no_xss"`
	ImageURL     string `json:"imageURL,omitempty" bson:"imageURL,omitempty" validate:"omitempty,max=512"`
}

// MasterPaginateRequest is the body of POST /api/master-paginate.
type MasterPaginateRequest struct {
	Page           int64  `json:"page,omitempty"`
	Limit          int64  `json:"limit,omitempty"`
	MaxLimit       int64  `json:"maxLimit,omitempty"`
	Search         string `json:"search,omitempty"`
	Factory        string `json:"factory,omitempty"`
	Category       string `json:"category,omitempty"`
	DBName         string `json:"dbName,omitempty"`
	CollectionName string `json:"collectionName,omitempty"`
}
