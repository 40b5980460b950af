// Package database - extra indexes that cannot be expressed through model
// tags (partial filters, mixed-order compounds).
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateRecordAdditionalIndexes creates the indexes backing the approval
// list and lot search queries on one process collection. Call after
// CreateIndexes for each collection in the data database.
func CreateRecordAdditionalIndexes(ctx context.Context, coll *mongo.Collection) error {
	// (工場, Date desc, _id desc) — approval list default sort under a
	// factory scope
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "工場", Value: 1},
			{Key: "Date", Value: -1},
			{Key: "_id", Value: -1},
		},
		Options: options.Index().SetName("record_factory_date"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// (approvalStatus, Date desc) — status-filtered approval queries;
	// sparse because legacy documents predate the field
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "approvalStatus", Value: 1},
			{Key: "Date", Value: -1},
		},
		Options: options.Index().SetName("record_status_date").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// CreateUserAdditionalIndexes creates the partial unique index on username
// scoped to non-archived users, so an archived account frees its name.
func CreateUserAdditionalIndexes(ctx context.Context, coll *mongo.Collection) error {
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("user_username_active_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"delete": bson.M{"$ne": true}}),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
