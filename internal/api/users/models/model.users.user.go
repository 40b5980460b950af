// Package models - dashboard account (User) for the users domain.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a dashboard account stored in the master database. Role and
// FactoryAccess are the authoritative values for request scoping; whatever
// a client sends in a request body is ignored in favor of this record.
// Accounts are archived by setting Deleted, never removed.
type User struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username" index:"single:1"`
	Password      string             `json:"-" bson:"password,omitempty"`
	FullName      string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Role          string             `json:"role" bson:"role" default:"member"`
	FactoryAccess []string           `json:"factoryAccess" bson:"factoryAccess"`
	Token         string             `json:"-" bson:"token,omitempty"`
	Deleted       bool               `json:"delete" bson:"delete"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}

// IsActive reports whether the account can authenticate.
func (u *User) IsActive() bool {
	return !u.Deleted
}
