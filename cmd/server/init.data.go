package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	usersdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/dto"
	userssvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/service"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/logger"
)

// InitDefaultData seeds the bootstrap admin account when the users
// collection has no active admin yet. The password comes from
// ADMIN_INITIAL_PASSWORD; without it the seed step is skipped so a fresh
// database does not end up with a known default credential.
func InitDefaultData() {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	svc, err := userssvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := svc.DocumentExists(ctx, bson.M{
		"role":   global.RoleAdmin,
		"delete": bson.M{"$ne": true},
	})
	if err != nil {
		log.WithError(err).Warn("admin existence check failed, skipping seed")
		return
	}
	if exists {
		return
	}

	if cfg.AdminInitialPassword == "" {
		log.Warn("no admin account exists and ADMIN_INITIAL_PASSWORD is not set; create one manually")
		return
	}

	user, err := svc.CreateUser(ctx, &usersdto.UserCreateInput{
		Username: cfg.AdminUsername,
		Password: cfg.AdminInitialPassword,
		Role:     global.RoleAdmin,
	})
	if err != nil {
		log.WithError(err).Error("failed to seed admin account")
		return
	}
	log.WithFields(map[string]interface{}{"username": user.Username}).Info("seeded bootstrap admin account")
}
