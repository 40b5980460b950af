package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/karlsome/FreyaAdmin-sub000/config"
	mastermodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/models"
	usersmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/database"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// InitGlobal wires up the process-wide state: collection names, validator,
// configuration, and the MongoDB connection.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}

func initColNames() {
	// Process record collections (data database)
	global.MongoDB_ColNames.Kensa = "kensaDB"
	global.MongoDB_ColNames.Press = "pressDB"
	global.MongoDB_ColNames.Slit = "slitDB"
	global.MongoDB_ColNames.SRS = "SRSDB"
	global.MongoDB_ColNames.TempHumidity = "tempHumidityDB"

	// Master database collections
	global.MongoDB_ColNames.Master = "masterDB"
	global.MongoDB_ColNames.Users = "users"

	logrus.Info("Initialized collection names")
}

// initValidator registers the custom validators (no_xss, strong_password,
// exists, approval_status).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := global.MongoDB_ServerConfig
	dataDB := global.MongoDB_Session.Database(cfg.MongoDB_DBName_Data)
	masterDB := global.MongoDB_Session.Database(cfg.MongoDB_DBName_Master)

	// Tag-declared indexes from the model structs
	if err := database.CreateIndexes(ctx, masterDB.Collection(global.MongoDB_ColNames.Users), usersmodels.User{}); err != nil {
		logrus.Warnf("users index creation: %v", err)
	}
	if err := database.CreateIndexes(ctx, masterDB.Collection(global.MongoDB_ColNames.Master), mastermodels.Product{}); err != nil {
		logrus.Warnf("master index creation: %v", err)
	}

	// Compound indexes the pagination and approval queries depend on
	for _, name := range []string{
		global.MongoDB_ColNames.Kensa,
		global.MongoDB_ColNames.Press,
		global.MongoDB_ColNames.Slit,
		global.MongoDB_ColNames.SRS,
	} {
		if err := database.CreateRecordAdditionalIndexes(ctx, dataDB.Collection(name)); err != nil {
			logrus.Warnf("record index creation for %s: %v", name, err)
		}
	}
	if err := database.CreateUserAdditionalIndexes(ctx, masterDB.Collection(global.MongoDB_ColNames.Users)); err != nil {
		logrus.Warnf("user index creation: %v", err)
	}

	logrus.Info("Ensured indexes")
}
