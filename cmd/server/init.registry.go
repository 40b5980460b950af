package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karlsome/FreyaAdmin-sub000/config"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// InitRegistry registers the database and collection handles the services
// resolve at runtime. Services never construct their own handles; everything
// goes through the registries so tests can swap them out.
func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections registers both database handles and every collection the
// server works with. Process record collections live in the data database;
// master data and user accounts live in the master database.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	dataDB := client.Database(cfg.MongoDB_DBName_Data)
	masterDB := client.Database(cfg.MongoDB_DBName_Master)

	for name, db := range map[string]*mongo.Database{
		cfg.MongoDB_DBName_Data:   dataDB,
		cfg.MongoDB_DBName_Master: masterDB,
	} {
		if _, err := global.RegistryDatabase.Register(name, db); err != nil {
			logrus.Errorf("Failed to register database %s: %v", name, err)
			return err
		}
	}

	dataCols := []string{
		global.MongoDB_ColNames.Kensa,
		global.MongoDB_ColNames.Press,
		global.MongoDB_ColNames.Slit,
		global.MongoDB_ColNames.SRS,
		global.MongoDB_ColNames.TempHumidity,
	}
	for _, name := range dataCols {
		if _, err := global.RegistryCollections.Register(name, dataDB.Collection(name)); err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
	}

	masterCols := []string{
		global.MongoDB_ColNames.Master,
		global.MongoDB_ColNames.Users,
	}
	for _, name := range masterCols {
		if _, err := global.RegistryCollections.Register(name, masterDB.Collection(name)); err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
	}

	return nil
}
