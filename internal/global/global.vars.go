package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/karlsome/FreyaAdmin-sub000/config"
	"github.com/karlsome/FreyaAdmin-sub000/internal/registry"
)

// CollectionName holds the MongoDB collection names the server works with.
// Process record collections live in the data database (submittedDB); master
// data and users live in the master database.
type CollectionName struct {
	// Process record collections (data database)
	Kensa        string // inspection records
	Press        string // press records
	Slit         string // slit records
	SRS          string // SRS process records
	TempHumidity string // temperature/humidity sensor records

	// Master database collections
	Master string // master product catalog
	Users  string // dashboard user accounts
}

// Global handles, assigned once during server init and read-only afterwards.
var Validate *validator.Validate              // shared validator instance
var MongoDB_Session *mongo.Client             // injected MongoDB client
var MongoDB_ServerConfig *config.Configuration // server configuration
var MongoDB_ColNames CollectionName = *new(CollectionName)

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // collection handles
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // database handles
