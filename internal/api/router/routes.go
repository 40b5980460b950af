// Package router wires domain route registrations onto the Fiber app and
// provides generic CRUD route registration for collection-backed handlers.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
)

// CRUDHandler is the operation surface a collection handler exposes to the
// generic CRUD registration below.
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	FindOneAndUpdate(c fiber.Ctx) error

	// Delete
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	FindOneAndDelete(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	UpsertMany(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router carries the app handle for domain registrations.
type Router struct {
	app *fiber.App
}

// CRUDConfig toggles which operations get routes for a collection.
type CRUDConfig struct {
	// Create
	InsOne  bool
	InsMany bool

	// Read
	Find     bool
	FindOne  bool
	FindById bool
	FindIds  bool
	Paginate bool

	// Update
	UpdOne  bool
	UpdMany bool
	UpdById bool
	FindUpd bool

	// Delete
	DelOne  bool
	DelMany bool
	DelById bool
	FindDel bool

	// Other
	Count    bool
	Distinct bool
	Upsert   bool
	UpsMany  bool
	Exists   bool
}

var (
	// ReadOnlyConfig exposes only read operations.
	ReadOnlyConfig = CRUDConfig{
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		Count: true, Distinct: true, Exists: true,
	}

	// ReadWriteConfig exposes full CRUD.
	ReadWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: true, UpdMany: true, UpdById: true,
		FindUpd: true,
		DelOne:  true, DelMany: true, DelById: true,
		FindDel: true,
		Count:   true, Distinct: true,
		Upsert: true, UpsMany: true, Exists: true,
	}

	// ArchiveConfig exposes reads and by-id updates only. Domains using it
	// provide their own create and archive routes, so inserts and deletes
	// never go through the generic surface.
	ArchiveConfig = CRUDConfig{
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdById: true,
		Count:   true, Distinct: true,
		Exists: true,
	}
)

// RoutePrefix holds the API path prefixes.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix returns the default prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter wraps the Fiber app.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware registers a route with its middleware applied
// through group.Use.
//
// Fiber v3 does not invoke middleware passed inline to router.Get(path, mw,
// handler); the only registration form that reliably runs the chain is a
// Group(prefix) with Use(mw) on it. Every route in this codebase goes through
// this function for that reason.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes registers the enabled CRUD operations for one
// collection under prefix. Read operations require any of readRoles, write
// operations any of writeRoles (empty list = any authenticated user; admin
// always passes). Every operation gets its own group prefix so the read and
// write middleware chains stay isolated.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, readRoles []string, writeRoles []string) {
	readChain := []fiber.Handler{middleware.AuthMiddleware(readRoles...)}
	writeChain := []fiber.Handler{middleware.AuthMiddleware(writeRoles...)}

	// Create operations
	if config.InsOne {
		RegisterRouteWithMiddleware(router, prefix+"/insert-one", "POST", "/", writeChain, h.InsertOne)
	}
	if config.InsMany {
		RegisterRouteWithMiddleware(router, prefix+"/insert-many", "POST", "/", writeChain, h.InsertMany)
	}

	// Read operations
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix+"/find", "GET", "/", readChain, h.Find)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix+"/find-one", "GET", "/", readChain, h.FindOne)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix+"/find-by-id", "GET", "/:id", readChain, h.FindOneById)
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix+"/find-by-ids", "POST", "/", readChain, h.FindManyByIds)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix+"/find-with-pagination", "GET", "/", readChain, h.FindWithPagination)
	}

	// Update operations
	if config.UpdOne {
		RegisterRouteWithMiddleware(router, prefix+"/update-one", "PUT", "/", writeChain, h.UpdateOne)
	}
	if config.UpdMany {
		RegisterRouteWithMiddleware(router, prefix+"/update-many", "PUT", "/", writeChain, h.UpdateMany)
	}
	if config.UpdById {
		RegisterRouteWithMiddleware(router, prefix+"/update-by-id", "PUT", "/:id", writeChain, h.UpdateById)
	}
	if config.FindUpd {
		RegisterRouteWithMiddleware(router, prefix+"/find-one-and-update", "PUT", "/", writeChain, h.FindOneAndUpdate)
	}

	// Delete operations
	if config.DelOne {
		RegisterRouteWithMiddleware(router, prefix+"/delete-one", "DELETE", "/", writeChain, h.DeleteOne)
	}
	if config.DelMany {
		RegisterRouteWithMiddleware(router, prefix+"/delete-many", "DELETE", "/", writeChain, h.DeleteMany)
	}
	if config.DelById {
		RegisterRouteWithMiddleware(router, prefix+"/delete-by-id", "DELETE", "/:id", writeChain, h.DeleteById)
	}
	if config.FindDel {
		RegisterRouteWithMiddleware(router, prefix+"/find-one-and-delete", "DELETE", "/", writeChain, h.FindOneAndDelete)
	}

	// Other operations
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix+"/count", "GET", "/", readChain, h.CountDocuments)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix+"/distinct", "GET", "/:field", readChain, h.Distinct)
	}
	if config.Upsert {
		RegisterRouteWithMiddleware(router, prefix+"/upsert-one", "POST", "/", writeChain, h.Upsert)
	}
	if config.UpsMany {
		RegisterRouteWithMiddleware(router, prefix+"/upsert-many", "POST", "/", writeChain, h.UpsertMany)
	}
	if config.Exists {
		RegisterRouteWithMiddleware(router, prefix+"/exists", "GET", "/", readChain, h.DocumentExists)
	}
}

// RegisterFunc is one domain's route registration. The api group is the /api
// prefix the dashboard endpoints live under; v1 is /api/v1 for the generic
// CRUD surface.
type RegisterFunc func(api fiber.Router, v1 fiber.Router, r *Router) error

// SetupRoutes registers every domain onto the app. Callers pass each
// domain's Register to avoid import cycles between router and the domains.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	api := app.Group(prefix.Base)
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(api, v1, r); err != nil {
			return err
		}
	}
	return nil
}
