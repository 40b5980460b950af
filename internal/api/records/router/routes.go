// Package router registers the records domain routes: generic paginate,
// sensor history, manufacturing lot search.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
	recordshdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/handler"
	apirouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/router"
)

// Register registers the records routes under /api.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	h := recordshdl.NewRecordHandler()

	auth := middleware.AuthMiddleware()
	chain := []fiber.Handler{auth}

	// One group prefix per route: group middleware binds to the path
	// prefix, so flat routes must not share one.
	apirouter.RegisterRouteWithMiddleware(api, "/paginate", "POST", "/", chain, h.HandlePaginate)
	apirouter.RegisterRouteWithMiddleware(api, "/sensor-history", "POST", "/", chain, h.HandleSensorHistory)
	apirouter.RegisterRouteWithMiddleware(api, "/search-manufacturing-lot", "POST", "/", chain, h.HandleLotSearch)

	return nil
}
