// Package router registers the master domain routes: the dashboard's
// master-paginate search plus the generic catalog CRUD surface.
package router

import (
	"github.com/gofiber/fiber/v3"

	masterhdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/handler"
	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
	apirouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/router"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// Register registers the master routes. Catalog writes are limited to
// management roles; reads are open to any authenticated user and scoped by
// factory in the handler.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	h, err := masterhdl.NewMasterHandler()
	if err != nil {
		return err
	}

	auth := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(api, "/master-paginate", "POST", "/", []fiber.Handler{auth}, h.HandleMasterPaginate)

	writeRoles := []string{global.RoleBucho, global.RoleKacho}
	r.RegisterCRUDRoutes(v1, "/master", h, apirouter.ReadWriteConfig, nil, writeRoles)

	return nil
}
