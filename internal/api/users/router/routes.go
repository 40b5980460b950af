// Package router registers the users domain routes: session endpoints plus
// the account administration surface.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
	apirouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/router"
	usershdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/handler"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// Register registers the users routes. Login is public; profile endpoints
// need a session; account administration is limited to admin/部長. Accounts
// are archived, never hard-deleted.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	h, err := usershdl.NewUserHandler()
	if err != nil {
		return err
	}

	auth := middleware.AuthMiddleware()
	adminAuth := middleware.AuthMiddleware(global.RoleBucho)
	authChain := []fiber.Handler{auth}
	adminChain := []fiber.Handler{adminAuth}

	// Session. Each route gets its own group prefix: group middleware
	// binds to the path prefix, and login must stay outside the auth chain.
	apirouter.RegisterRouteWithMiddleware(api, "/auth/login", "POST", "/", nil, h.HandleLogin)
	apirouter.RegisterRouteWithMiddleware(api, "/auth/logout", "POST", "/", authChain, h.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(api, "/auth/profile", "GET", "/", authChain, h.HandleProfile)
	apirouter.RegisterRouteWithMiddleware(api, "/auth/change-password", "POST", "/", authChain, h.HandleChangePassword)

	// Account administration
	apirouter.RegisterRouteWithMiddleware(v1, "/users/create", "POST", "/", adminChain, h.HandleCreateUser)
	apirouter.RegisterRouteWithMiddleware(v1, "/users/archive", "POST", "/:id", adminChain, h.HandleArchive)
	r.RegisterCRUDRoutes(v1, "/users", h, apirouter.ArchiveConfig, []string{global.RoleBucho}, []string{global.RoleBucho})

	return nil
}
