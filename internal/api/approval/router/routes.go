// Package router registers the approval domain routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	approvalhdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/handler"
	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
	apirouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/router"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// Register registers the approval routes under /api. Reads are open to any
// authenticated user (the service scopes results by factory); the status
// update requires an approval-capable role.
func Register(api fiber.Router, v1 fiber.Router, r *apirouter.Router) error {
	h := approvalhdl.NewApprovalHandler()

	auth := middleware.AuthMiddleware()
	readChain := []fiber.Handler{auth}

	approverAuth := middleware.AuthMiddleware(
		global.RoleBucho,
		global.RoleKacho,
		global.RoleKakaricho,
		global.RoleHancho,
	)
	writeChain := []fiber.Handler{approverAuth}

	// Each route gets its own group prefix: group middleware binds to the
	// path prefix, so flat routes must not share one.
	apirouter.RegisterRouteWithMiddleware(api, "/approval-paginate", "POST", "/", readChain, h.HandlePaginate)
	apirouter.RegisterRouteWithMiddleware(api, "/approval-stats", "POST", "/", readChain, h.HandleStats)
	apirouter.RegisterRouteWithMiddleware(api, "/approval-factories", "POST", "/", readChain, h.HandleFactories)
	apirouter.RegisterRouteWithMiddleware(api, "/approval-update", "POST", "/", writeChain, h.HandleUpdate)

	return nil
}
