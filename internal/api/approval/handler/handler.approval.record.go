// Package approvalhdl - HTTP handlers for the approval domain.
package approvalhdl

import (
	"time"

	"github.com/gofiber/fiber/v3"

	approvaldto "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/dto"
	approvalsvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/service"
	basehdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/handler"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/logger"
)

// ApprovalHandler serves the approval workflow endpoints.
type ApprovalHandler struct {
	service *approvalsvc.ApprovalService
}

// NewApprovalHandler creates an ApprovalHandler.
func NewApprovalHandler() *ApprovalHandler {
	return &ApprovalHandler{
		service: approvalsvc.NewApprovalService(),
	}
}

// scopeFromLocals reads the server-resolved identity the auth middleware
// stored on the request. Body-supplied userRole/factoryAccess never reach
// the service.
func scopeFromLocals(c fiber.Ctx) approvalsvc.RoleScope {
	username, _ := c.Locals("username").(string)
	role, _ := c.Locals("userRole").(string)
	access, _ := c.Locals("factoryAccess").([]string)
	return approvalsvc.RoleScope{
		Username:      username,
		Role:          role,
		FactoryAccess: access,
	}
}

// HandlePaginate returns one page of approval records for the caller.
func (h *ApprovalHandler) HandlePaginate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req approvaldto.ApprovalPaginateRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		result, err := h.service.Paginate(c.Context(), &req, scopeFromLocals(c))
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleStats returns the approval status histogram for the caller's
// scope.
func (h *ApprovalHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req approvaldto.ApprovalStatsRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		stats, err := h.service.Stats(c.Context(), &req, scopeFromLocals(c))
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"success":    true,
			"statistics": stats,
			"query": fiber.Map{
				"collectionName": req.CollectionName,
				"filters":        req.Filters,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}

// HandleFactories returns the distinct factories visible to the caller in
// a collection.
func (h *ApprovalHandler) HandleFactories(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req approvaldto.ApprovalFactoriesRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		factories, err := h.service.Factories(c.Context(), &req, scopeFromLocals(c))
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"success":   true,
			"factories": factories,
		})
	})
}

// HandleUpdate sets a record's approval status.
func (h *ApprovalHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req approvaldto.ApprovalUpdateRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		record, err := h.service.UpdateApproval(c.Context(), &req, scopeFromLocals(c))
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		logger.LogApproval(req.CollectionName, req.ID, req.NewStatus, c)
		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"success": true,
			"data":    record,
		})
	})
}
