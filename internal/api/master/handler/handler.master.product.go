// Package masterhdl - HTTP handlers for the master domain.
package masterhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/handler"
	masterdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/dto"
	mastermodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/models"
	mastersvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/service"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
)

// MasterHandler serves the catalog routes. Generic CRUD comes from the
// embedded base handler, factory-scoped on 工場.
type MasterHandler struct {
	*basehdl.BaseHandler[mastermodels.Product, masterdto.ProductCreateInput, masterdto.ProductUpdateInput]
	MasterService *mastersvc.MasterService
}

// NewMasterHandler creates a MasterHandler.
func NewMasterHandler() (*MasterHandler, error) {
	masterService, err := mastersvc.NewMasterService()
	if err != nil {
		return nil, err
	}
	base := basehdl.NewBaseHandler[mastermodels.Product, masterdto.ProductCreateInput, masterdto.ProductUpdateInput](masterService)
	base.SetFactoryScope("工場")
	return &MasterHandler{
		BaseHandler:   base,
		MasterService: masterService,
	}, nil
}

// HandleMasterPaginate returns one page of catalog entries matching the
// dashboard's search box. The paginate envelope is written as-is.
func (h *MasterHandler) HandleMasterPaginate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var req masterdto.MasterPaginateRequest
		if err := h.ParseRequestBody(c, &req); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		role, _ := c.Locals("userRole").(string)
		access, _ := c.Locals("factoryAccess").([]string)

		result, err := h.MasterService.Paginate(c.Context(), &req, role, access)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}
