// Package recordshdl - HTTP handlers for the records domain.
package recordshdl

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/handler"
	recordsdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/dto"
	recordssvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/service"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
)

// RecordHandler serves the generic paginate, sensor history, and lot
// search endpoints.
type RecordHandler struct {
	service *recordssvc.RecordService
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler() *RecordHandler {
	return &RecordHandler{
		service: recordssvc.NewRecordService(),
	}
}

// HandlePaginate runs the generic paginated query over a registered
// collection. The paginate envelope is written as-is, not wrapped.
func (h *RecordHandler) HandlePaginate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req recordsdto.PaginateRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		result, err := h.service.Paginate(c.Context(), &req)
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleSensorHistory returns one page of a device's readings with parsed
// measurements.
func (h *RecordHandler) HandleSensorHistory(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req recordsdto.SensorHistoryRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		result, err := h.service.SensorHistory(c.Context(), &req)
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}

// HandleLotSearch searches a lot number across the process collections and
// the master catalog. A too-short term is answered 200 with success:false;
// the dashboard shows the message inline rather than treating it as a
// request failure.
func (h *RecordHandler) HandleLotSearch(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req recordsdto.LotSearchRequest
		if err := basehdl.ParseBody(c, &req); err != nil {
			return basehdl.ErrorResponse(c, err)
		}

		term := strings.TrimSpace(req.SearchTerm)
		if utf8.RuneCountInString(term) < recordssvc.LotSearchMinLength {
			return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
				"success": false,
				"error":   "search term must be at least 3 characters",
			})
		}

		result, err := h.service.SearchManufacturingLot(c.Context(), term)
		if err != nil {
			return basehdl.ErrorResponse(c, err)
		}
		return basehdl.JSONResponse(c, common.StatusOK, result)
	})
}
