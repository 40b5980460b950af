package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
)

// JSONResponse writes a JSON response with an explicit utf-8 charset so
// Japanese field names render correctly everywhere.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// ErrorResponse writes the standard error envelope for an error value.
func ErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"success": false,
			"code":    customErr.Code.Code,
			"error":   customErr.Message,
			"details": customErr.Details,
		})
	}
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"success": false,
		"code":    common.ErrCodeDatabase.Code,
		"error":   err.Error(),
	})
}

// SafeHandler wraps a handler body with recover so a panic still produces a
// response.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// SafeHandlerWrapper is the standalone variant for domain handlers that do
// not embed BaseHandler.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()

			_ = ErrorResponse(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse normalizes the response envelope. Errors become
// {success:false, code, error, details}; success becomes
// {success:true, data}.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		_ = ErrorResponse(c, err)
		return
	}

	_ = JSONResponse(c, common.StatusOK, fiber.Map{
		"success": true,
		"data":    data,
	})
}
