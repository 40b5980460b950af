package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
)

// JSONResponse writes a JSON response with an explicit utf-8 charset.
// Kept separate from the handler package to avoid an import cycle.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse writes the standard error envelope from middleware.
func HandleErrorResponse(c fiber.Ctx, err error) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		_ = JSONResponse(c, customErr.StatusCode, fiber.Map{
			"success": false,
			"code":    customErr.Code.Code,
			"error":   customErr.Message,
			"details": customErr.Details,
		})
		return
	}
	_ = JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"success": false,
		"code":    common.ErrCodeDatabase.Code,
		"error":   err.Error(),
	})
}
