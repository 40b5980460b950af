package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	approvalrouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/approval/router"
	basehdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/handler"
	masterrouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/master/router"
	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
	recordsrouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/records/router"
	apirouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/router"
	usersrouter "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/router"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/logger"
)

// InitFiberApp builds the Fiber application with the full middleware stack
// and every domain's routes registered.
func InitFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "FreyaAdmin API",
		ServerHeader: "FreyaAdmin API",
		// Route registration mounts one group per endpoint with the
		// handler on "/". StrictRouting must stay off so /foo and /foo/
		// resolve to the same route.
		StrictRouting: false,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       10 * 1024 * 1024,
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			errorCode := common.ErrCodeInternalServer.Code

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
				switch code {
				case fiber.StatusBadRequest:
					errorCode = common.ErrCodeValidationInput.Code
				case fiber.StatusUnauthorized:
					errorCode = common.ErrCodeAuthToken.Code
				case fiber.StatusForbidden:
					errorCode = common.ErrCodeAuthRole.Code
				case fiber.StatusNotFound, fiber.StatusConflict:
					errorCode = common.ErrCodeDatabaseQuery.Code
				}
			}

			// An HTTPS client hitting the plain HTTP listener shows up as a
			// garbled request starting with the TLS handshake bytes. Answer
			// with a hint instead of logging it as a server error.
			errMsg := err.Error()
			isTLSHandshake := strings.Contains(errMsg, "unsupported http request method") &&
				(strings.Contains(errMsg, "\\x16\\x03\\x01") ||
					strings.Contains(errMsg, "\x16\x03\x01") ||
					strings.Contains(errMsg, "error when reading request headers"))
			if isTLSHandshake {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"code":    common.ErrCodeValidationInput.Code,
					"error":   "this server speaks HTTP, use http:// instead of https://",
				})
			}

			fields := map[string]interface{}{
				"code":      code,
				"errorCode": errorCode,
				"method":    c.Method(),
				"path":      c.Path(),
			}
			if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
				fields["request_id"] = rid
			}
			logger.GetErrorLogger().WithFields(fields).Error(message)

			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"code":    errorCode,
				"error":   message,
			})
		},
	})

	// Request ID, first so every later log line can carry it
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// CORS before everything else so preflight requests short-circuit here
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	var allowOrigins []string
	if corsOrigins == "*" {
		allowOrigins = []string{"*"}
	} else {
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Request-ID",
			"X-Requested-With",
			"X-Dashboard-User",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// Rate limiting per client IP
	if global.MongoDB_ServerConfig.RateLimit_Enabled && global.MongoDB_ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.MongoDB_ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.MongoDB_ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success": false,
					"code":    common.ErrCodeBusinessOperation.Code,
					"error":   "too many requests, try again later",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == "/health" || c.Method() == "OPTIONS"
			},
		}))
		logger.GetAppLogger().Infof("Rate limiting enabled: %d requests per %d seconds",
			rateLimitMax, global.MongoDB_ServerConfig.RateLimit_Window)
	} else {
		logger.GetAppLogger().Info("Rate limiting disabled")
	}

	// Panic recovery
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			fields := map[string]interface{}{
				"panic":  e,
				"method": c.Method(),
				"path":   c.Path(),
			}
			if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
				fields["request_id"] = rid
			}
			logger.GetErrorLogger().WithFields(fields).Error("panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"code":    common.ErrCodeInternalServer.Code,
				"error":   fmt.Sprintf("%v", e),
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// Per-request access log
	app.Use(middleware.RequestLogger())

	// Health stays outside the API groups so probes skip auth and limits
	app.Get("/health", basehdl.NewSystemHandler().HandleHealth)

	if err := apirouter.SetupRoutes(app,
		usersrouter.Register,
		recordsrouter.Register,
		approvalrouter.Register,
		masterrouter.Register,
	); err != nil {
		logger.GetAppLogger().Fatalf("route registration failed: %v", err)
	}

	return app
}
