package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	usersmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/models"
	userssvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/service"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/events"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/logger"
	"github.com/karlsome/FreyaAdmin-sub000/internal/utility"
)

// AuthManager resolves the authenticated account for each request. The
// account record is the single source of truth for role and factory access;
// nothing role-related is ever read from a request body.
type AuthManager struct {
	UserCRUD *userssvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager returns the singleton AuthManager.
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

func newAuthManager() (*AuthManager, error) {
	userService, err := userssvc.NewUserService()
	if err != nil {
		return nil, err
	}
	am := &AuthManager{
		UserCRUD: userService,
		Cache:    utility.NewCache(5*time.Minute, 10*time.Minute),
	}
	registerUserInvalidation(am)
	return am, nil
}

// registerUserInvalidation drops the cached account whenever the users
// collection changes, so role edits and archives made through the generic
// CRUD surface take effect without waiting out the cache TTL.
func registerUserInvalidation(am *AuthManager) {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.Users {
			return
		}
		if user, ok := e.Document.(usersmodels.User); ok {
			am.InvalidateUser(user.Username)
		}
	})
}

// resolveUser loads the active account for a username, through a short
// cache.
func (am *AuthManager) resolveUser(ctx context.Context, username string) (usersmodels.User, error) {
	cacheKey := "auth_user:" + username
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(usersmodels.User), nil
	}

	user, err := am.UserCRUD.FindActiveByUsername(ctx, username)
	if err != nil {
		return usersmodels.User{}, err
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// InvalidateUser drops a cached account after role or access changes.
func (am *AuthManager) InvalidateUser(username string) {
	am.Cache.Delete("auth_user:" + username)
}

// AuthMiddleware authenticates the request and stores the server-resolved
// identity in the context. With requiredRoles given, the resolved role must
// be one of them (admin always passes).
//
// Identity sources, in order:
//  1. Authorization: Bearer <jwt> — the username claim is verified against
//     the signature and the stored token.
//  2. X-Dashboard-User header — only when DEV_AUTH_HEADER is enabled.
func AuthMiddleware(requiredRoles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		authManager := GetAuthManager()

		var username string
		var bearerToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				HandleErrorResponse(c, common.ErrTokenInvalid)
				return nil
			}
			bearerToken = parts[1]

			parsed, err := userssvc.ParseSessionToken(bearerToken)
			if err != nil {
				logger.GetAppLogger().WithFields(logrus.Fields{
					"path":   c.Path(),
					"method": c.Method(),
				}).Warn("auth: invalid session token")
				HandleErrorResponse(c, common.ErrTokenInvalid)
				return nil
			}
			username = parsed
		} else if global.MongoDB_ServerConfig.DevAuthHeader {
			username = c.Get("X-Dashboard-User")
		}

		if username == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("auth: missing credentials")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		user, err := authManager.resolveUser(c.Context(), username)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"username": username,
				"path":     c.Path(),
			}).Warn("auth: unknown or archived account")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// A bearer token must match the one stored at login so logout and
		// password changes revoke old sessions
		if bearerToken != "" && user.Token != bearerToken {
			HandleErrorResponse(c, common.ErrTokenExpired)
			return nil
		}

		c.Locals("user", user)
		c.Locals("username", user.Username)
		c.Locals("userRole", user.Role)
		c.Locals("factoryAccess", user.FactoryAccess)

		if len(requiredRoles) > 0 {
			allowed := user.Role == global.RoleAdmin
			for _, role := range requiredRoles {
				if user.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				logger.GetAppLogger().WithFields(logrus.Fields{
					"username": user.Username,
					"role":     user.Role,
					"path":     c.Path(),
				}).Warn("auth: role not permitted")
				HandleErrorResponse(c, common.ErrRoleForbidden)
				return nil
			}
		}

		return c.Next()
	}
}
