// Package usershdl - HTTP handlers for the users domain.
package usershdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/handler"
	"github.com/karlsome/FreyaAdmin-sub000/internal/api/middleware"
	usersdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/dto"
	usersmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/models"
	userssvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/service"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/logger"
	"github.com/karlsome/FreyaAdmin-sub000/internal/utility"
)

// UserHandler serves account routes. Generic reads come from the embedded
// base handler; writes that touch credentials have dedicated methods.
type UserHandler struct {
	*basehdl.BaseHandler[usersmodels.User, usersdto.UserCreateInput, usersdto.UserUpdateInput]
	UserService *userssvc.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler() (*UserHandler, error) {
	userService, err := userssvc.NewUserService()
	if err != nil {
		return nil, err
	}
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[usersmodels.User, usersdto.UserCreateInput, usersdto.UserUpdateInput](userService),
		UserService: userService,
	}, nil
}

// HandleLogin issues a session token for valid credentials.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input usersdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, token, err := h.UserService.Login(c.Context(), &input)
		if err != nil {
			logger.GetAppLogger().WithField("username", input.Username).Warn("login failed")
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("login", c, map[string]interface{}{"username": user.Username})
		h.HandleResponse(c, fiber.Map{
			"token": token,
			"user":  user,
		}, nil)
		return nil
	})
}

// HandleLogout revokes the caller's session token.
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(usersmodels.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		err := h.UserService.Logout(c.Context(), user.ID)
		if err == nil {
			// Drop the cached account so the revoked token stops
			// authenticating right away, not after the cache TTL
			middleware.GetAuthManager().InvalidateUser(user.Username)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleProfile returns the authenticated account.
func (h *UserHandler) HandleProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(usersmodels.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleCreateUser creates an account with a hashed password.
func (h *UserHandler) HandleCreateUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input usersdto.UserCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.CreateUser(c.Context(), &input)
		if err == nil {
			logger.LogCRUD("create", "user", user.ID.Hex(), c, nil)
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleChangePassword changes the authenticated account's password.
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(usersmodels.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input usersdto.UserChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err := h.UserService.ChangePassword(c.Context(), user.ID, &input)
		if err == nil {
			middleware.GetAuthManager().InvalidateUser(user.Username)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleArchive archives (soft-deletes) an account by id. There is no hard
// delete for users.
func (h *UserHandler) HandleArchive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")

		oid, err := utility.ParseObjectID(id)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, err))
			return nil
		}

		user, err := h.UserService.Archive(c.Context(), oid)
		if err == nil {
			middleware.GetAuthManager().InvalidateUser(user.Username)
			logger.LogCRUD("archive", "user", id, c, nil)
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}
