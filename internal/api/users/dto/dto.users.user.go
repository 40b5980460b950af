// Package dto - request DTOs for the users domain.
package dto

// UserCreateInput is the body for creating a dashboard account.
type UserCreateInput struct {
	Username      string   `json:"username" bson:"username" validate:"required,min=3,max=64,no_xss"`
	Password      string   `json:"password" bson:"password" validate:"required,strong_password"`
	FullName      string   `json:"fullName,omitempty" bson:"fullName,omitempty" validate:"omitempty,max=128,no_xss"`
	Email         string   `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Role          string   `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=admin 部長 課長 係長 班長 member"`
	FactoryAccess []string `json:"factoryAccess,omitempty" bson:"factoryAccess,omitempty"`
}

// UserUpdateInput is the body for a partial account update. Password
// changes go through the dedicated endpoint, not here.
type UserUpdateInput struct {
	FullName      string   `json:"fullName,omitempty" bson:"fullName,omitempty" validate:"omitempty,max=128,no_xss"`
	Email         string   `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Role          string   `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=admin 部長 課長 係長 班長 member"`
	FactoryAccess []string `json:"factoryAccess,omitempty" bson:"factoryAccess,omitempty"`
}

// UserLoginInput is the body for POST /auth/login.
type UserLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserChangePasswordInput is the body for changing a password.
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}
