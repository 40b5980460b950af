// Package userssvc - account service for the users domain.
package userssvc

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	basesvc "github.com/karlsome/FreyaAdmin-sub000/internal/api/base/service"
	usersdto "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/dto"
	usersmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/common"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
)

// sessionTTL is how long a dashboard session token stays valid.
const sessionTTL = 7 * 24 * time.Hour

// UserService handles dashboard accounts.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[usersmodels.User]
}

// NewUserService creates a UserService bound to the users collection.
func NewUserService() (*UserService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("collection %s not registered: %w", global.MongoDB_ColNames.Users, common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[usersmodels.User](coll),
	}, nil
}

// FindActiveByUsername returns the non-archived account for a username.
func (s *UserService) FindActiveByUsername(ctx context.Context, username string) (usersmodels.User, error) {
	return s.FindOne(ctx, bson.M{
		"username": username,
		"delete":   bson.M{"$ne": true},
	}, nil)
}

// CreateUser hashes the password and inserts the account.
func (s *UserService) CreateUser(ctx context.Context, input *usersdto.UserCreateInput) (usersmodels.User, error) {
	var zero usersmodels.User

	exists, err := s.DocumentExists(ctx, bson.M{"username": input.Username, "delete": bson.M{"$ne": true}})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("username '%s' is already taken", input.Username),
			common.StatusConflict,
			nil,
		)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "failed to hash password", common.StatusInternalServerError, err)
	}

	role := input.Role
	if role == "" {
		role = global.RoleMember
	}

	return s.InsertOne(ctx, usersmodels.User{
		Username:      input.Username,
		Password:      string(hash),
		FullName:      input.FullName,
		Email:         input.Email,
		Role:          role,
		FactoryAccess: input.FactoryAccess,
	})
}

// Login verifies the credentials, issues a session token, and stores it on
// the account.
func (s *UserService) Login(ctx context.Context, input *usersdto.UserLoginInput) (usersmodels.User, string, error) {
	var zero usersmodels.User

	user, err := s.FindActiveByUsername(ctx, input.Username)
	if err != nil {
		return zero, "", common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return zero, "", common.ErrInvalidCredentials
	}

	token, err := s.createSessionToken(user.Username)
	if err != nil {
		return zero, "", err
	}

	updated, err := s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"token": token},
	})
	if err != nil {
		return zero, "", err
	}

	return updated, token, nil
}

// Logout clears the stored session token.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Unset: map[string]interface{}{"token": ""},
	})
	return err
}

// ChangePassword verifies the old password and stores a new hash. The
// session token is cleared so other devices must log in again.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *usersdto.UserChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return common.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "failed to hash password", common.StatusInternalServerError, err)
	}

	_, err = s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set:   map[string]interface{}{"password": string(hash)},
		Unset: map[string]interface{}{"token": ""},
	})
	return err
}

// Archive marks an account as deleted and revokes its session. Accounts are
// never removed so their name stays attached to past approvals.
func (s *UserService) Archive(ctx context.Context, userID primitive.ObjectID) (usersmodels.User, error) {
	return s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set:   map[string]interface{}{"delete": true},
		Unset: map[string]interface{}{"token": ""},
	})
}

// createSessionToken signs a JWT carrying only the username.
func (s *UserService) createSessionToken(username string) (string, error) {
	now := time.Now()
	claims := usersmodels.SessionClaims{
		Username: username,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(sessionTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(global.MongoDB_ServerConfig.JwtSecret))
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "failed to sign session token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// ParseSessionToken validates a session JWT and returns the username claim.
func ParseSessionToken(tokenStr string) (string, error) {
	claims := &usersmodels.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(global.MongoDB_ServerConfig.JwtSecret), nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return "", common.ErrTokenInvalid
	}
	return claims.Username, nil
}
