package pharmatrackserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/http/mapper"
	usertypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application/types"
	userports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/notification"
)

// AuthAPI implements sign-up, sign-in and session endpoints.
type AuthAPI struct {
	service userports.Service
}

func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /v1/auth/signup
// Registers a customer account
func (api *AuthAPI) SignUp(c *gin.Context) {
	var payload userhttpmapper.SignUp
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := api.service.SignUp(c.Request.Context(), userhttpmapper.ToSignUpInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(user))
}

// Post /v1/auth/signin
// Exchanges credentials for a bearer token
func (api *AuthAPI) SignIn(c *gin.Context) {
	var payload userhttpmapper.SignIn
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := api.service.SignIn(c.Request.Context(), userhttpmapper.ToSignInInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromAuthResult(result))
}

// Post /v1/auth/signout
func (api *AuthAPI) SignOut(c *gin.Context) {
	claims := claimsFrom(c)
	if err := api.service.SignOut(c.Request.Context(), claims.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/auth/me
func (api *AuthAPI) CurrentUser(c *gin.Context) {
	user, err := api.service.Get(c.Request.Context(), claimsFrom(c).UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// UserAPI implements account administration.
type UserAPI struct {
	service userports.Service
}

func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// RoleUpdateResponse pairs the updated account with the operator notice.
type RoleUpdateResponse struct {
	User   userhttpmapper.User  `json:"user"`
	Notice *notification.Notice `json:"notice,omitempty"`
}

// Get /v1/users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUsers(users))
}

// Put /v1/users/:userId/role
// Changes the role of an account and ends its session
func (api *UserAPI) UpdateRole(c *gin.Context) {
	var payload userhttpmapper.UpdateRole
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := api.service.UpdateRole(c.Request.Context(), usertypes.UpdateRoleInput{
		UserID: c.Param("userId"),
		Role:   payload.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoleUpdateResponse{
		User:   userhttpmapper.FromDomainUser(user),
		Notice: notification.New("Role Updated", fmt.Sprintf("User's role has been successfully changed to %s.", user.Role)),
	})
}
