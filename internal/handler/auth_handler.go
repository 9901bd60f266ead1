package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"livepoll/internal/domain/user"
	"livepoll/internal/services"
	"livepoll/internal/transport/httpdto"
)

type AuthHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// Register creates an identity record and hands back the token the realtime
// boundary expects on connect.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_INPUT"))
		return
	}

	registered, err := h.users.Register(c.Request.Context(), req.Name, user.Role(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.auth.IssueAccessToken(registered)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.RegisterResponse{
		User:        httpdto.FromUser(registered),
		AccessToken: token,
	}))
}
