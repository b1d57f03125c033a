package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Log in with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	result, err := h.service.Login(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Logout godoc
// @Summary Invalidate the current session token
// @Tags Auth
// @Produce json
// @Success 204
// @Router /auth/logout [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
		return
	}
	if err := h.service.Logout(parts[1]); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Describe the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, dto.LoginUser{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Kind:      string(user.Kind.Role()),
	})
}
