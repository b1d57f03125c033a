package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// ProfileHandler lets users edit their own account.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Update godoc
// @Summary Update the authenticated user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}

	modified, err := h.service.Update(user.Username, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !modified {
		response.NoContent(c)
		return
	}
	response.OK(c, nil)
}
