package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// AdminHandler exposes the operational endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Dump godoc
// @Summary Dump the full store state as JSON
// @Tags Admin
// @Produce json
// @Success 200 {object} object
// @Router /admin/dump [get]
func (h *AdminHandler) Dump(c *gin.Context) {
	data, err := h.service.Dump()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// Reset godoc
// @Summary Reset the store to its seeded state
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	h.service.Reset()
	response.OK(c, nil)
}

// GetDelay godoc
// @Summary Get the artificial response delay in milliseconds
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/delay [get]
func (h *AdminHandler) GetDelay(c *gin.Context) {
	response.OK(c, gin.H{"delay_ms": h.service.Delay().Milliseconds()})
}

// SetDelay godoc
// @Summary Set the artificial response delay in milliseconds
// @Tags Admin
// @Produce json
// @Param ms path int true "Delay in milliseconds"
// @Success 200 {object} response.Envelope
// @Router /admin/delay/{ms} [put]
func (h *AdminHandler) SetDelay(c *gin.Context) {
	ms, err := strconv.ParseUint(c.Param("ms"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid delay in path"))
		return
	}
	if err := h.service.SetDelay(time.Duration(ms) * time.Millisecond); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}
