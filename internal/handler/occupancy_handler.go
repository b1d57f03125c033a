package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// OccupancyHandler exposes the global timetable and the audit trail.
type OccupancyHandler struct {
	service *service.OccupancyService
}

// NewOccupancyHandler constructs an occupancy handler.
func NewOccupancyHandler(svc *service.OccupancyService) *OccupancyHandler {
	return &OccupancyHandler{service: svc}
}

// List godoc
// @Summary List every session grouped per day
// @Tags Occupancies
// @Produce json
// @Param start query int false "Window start (epoch seconds)"
// @Param end query int false "Window end (epoch seconds)"
// @Param occupancies_per_day query int false "Cap entries per day"
// @Success 200 {object} response.Envelope
// @Router /occupancies [get]
func (h *OccupancyHandler) List(c *gin.Context) {
	var window dto.TimeWindow
	if err := c.ShouldBindQuery(&window); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	response.OK(c, h.service.List(window))
}

// Delete godoc
// @Summary Delete sessions
// @Tags Occupancies
// @Accept json
// @Produce json
// @Param payload body []int true "Occupancy ids"
// @Success 204
// @Router /occupancies [delete]
func (h *OccupancyHandler) Delete(c *gin.Context) {
	ids, ok := bindIDList(c)
	if !ok {
		return
	}
	if err := h.service.Remove(ids); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Modifications godoc
// @Summary List recent timetable changes affecting a user
// @Tags Occupancies
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/modifications [get]
func (h *OccupancyHandler) Modifications(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	response.OK(c, h.service.Modifications(id))
}
