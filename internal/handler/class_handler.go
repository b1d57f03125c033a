package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// ClassHandler exposes class CRUD and timetable endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Param page query int false "Page"
// @Param query query string false "Name filter"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	classes, pagination, err := h.service.List(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, pagination)
}

// Get godoc
// @Summary Get one class with its total teaching service
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Create godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body store.NewClass true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req store.NewClass
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	class, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Update godoc
// @Summary Update a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body store.ClassUpdate true "Partial update"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req store.ClassUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	updated, err := h.service.Update(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !updated {
		response.NoContent(c)
		return
	}
	response.OK(c, nil)
}

// Delete godoc
// @Summary Delete classes
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body []int true "Class ids"
// @Success 204
// @Router /classes [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
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

// Occupancies godoc
// @Summary List a class timetable grouped per day
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Param start query int false "Window start (epoch seconds)"
// @Param end query int false "Window end (epoch seconds)"
// @Param occupancies_per_day query int false "Cap entries per day"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/occupancies [get]
func (h *ClassHandler) Occupancies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var window dto.TimeWindow
	if err := c.ShouldBindQuery(&window); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	days, err := h.service.Occupancies(id, window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, days)
}
