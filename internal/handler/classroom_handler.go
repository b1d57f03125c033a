package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// ClassroomHandler exposes classroom CRUD endpoints.
type ClassroomHandler struct {
	service *service.ClassroomService
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(svc *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// List godoc
// @Summary List classrooms
// @Tags Classrooms
// @Produce json
// @Param page query int false "Page"
// @Param query query string false "Name filter"
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	classrooms, pagination, err := h.service.List(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classrooms, pagination)
}

// Get godoc
// @Summary Get one classroom
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	classroom, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classroom)
}

// Create godoc
// @Summary Create a classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body service.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req service.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	classroom, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// Update godoc
// @Summary Update a classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path int true "Classroom ID"
// @Param payload body service.UpdateClassroomRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /classrooms/{id} [put]
func (h *ClassroomHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateClassroomRequest
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
// @Summary Delete classrooms
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body []int true "Classroom ids"
// @Success 204
// @Router /classrooms [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) {
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
