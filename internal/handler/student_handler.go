package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// StudentHandler exposes student account and timetable endpoints.
type StudentHandler struct {
	service *service.StudentService
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param page query int false "Page"
// @Param query query string false "Name filter"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	students, pagination, err := h.service.List(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Create godoc
// @Summary Create a student account
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	account, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

// Delete godoc
// @Summary Delete student accounts
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body []int true "Student ids"
// @Success 204
// @Router /students [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
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

// Get godoc
// @Summary Get one student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	student, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Update godoc
// @Summary Update a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
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

// Subjects godoc
// @Summary List the subjects a student is enrolled in
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/subjects [get]
func (h *StudentHandler) Subjects(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	subjects, err := h.service.Subjects(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// Occupancies godoc
// @Summary List a student's personal timetable grouped per day
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Param start query int false "Window start (epoch seconds)"
// @Param end query int false "Window end (epoch seconds)"
// @Param occupancies_per_day query int false "Cap entries per day"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/occupancies [get]
func (h *StudentHandler) Occupancies(c *gin.Context) {
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
