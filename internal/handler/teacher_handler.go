package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// TeacherHandler exposes teacher account and workload endpoints.
type TeacherHandler struct {
	service *service.TeacherService
	exports *service.ExportService
}

// NewTeacherHandler constructs a teacher handler.
func NewTeacherHandler(svc *service.TeacherService, exports *service.ExportService) *TeacherHandler {
	return &TeacherHandler{service: svc, exports: exports}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param page query int false "Page"
// @Param query query string false "Name filter"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	teachers, pagination, err := h.service.List(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// Create godoc
// @Summary Create a teacher account
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body dto.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherRequest
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
// @Summary Delete teacher accounts
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body []int true "Teacher ids"
// @Success 204
// @Router /teachers [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
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
// @Summary Get one teacher
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	teacher, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// Update godoc
// @Summary Update a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body dto.UpdateTeacherRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /teachers/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTeacherRequest
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
// @Summary List the subjects a teacher takes part in
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/subjects [get]
func (h *TeacherHandler) Subjects(c *gin.Context) {
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
// @Summary List a teacher's timetable grouped per day
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Param start query int false "Window start (epoch seconds)"
// @Param end query int false "Window end (epoch seconds)"
// @Param occupancies_per_day query int false "Cap entries per day"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/occupancies [get]
func (h *TeacherHandler) Occupancies(c *gin.Context) {
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

// Workload godoc
// @Summary Get a teacher's weighted teaching service
// @Tags Teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/workload [get]
func (h *TeacherHandler) Workload(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	workload, err := h.service.Workload(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, workload)
}

// CreateExport godoc
// @Summary Queue a workload export for the teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param payload body dto.CreateExportRequest true "Export format"
// @Success 202 {object} response.Envelope
// @Router /teachers/{id}/workload/export [post]
func (h *TeacherHandler) CreateExport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	job, err := h.exports.CreateJob(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}
