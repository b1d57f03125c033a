package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/service"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
	"github.com/abonnet/univ-edt-api/pkg/response"
)

// SubjectHandler exposes subject, group and scheduling endpoints.
type SubjectHandler struct {
	service *service.SubjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Param page query int false "Page"
// @Param query query string false "Name filter"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	subjects, pagination, err := h.service.List(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, pagination)
}

// Create godoc
// @Summary Create a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	subject, err := h.service.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Delete godoc
// @Summary Delete subjects
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body []int true "Subject ids"
// @Success 204
// @Router /subjects [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
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
// @Summary Get one subject with teachers and groups
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	subject, err := h.service.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subject)
}

// Update godoc
// @Summary Update a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param payload body dto.UpdateSubjectRequest true "Partial update"
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubjectRequest
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

// AddTeachers godoc
// @Summary Add teachers to a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param payload body []int true "Teacher ids"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/teachers [post]
func (h *SubjectHandler) AddTeachers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, ok := bindIDList(c)
	if !ok {
		return
	}
	if err := h.service.AddTeachers(id, ids); err != nil {
		response.Error(c, err)
		return
	}
	if len(ids) == 0 {
		response.NoContent(c)
		return
	}
	response.OK(c, nil)
}

// RemoveTeachers godoc
// @Summary Remove teachers from a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param payload body []int true "Teacher ids"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/teachers [delete]
func (h *SubjectHandler) RemoveTeachers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, ok := bindIDList(c)
	if !ok {
		return
	}
	if err := h.service.RemoveTeachers(id, ids); err != nil {
		response.Error(c, err)
		return
	}
	if len(ids) == 0 {
		response.NoContent(c)
		return
	}
	response.OK(c, nil)
}

// Students godoc
// @Summary List the students enrolled in a subject
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/students [get]
func (h *SubjectHandler) Students(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	students, err := h.service.Students(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// Enroll godoc
// @Summary Enroll students in a subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param payload body []int true "Student ids"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/students [post]
func (h *SubjectHandler) Enroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ids, ok := bindIDList(c)
	if !ok {
		return
	}
	if err := h.service.Enroll(id, ids); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// AddGroup godoc
// @Summary Add a group to a subject and rebalance enrollments
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/groups [post]
func (h *SubjectHandler) AddGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.AddGroup(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// Distribute godoc
// @Summary Rebalance enrollments across the subject's groups
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/groups/distribute [post]
func (h *SubjectHandler) Distribute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Distribute(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// RemoveGroup godoc
// @Summary Remove a group from a subject and rebalance enrollments
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/groups [delete]
func (h *SubjectHandler) RemoveGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.RemoveGroup(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil)
}

// Occupancies godoc
// @Summary List a subject's sessions grouped per day
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param start query int false "Window start (epoch seconds)"
// @Param end query int false "Window end (epoch seconds)"
// @Param occupancies_per_day query int false "Cap entries per day"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/occupancies [get]
func (h *SubjectHandler) Occupancies(c *gin.Context) {
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

// CreateOccupancy godoc
// @Summary Schedule a whole-subject session
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param payload body dto.CreateOccupancyRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /subjects/{id}/occupancies [post]
func (h *SubjectHandler) CreateOccupancy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	occupancy, err := h.service.CreateOccupancy(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, occupancy)
}

// GroupOccupancies godoc
// @Summary List the sessions of one group grouped per day
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Param group path int true "Group number"
// @Param start query int false "Window start (epoch seconds)"
// @Param end query int false "Window end (epoch seconds)"
// @Param occupancies_per_day query int false "Cap entries per day"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/groups/{group}/occupancies [get]
func (h *SubjectHandler) GroupOccupancies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	group, ok := pathID(c, "group")
	if !ok {
		return
	}
	var window dto.TimeWindow
	if err := c.ShouldBindQuery(&window); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	days, err := h.service.GroupOccupancies(id, group, window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, days)
}

// CreateGroupOccupancy godoc
// @Summary Schedule a TD or TP session for one group
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param group path int true "Group number"
// @Param payload body dto.CreateOccupancyRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /subjects/{id}/groups/{group}/occupancies [post]
func (h *SubjectHandler) CreateGroupOccupancy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	group, ok := pathID(c, "group")
	if !ok {
		return
	}
	var req dto.CreateOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return
	}
	occupancy, err := h.service.CreateGroupOccupancy(id, group, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, occupancy)
}
