package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// CreateClassroomRequest captures the classroom creation payload.
type CreateClassroomRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity uint16 `json:"capacity" validate:"required,min=1"`
}

// UpdateClassroomRequest is the partial classroom update.
type UpdateClassroomRequest struct {
	Name     *string `json:"name"`
	Capacity *uint16 `json:"capacity"`
}

// ClassroomService coordinates classroom operations.
type ClassroomService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService constructs ClassroomService.
func NewClassroomService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{store: s, validator: validate, logger: logger}
}

// List returns classrooms with pagination metadata.
func (s *ClassroomService) List(query dto.ListQuery) ([]models.Classroom, *models.Pagination, error) {
	s.store.Lock()
	defer s.store.Unlock()

	page := query.NormalizedPage()
	total, classrooms := s.store.ListClassrooms(page, query.Query)
	pagination := &models.Pagination{Page: page, PageSize: store.PageSize, TotalCount: total}
	return classrooms, pagination, nil
}

// Get returns one classroom.
func (s *ClassroomService) Get(id uint32) (models.Classroom, error) {
	s.store.Lock()
	defer s.store.Unlock()

	classroom, ok := s.store.GetClassroom(id)
	if !ok {
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return classroom, nil
}

// Create adds a classroom.
func (s *ClassroomService) Create(req CreateClassroomRequest) (models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	s.store.Lock()
	defer s.store.Unlock()
	return s.store.AddClassroom(store.NewClassroom{Name: req.Name, Capacity: req.Capacity}), nil
}

// Update applies the partial update, reporting whether anything changed.
func (s *ClassroomService) Update(id uint32, req UpdateClassroomRequest) (bool, error) {
	s.store.Lock()
	defer s.store.Unlock()

	status := s.store.UpdateClassroom(id, store.ClassroomUpdate{Name: req.Name, Capacity: req.Capacity})
	if !status.Found {
		return false, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return status.Updated, nil
}

// Remove deletes all the given classrooms, or none.
func (s *ClassroomService) Remove(ids []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.RemoveClassrooms(ids) {
		return appErrors.Clone(appErrors.ErrNotFound, "unknown classroom id in request")
	}
	return nil
}
