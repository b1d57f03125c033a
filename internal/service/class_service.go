package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// ClassService coordinates class operations.
type ClassService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{store: s, validator: validate, logger: logger}
}

// List returns classes with pagination metadata.
func (s *ClassService) List(query dto.ListQuery) ([]models.Class, *models.Pagination, error) {
	s.store.Lock()
	defer s.store.Unlock()

	page := query.NormalizedPage()
	total, classes := s.store.ListClasses(page, query.Query)
	pagination := &models.Pagination{Page: page, PageSize: store.PageSize, TotalCount: total}
	return classes, pagination, nil
}

// Get returns the class with its total weighted teaching service.
func (s *ClassService) Get(id uint32) (dto.ClassDetail, error) {
	s.store.Lock()
	defer s.store.Unlock()

	class, ok := s.store.GetClass(id)
	if !ok {
		return dto.ClassDetail{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	occupancies := s.classOccupancies(id, nil, nil)
	return dto.ClassDetail{
		Name:         class.Name,
		Level:        class.Level,
		TotalService: uint32(serviceValue(occupancies)),
	}, nil
}

// Create adds a class.
func (s *ClassService) Create(req store.NewClass) (models.Class, error) {
	if !models.ValidClassLevel(req.Level) {
		return models.Class{}, appErrors.Clone(appErrors.ErrValidation, "unknown class level")
	}

	s.store.Lock()
	defer s.store.Unlock()
	return s.store.AddClass(req), nil
}

// Update applies the partial update, reporting whether anything changed.
func (s *ClassService) Update(id uint32, req store.ClassUpdate) (bool, error) {
	if req.Level != nil && !models.ValidClassLevel(*req.Level) {
		return false, appErrors.Clone(appErrors.ErrValidation, "unknown class level")
	}

	s.store.Lock()
	defer s.store.Unlock()

	status := s.store.UpdateClass(id, req)
	if !status.Found {
		return false, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return status.Updated, nil
}

// Remove deletes all the given classes, or none.
func (s *ClassService) Remove(ids []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.RemoveClasses(ids) {
		return appErrors.Clone(appErrors.ErrNotFound, "unknown class id in request")
	}
	return nil
}

// Occupancies returns the class timetable grouped per day.
func (s *ClassService) Occupancies(id uint32, window dto.TimeWindow) ([]dto.OccupancyDay, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetClass(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	occupancies := s.classOccupancies(id, window.Start, window.End)
	return groupByDay(s.store, occupancies, window.PerDay), nil
}

// classOccupancies filters the window down to sessions of subjects
// belonging to the class. Lock must be held.
func (s *ClassService) classOccupancies(classID uint32, from, to *uint64) []models.Occupancy {
	result := []models.Occupancy{}
	for _, o := range s.store.ListOccupancies(from, to) {
		if o.SubjectID == nil {
			continue
		}
		subject, ok := s.store.GetSubject(*o.SubjectID)
		if ok && subject.ClassID == classID {
			result = append(result, o)
		}
	}
	return result
}
