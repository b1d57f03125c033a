package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// StudentService manages student accounts and their personal timetable.
type StudentService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: s, validator: validate, logger: logger}
}

// List returns students matching the query, with their class name resolved.
func (s *StudentService) List(query dto.ListQuery) ([]dto.StudentListItem, *models.Pagination, error) {
	s.store.Lock()
	defer s.store.Unlock()

	page := query.NormalizedPage()
	total, users := s.store.ListUsers(&page, query.Query, func(u models.User) bool {
		_, ok := u.Kind.(models.Student)
		return ok
	})

	items := []dto.StudentListItem{}
	for _, u := range users {
		info := u.Kind.(models.Student)
		className := ""
		if class, ok := s.store.GetClass(info.ClassID); ok {
			className = class.Name
		}
		items = append(items, dto.StudentListItem{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			ClassName: className,
		})
	}
	pagination := &models.Pagination{Page: page, PageSize: store.PageSize, TotalCount: total}
	return items, pagination, nil
}

// Create registers a student account in an existing class and returns the
// generated credentials.
func (s *StudentService) Create(req dto.CreateStudentRequest) (dto.AccountCreated, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountCreated{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	password, err := generatePassword()
	if err != nil {
		return dto.AccountCreated{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}

	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetClass(req.ClassID); !ok {
		return dto.AccountCreated{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	user := s.store.AddUser(store.NewUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  password,
		Kind:      models.Student{ClassID: req.ClassID},
	})

	s.logger.Info("student account created",
		zap.Uint32("user_id", user.ID),
		zap.String("username", user.Username))

	return dto.AccountCreated{Username: user.Username, Password: user.Password}, nil
}

// Remove deletes the given student accounts. Every id must refer to an
// existing student, otherwise nothing is removed.
func (s *StudentService) Remove(ids []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	for _, id := range ids {
		if _, ok := s.store.GetStudentByID(id); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "unknown student id in request")
		}
	}
	s.store.RemoveUsers(ids)
	return nil
}

// Get returns the full student view.
func (s *StudentService) Get(id uint32) (dto.StudentDetail, error) {
	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetStudentByID(id)
	if !ok {
		return dto.StudentDetail{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return dto.StudentDetail{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
	}, nil
}

// Update applies the partial update, reporting whether anything changed.
// A class change must point at an existing class.
func (s *StudentService) Update(id uint32, req dto.UpdateStudentRequest) (bool, error) {
	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetStudentByID(id)
	if !ok {
		return false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	info := user.Kind.(models.Student)
	updated := false

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
		updated = true
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
		updated = true
	}
	if req.Password != nil {
		user.Password = *req.Password
		updated = true
	}
	if req.ClassID != nil {
		if _, ok := s.store.GetClass(*req.ClassID); !ok {
			return false, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		info.ClassID = *req.ClassID
		updated = true
	}

	if updated {
		user.Kind = info
		s.store.UpdateUser(user)
	}
	return updated, nil
}

// Subjects returns the detail of every subject the student is enrolled in,
// flagging the group the student belongs to.
func (s *StudentService) Subjects(id uint32) ([]dto.SubjectDetail, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetStudentByID(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	details := []dto.SubjectDetail{}
	for _, subject := range s.store.SubjectsOfStudent(id) {
		details = append(details, subjectDetail(s.store, subject, &id))
	}
	return details, nil
}

// Occupancies returns the student's personal timetable: sessions of
// subjects the student is enrolled in, narrowed to the student's group when
// the session targets one. Administration and external sessions never
// concern students.
func (s *StudentService) Occupancies(id uint32, window dto.TimeWindow) ([]dto.OccupancyDay, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetStudentByID(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	occupancies := []models.Occupancy{}
	for _, o := range s.store.ListOccupancies(window.Start, window.End) {
		if o.Type == models.OccupancyAdministration || o.Type == models.OccupancyExternal {
			continue
		}
		if o.SubjectID == nil {
			continue
		}
		group, enrolled := s.store.StudentGroup(id, *o.SubjectID)
		if !enrolled {
			continue
		}
		if o.GroupNumber != nil && *o.GroupNumber != group {
			continue
		}
		occupancies = append(occupancies, o)
	}
	return groupByDay(s.store, occupancies, window.PerDay), nil
}
