package service

import (
	"crypto/rand"
	"math/big"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

const passwordLength = 10

// TeacherService manages teacher accounts and their teaching load.
type TeacherService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs TeacherService.
func NewTeacherService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: s, validator: validate, logger: logger}
}

// List returns teachers matching the query, with pagination metadata.
func (s *TeacherService) List(query dto.ListQuery) ([]dto.TeacherListItem, *models.Pagination, error) {
	s.store.Lock()
	defer s.store.Unlock()

	page := query.NormalizedPage()
	total, users := s.store.ListUsers(&page, query.Query, func(u models.User) bool {
		_, ok := u.Kind.(models.Teacher)
		return ok
	})

	items := []dto.TeacherListItem{}
	for _, u := range users {
		info := u.Kind.(models.Teacher)
		items = append(items, dto.TeacherListItem{
			ID:          u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Email:       info.Email,
			PhoneNumber: info.Phone,
		})
	}
	pagination := &models.Pagination{Page: page, PageSize: store.PageSize, TotalCount: total}
	return items, pagination, nil
}

// Create registers a teacher account and returns the generated credentials.
func (s *TeacherService) Create(req dto.CreateTeacherRequest) (dto.AccountCreated, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AccountCreated{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	if !models.ValidRank(req.Rank) {
		return dto.AccountCreated{}, appErrors.Clone(appErrors.ErrValidation, "unknown rank")
	}

	password, err := generatePassword()
	if err != nil {
		return dto.AccountCreated{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate password")
	}

	s.store.Lock()
	defer s.store.Unlock()

	user := s.store.AddUser(store.NewUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  password,
		Kind: models.Teacher{
			Phone: req.PhoneNumber,
			Email: req.Email,
			Rank:  req.Rank,
		},
	})

	s.logger.Info("teacher account created",
		zap.Uint32("user_id", user.ID),
		zap.String("username", user.Username))

	return dto.AccountCreated{Username: user.Username, Password: user.Password}, nil
}

// Remove deletes the given teacher accounts. Every id must refer to an
// existing teacher, otherwise nothing is removed.
func (s *TeacherService) Remove(ids []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	for _, id := range ids {
		if _, ok := s.store.GetTeacherByID(id); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "unknown teacher id in request")
		}
	}
	s.store.RemoveUsers(ids)
	return nil
}

// Get returns the full teacher view.
func (s *TeacherService) Get(id uint32) (dto.TeacherDetail, error) {
	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetTeacherByID(id)
	if !ok {
		return dto.TeacherDetail{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	info := user.Kind.(models.Teacher)
	return dto.TeacherDetail{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Username:    user.Username,
		Email:       info.Email,
		PhoneNumber: info.Phone,
		Rank:        info.Rank,
	}, nil
}

// Update applies the partial update, reporting whether anything changed.
// Email and phone use a double option: an explicit null clears the field.
func (s *TeacherService) Update(id uint32, req dto.UpdateTeacherRequest) (bool, error) {
	if req.Rank != nil && !models.ValidRank(*req.Rank) {
		return false, appErrors.Clone(appErrors.ErrValidation, "unknown rank")
	}

	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetTeacherByID(id)
	if !ok {
		return false, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	info := user.Kind.(models.Teacher)
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
	if req.Email.Set {
		info.Email = req.Email.Value
		updated = true
	}
	if req.PhoneNumber.Set {
		info.Phone = req.PhoneNumber.Value
		updated = true
	}
	if req.Rank != nil {
		info.Rank = *req.Rank
		updated = true
	}

	if updated {
		user.Kind = info
		s.store.UpdateUser(user)
	}
	return updated, nil
}

// Subjects returns the full detail of every subject the teacher takes
// part in.
func (s *TeacherService) Subjects(id uint32) ([]dto.SubjectDetail, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetTeacherByID(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	details := []dto.SubjectDetail{}
	for _, subject := range s.store.SubjectsOfTeacher(id) {
		details = append(details, subjectDetail(s.store, subject, nil))
	}
	return details, nil
}

// Occupancies returns the teacher's timetable grouped per day.
func (s *TeacherService) Occupancies(id uint32, window dto.TimeWindow) ([]dto.OccupancyDay, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetTeacherByID(id); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	occupancies := []models.Occupancy{}
	for _, o := range s.store.ListOccupancies(window.Start, window.End) {
		if o.TeacherID == id {
			occupancies = append(occupancies, o)
		}
	}
	return groupByDay(s.store, occupancies, window.PerDay), nil
}

// Workload sums the teacher's hours per session type and the weighted
// service total.
func (s *TeacherService) Workload(id uint32) (dto.TeacherWorkload, error) {
	s.store.Lock()
	defer s.store.Unlock()

	user, ok := s.store.GetTeacherByID(id)
	if !ok {
		return dto.TeacherWorkload{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	occupancies := []models.Occupancy{}
	for _, o := range s.store.ListOccupancies(nil, nil) {
		if o.TeacherID == id {
			occupancies = append(occupancies, o)
		}
	}

	return dto.TeacherWorkload{
		TeacherID:    user.ID,
		TeacherName:  user.FullName(),
		ServiceValue: serviceValue(occupancies),
		Hours:        countHours(occupancies),
	}, nil
}

// generatePassword draws an alphanumeric password from crypto/rand.
func generatePassword() (string, error) {
	buf := make([]byte, passwordLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
