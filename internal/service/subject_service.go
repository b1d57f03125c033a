package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

// SubjectService manages subjects, their teaching team, their groups and
// the scheduling of their sessions.
type SubjectService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(s *store.Store, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{store: s, validator: validate, logger: logger}
}

// List returns subjects matching the query, with their class name resolved.
func (s *SubjectService) List(query dto.ListQuery) ([]dto.SubjectListItem, *models.Pagination, error) {
	s.store.Lock()
	defer s.store.Unlock()

	page := query.NormalizedPage()
	total, subjects := s.store.ListSubjects(page, query.Query, func(models.Subject) bool { return true })

	items := []dto.SubjectListItem{}
	for _, subject := range subjects {
		className := ""
		if class, ok := s.store.GetClass(subject.ClassID); ok {
			className = class.Name
		}
		items = append(items, dto.SubjectListItem{ID: subject.ID, ClassName: className, Name: subject.Name})
	}
	pagination := &models.Pagination{Page: page, PageSize: store.PageSize, TotalCount: total}
	return items, pagination, nil
}

// Create adds a subject to an existing class with its responsible teacher.
func (s *SubjectService) Create(req dto.CreateSubjectRequest) (models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Subject{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetClass(req.ClassID); !ok {
		return models.Subject{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	if _, ok := s.store.GetTeacherByID(req.TeacherInChargeID); !ok {
		return models.Subject{}, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	return s.store.AddSubject(store.NewSubject{
		ClassID:           req.ClassID,
		Name:              req.Name,
		TeacherInChargeID: req.TeacherInChargeID,
	}), nil
}

// Remove deletes all the given subjects, or none.
func (s *SubjectService) Remove(ids []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.RemoveSubjects(ids) {
		return appErrors.Clone(appErrors.ErrNotFound, "unknown subject id in request")
	}
	return nil
}

// Get returns the full subject view.
func (s *SubjectService) Get(id uint32) (dto.SubjectDetail, error) {
	s.store.Lock()
	defer s.store.Unlock()

	subject, ok := s.store.GetSubject(id)
	if !ok {
		return dto.SubjectDetail{}, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return subjectDetail(s.store, subject, nil), nil
}

// Update applies the partial update, reporting whether anything changed.
// Swapping the teacher in charge requires the new teacher to already teach
// the subject; the flag moves atomically.
func (s *SubjectService) Update(id uint32, req dto.UpdateSubjectRequest) (bool, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if req.TeacherInChargeID != nil && !s.store.Teaches(*req.TeacherInChargeID, id) {
		return false, appErrors.Clone(appErrors.ErrIllegalRequest, "teacher in charge must already teach the subject")
	}
	if req.ClassID != nil {
		if _, ok := s.store.GetClass(*req.ClassID); !ok {
			return false, appErrors.Clone(appErrors.ErrIllegalRequest, "class not found")
		}
	}

	status, err := s.store.UpdateSubject(id, store.SubjectUpdate{
		ClassID:           req.ClassID,
		Name:              req.Name,
		TeacherInChargeID: req.TeacherInChargeID,
	})
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "subject has no teacher in charge")
	}
	if !status.Found {
		return false, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return status.Updated, nil
}

// AddTeachers adds every given teacher to the subject's teaching team.
func (s *SubjectService) AddTeachers(subjectID uint32, teacherIDs []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetSubject(subjectID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	for _, id := range teacherIDs {
		if _, ok := s.store.GetTeacherByID(id); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "unknown teacher id in request")
		}
	}
	for _, id := range teacherIDs {
		s.store.SetTeaches(id, subjectID)
	}
	return nil
}

// RemoveTeachers removes teachers from the subject's team. Every target
// must teach the subject without being in charge, and at least one teacher
// must remain afterwards.
func (s *SubjectService) RemoveTeachers(subjectID uint32, teacherIDs []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetSubject(subjectID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	for _, id := range teacherIDs {
		if _, ok := s.store.GetTeacherByID(id); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "unknown teacher id in request")
		}
		if !s.store.Teaches(id, subjectID) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher does not teach the subject")
		}
		if s.store.InCharge(id, subjectID) {
			return appErrors.Clone(appErrors.ErrNotFound, "cannot remove the teacher in charge")
		}
	}

	remaining := 0
	for _, teacher := range s.store.TeachersOfSubject(subjectID) {
		removed := false
		for _, id := range teacherIDs {
			if teacher.TeacherID == id {
				removed = true
				break
			}
		}
		if !removed {
			remaining++
		}
	}
	if remaining == 0 {
		return appErrors.Clone(appErrors.ErrIllegalRequest, "a subject must keep at least one teacher")
	}

	for _, id := range teacherIDs {
		s.store.UnsetTeaches(id, subjectID)
	}
	return nil
}

// Students returns the students enrolled in the subject.
func (s *SubjectService) Students(subjectID uint32) ([]dto.StudentListItem, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetSubject(subjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	items := []dto.StudentListItem{}
	for _, u := range s.store.StudentsOfSubject(subjectID) {
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
	return items, nil
}

// Enroll adds every given student to the subject and rebalances groups.
func (s *SubjectService) Enroll(subjectID uint32, studentIDs []uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetSubject(subjectID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	for _, id := range studentIDs {
		if _, ok := s.store.GetStudentByID(id); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "unknown student id in request")
		}
	}
	for _, id := range studentIDs {
		s.store.EnrollStudent(subjectID, id)
	}
	s.store.DistributeGroups(subjectID)
	return nil
}

// AddGroup adds one group to the subject and rebalances enrollments.
func (s *SubjectService) AddGroup(subjectID uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.AddGroup(subjectID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	s.store.DistributeGroups(subjectID)
	return nil
}

// Distribute rebalances the subject's enrollments across its groups.
func (s *SubjectService) Distribute(subjectID uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.DistributeGroups(subjectID) {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return nil
}

// RemoveGroup removes one group from the subject and rebalances
// enrollments. The last group cannot be removed.
func (s *SubjectService) RemoveGroup(subjectID uint32) error {
	s.store.Lock()
	defer s.store.Unlock()

	removed, found := s.store.RemoveGroup(subjectID)
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrIllegalRequest, "a subject must keep at least one group")
	}
	s.store.DistributeGroups(subjectID)
	return nil
}

// Occupancies returns the subject's sessions grouped per day.
func (s *SubjectService) Occupancies(subjectID uint32, window dto.TimeWindow) ([]dto.OccupancyDay, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetSubject(subjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	occupancies := []models.Occupancy{}
	for _, o := range s.store.ListOccupancies(window.Start, window.End) {
		if o.SubjectID != nil && *o.SubjectID == subjectID {
			occupancies = append(occupancies, o)
		}
	}
	return groupByDay(s.store, occupancies, window.PerDay), nil
}

// GroupOccupancies returns the sessions of one group of the subject,
// grouped per day.
func (s *SubjectService) GroupOccupancies(subjectID, groupNumber uint32, window dto.TimeWindow) ([]dto.OccupancyDay, error) {
	s.store.Lock()
	defer s.store.Unlock()

	if _, ok := s.store.GetSubject(subjectID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	occupancies := []models.Occupancy{}
	for _, o := range s.store.ListOccupancies(window.Start, window.End) {
		if o.SubjectID != nil && *o.SubjectID == subjectID &&
			o.GroupNumber != nil && *o.GroupNumber == groupNumber {
			occupancies = append(occupancies, o)
		}
	}
	return groupByDay(s.store, occupancies, window.PerDay), nil
}

// CreateOccupancy schedules a whole-subject session. TD and TP sessions
// target a group and must go through CreateGroupOccupancy; CM and Projet
// sessions need a classroom.
func (s *SubjectService) CreateOccupancy(subjectID uint32, req dto.CreateOccupancyRequest) (models.Occupancy, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Occupancy{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid occupancy payload")
	}

	s.store.Lock()
	defer s.store.Unlock()

	if err := s.validateOccupancy(subjectID, req); err != nil {
		return models.Occupancy{}, err
	}

	switch req.Type {
	case models.OccupancyTD, models.OccupancyTP:
		return models.Occupancy{}, appErrors.Clone(appErrors.ErrIllegalRequest, "TD and TP sessions must target a group")
	case models.OccupancyCM, models.OccupancyProjet:
		if req.ClassroomID == nil {
			return models.Occupancy{}, appErrors.Clone(appErrors.ErrNotFound, "CM and Projet sessions need a classroom")
		}
	case models.OccupancyAdministration, models.OccupancyExternal:
	default:
		return models.Occupancy{}, appErrors.Clone(appErrors.ErrValidation, "unknown occupancy type")
	}

	return s.store.AddOccupancy(store.NewOccupancy{
		ClassroomID: req.ClassroomID,
		SubjectID:   &subjectID,
		TeacherID:   req.TeacherID,
		Start:       req.Start,
		End:         req.End,
		Type:        req.Type,
		Name:        req.Name,
	}), nil
}

// CreateGroupOccupancy schedules a TD or TP session for one group of the
// subject. The group number must be within the subject's group count and a
// classroom is mandatory.
func (s *SubjectService) CreateGroupOccupancy(subjectID, groupNumber uint32, req dto.CreateOccupancyRequest) (models.Occupancy, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Occupancy{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid occupancy payload")
	}

	s.store.Lock()
	defer s.store.Unlock()

	if err := s.validateOccupancy(subjectID, req); err != nil {
		return models.Occupancy{}, err
	}

	if req.Type != models.OccupancyTD && req.Type != models.OccupancyTP {
		return models.Occupancy{}, appErrors.Clone(appErrors.ErrIllegalRequest, "group sessions must be TD or TP")
	}
	if req.ClassroomID == nil {
		return models.Occupancy{}, appErrors.Clone(appErrors.ErrNotFound, "group sessions need a classroom")
	}

	subject, _ := s.store.GetSubject(subjectID)
	if groupNumber >= subject.GroupCount {
		return models.Occupancy{}, appErrors.Clone(appErrors.ErrNotFound, "group number out of range")
	}

	return s.store.AddOccupancy(store.NewOccupancy{
		ClassroomID: req.ClassroomID,
		GroupNumber: &groupNumber,
		SubjectID:   &subjectID,
		TeacherID:   req.TeacherID,
		Start:       req.Start,
		End:         req.End,
		Type:        req.Type,
		Name:        req.Name,
	}), nil
}

// validateOccupancy runs the shared preconditions for scheduling a session,
// in a fixed order: subject, teacher, classroom, window, teacher
// availability. Lock must be held.
func (s *SubjectService) validateOccupancy(subjectID uint32, req dto.CreateOccupancyRequest) error {
	if _, ok := s.store.GetSubject(subjectID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	if _, ok := s.store.GetTeacherByID(req.TeacherID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	if !s.store.Teaches(req.TeacherID, subjectID) {
		return appErrors.Clone(appErrors.ErrIllegalRequest, "teacher does not teach the subject")
	}

	if req.ClassroomID != nil {
		if _, ok := s.store.GetClassroom(*req.ClassroomID); !ok {
			return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		if !s.store.ClassroomFree(*req.ClassroomID, req.Start, req.End) {
			return appErrors.Clone(appErrors.ErrIllegalRequest, "classroom is already occupied")
		}
	}

	if req.End < req.Start {
		return appErrors.Clone(appErrors.ErrIllegalRequest, "session ends before it starts")
	}

	if !s.store.TeacherFree(req.TeacherID, req.Start, req.End) {
		return appErrors.Clone(appErrors.ErrIllegalRequest, "teacher is not free over the window")
	}
	return nil
}

// subjectDetail renders the full subject view. When studentID is set every
// group carries a flag telling whether it is the student's group. Lock must
// be held.
func subjectDetail(s *store.Store, subject models.Subject, studentID *uint32) dto.SubjectDetail {
	className := ""
	if class, ok := s.GetClass(subject.ClassID); ok {
		className = class.Name
	}

	teachers := []dto.SubjectTeacherItem{}
	for _, row := range s.TeachersOfSubject(subject.ID) {
		user, ok := s.GetTeacherByID(row.TeacherID)
		if !ok {
			continue
		}
		info := user.Kind.(models.Teacher)
		teachers = append(teachers, dto.SubjectTeacherItem{
			ID:          user.ID,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			InCharge:    row.InCharge,
			Email:       info.Email,
			PhoneNumber: info.Phone,
		})
	}

	var studentGroup *uint32
	if studentID != nil {
		if group, ok := s.StudentGroup(*studentID, subject.ID); ok {
			studentGroup = &group
		}
	}

	studentCount := len(s.StudentsOfSubject(subject.ID))
	groups := []dto.SubjectGroupItem{}
	for number, count := range store.GroupSizes(studentCount, subject.GroupCount) {
		item := dto.SubjectGroupItem{
			Number: uint32(number),
			Name:   fmt.Sprintf("Groupe %d", number+1),
			Count:  count,
		}
		if studentGroup != nil {
			mine := *studentGroup == uint32(number)
			item.IsStudentGroup = &mine
		}
		groups = append(groups, item)
	}

	return dto.SubjectDetail{
		ID:        subject.ID,
		Name:      subject.Name,
		ClassName: className,
		Teachers:  teachers,
		Groups:    groups,
	}
}
