package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abonnet/univ-edt-api/internal/dto"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/store"
	appErrors "github.com/abonnet/univ-edt-api/pkg/errors"
)

func TestStudentCreateRequiresExistingClass(t *testing.T) {
	f := newFixture(t)
	svc := NewStudentService(f.store, nil, nil)

	_, err := svc.Create(dto.CreateStudentRequest{
		FirstName: "Léa", LastName: "Moreau", ClassID: 999,
	})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)

	account, err := svc.Create(dto.CreateStudentRequest{
		FirstName: "Léa", LastName: "Moreau", ClassID: f.class.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "moreau.lea", account.Username)
	assert.Len(t, account.Password, passwordLength)
}

func TestStudentUpdateClassChange(t *testing.T) {
	f := newFixture(t)
	svc := NewStudentService(f.store, nil, nil)

	badClass := uint32(999)
	_, err := svc.Update(f.student.ID, dto.UpdateStudentRequest{ClassID: &badClass})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)

	other := f.store.AddClass(store.NewClass{Name: "M1 Informatique", Level: models.LevelM1})
	updated, err := svc.Update(f.student.ID, dto.UpdateStudentRequest{ClassID: &other.ID})
	require.NoError(t, err)
	assert.True(t, updated)

	items, _, err := svc.List(dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "M1 Informatique", items[0].ClassName)

	// Teacher ids are not students.
	_, err = svc.Update(f.teacher.ID, dto.UpdateStudentRequest{})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}

func TestStudentSubjectsFlagsOwnGroup(t *testing.T) {
	f := newFixture(t)
	svc := NewStudentService(f.store, nil, nil)

	details, err := svc.Subjects(f.student.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Groups, 1)
	require.NotNil(t, details[0].Groups[0].IsStudentGroup)
	assert.True(t, *details[0].Groups[0].IsStudentGroup)
}

func TestStudentOccupanciesFilter(t *testing.T) {
	f := newFixture(t)
	svc := NewStudentService(f.store, nil, nil)

	// A lecture counts for the whole subject.
	f.book(mon10, mon12)

	// Administration sessions never reach students.
	f.store.AddOccupancy(store.NewOccupancy{
		SubjectID: &f.subject.ID,
		TeacherID: f.teacher.ID,
		Start:     mon12,
		End:       mon12 + 3600,
		Type:      models.OccupancyAdministration,
		Name:      "Réunion",
	})

	// A session of another group is not the student's business.
	f.store.AddGroup(f.subject.ID)
	f.store.DistributeGroups(f.subject.ID)
	otherGroup := uint32(1)
	f.store.AddOccupancy(store.NewOccupancy{
		ClassroomID: &f.classroom.ID,
		GroupNumber: &otherGroup,
		SubjectID:   &f.subject.ID,
		TeacherID:   f.teacher.ID,
		Start:       tue10,
		End:         tue12,
		Type:        models.OccupancyTD,
		Name:        "Compilation TD",
	})

	days, err := svc.Occupancies(f.student.ID, dto.TimeWindow{})
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Occupancies, 1)
	assert.Equal(t, models.OccupancyCM, days[0].Occupancies[0].Type)

	_, err = svc.Occupancies(999, dto.TimeWindow{})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}
