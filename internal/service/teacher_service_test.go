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

func TestTeacherCreateGeneratesCredentials(t *testing.T) {
	f := newFixture(t)
	svc := NewTeacherService(f.store, nil, nil)

	account, err := svc.Create(dto.CreateTeacherRequest{
		FirstName: "Hélène",
		LastName:  "Lefèvre",
		Rank:      models.RankATER,
	})
	require.NoError(t, err)
	assert.Equal(t, "lefevre.helene", account.Username)
	assert.Len(t, account.Password, passwordLength)

	_, err = svc.Create(dto.CreateTeacherRequest{
		FirstName: "Paul", LastName: "Martin", Rank: "dean",
	})
	requireAppError(t, err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status)

	_, err = svc.Create(dto.CreateTeacherRequest{FirstName: "Paul", Rank: models.RankATER})
	requireAppError(t, err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status)
}

func TestTeacherUpdateDoubleOptionClearsEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewTeacherService(f.store, nil, nil)

	detail, err := svc.Get(f.teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Email)

	// An absent field leaves the email untouched.
	rank := models.RankPRAG
	updated, err := svc.Update(f.teacher.ID, dto.UpdateTeacherRequest{Rank: &rank})
	require.NoError(t, err)
	assert.True(t, updated)

	detail, err = svc.Get(f.teacher.ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Email)
	assert.Equal(t, models.RankPRAG, detail.Rank)

	// An explicit null clears it.
	updated, err = svc.Update(f.teacher.ID, dto.UpdateTeacherRequest{
		Email: dto.OptField{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.True(t, updated)

	detail, err = svc.Get(f.teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Email)
}

func TestTeacherUpdateEdgeCases(t *testing.T) {
	f := newFixture(t)
	svc := NewTeacherService(f.store, nil, nil)

	updated, err := svc.Update(f.teacher.ID, dto.UpdateTeacherRequest{})
	require.NoError(t, err)
	assert.False(t, updated)

	_, err = svc.Update(999, dto.UpdateTeacherRequest{})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)

	// Student ids are not teachers.
	_, err = svc.Update(f.student.ID, dto.UpdateTeacherRequest{})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)

	bad := models.Rank("dean")
	_, err = svc.Update(f.teacher.ID, dto.UpdateTeacherRequest{Rank: &bad})
	requireAppError(t, err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status)
}

func TestTeacherRemoveIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := NewTeacherService(f.store, nil, nil)
	other := f.addTeacher("Paul", "Martin")

	err := svc.Remove([]uint32{other.ID, f.student.ID})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
	_, err = svc.Get(other.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove([]uint32{other.ID}))
	_, err = svc.Get(other.ID)
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}

func TestTeacherWorkload(t *testing.T) {
	f := newFixture(t)
	svc := NewTeacherService(f.store, nil, nil)

	// Two hours of lecture and one hour of administration.
	f.book(mon10, mon12)
	f.store.AddOccupancy(store.NewOccupancy{
		SubjectID: &f.subject.ID,
		TeacherID: f.teacher.ID,
		Start:     tue10,
		End:       tue10 + 3600,
		Type:      models.OccupancyAdministration,
		Name:      "Réunion pédagogique",
	})

	workload, err := svc.Workload(f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marie Durand", workload.TeacherName)
	assert.InDelta(t, 2*1.5+1*1.0, workload.ServiceValue, 1e-9)
	assert.Equal(t, uint32(2), workload.Hours.CM)
	assert.Equal(t, uint32(1), workload.Hours.Administration)
	assert.Equal(t, uint32(3), workload.Hours.Total)

	_, err = svc.Workload(999)
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}

func TestTeacherSubjectsResolvesDetail(t *testing.T) {
	f := newFixture(t)
	svc := NewTeacherService(f.store, nil, nil)

	details, err := svc.Subjects(f.teacher.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Compilation", details[0].Name)
	require.Len(t, details[0].Groups, 1)
	assert.Equal(t, uint32(1), details[0].Groups[0].Count)
}
