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

func TestClassGetComputesTotalService(t *testing.T) {
	f := newFixture(t)
	svc := NewClassService(f.store, nil, nil)

	// Two hours of lecture weigh three service hours.
	f.book(mon10, mon12)

	detail, err := svc.Get(f.class.ID)
	require.NoError(t, err)
	assert.Equal(t, "L3 Informatique", detail.Name)
	assert.Equal(t, models.LevelL3, detail.Level)
	assert.Equal(t, uint32(3), detail.TotalService)

	// Sessions of another class do not count.
	other := f.store.AddClass(store.NewClass{Name: "M2 Informatique", Level: models.LevelM2})
	detailOther, err := svc.Get(other.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), detailOther.TotalService)

	_, err = svc.Get(999)
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}

func TestClassCreateValidatesLevel(t *testing.T) {
	f := newFixture(t)
	svc := NewClassService(f.store, nil, nil)

	_, err := svc.Create(store.NewClass{Name: "Prépa", Level: "L9"})
	requireAppError(t, err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status)

	class, err := svc.Create(store.NewClass{Name: "M1 Informatique", Level: models.LevelM1})
	require.NoError(t, err)

	classes, pagination, err := svc.List(dto.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.TotalCount)
	assert.Len(t, classes, 2)

	bad := models.ClassLevel("L9")
	_, err = svc.Update(class.ID, store.ClassUpdate{Level: &bad})
	requireAppError(t, err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status)
}

func TestClassOccupanciesFollowSubjects(t *testing.T) {
	f := newFixture(t)
	svc := NewClassService(f.store, nil, nil)

	f.book(mon10, mon12)

	days, err := svc.Occupancies(f.class.ID, dto.TimeWindow{})
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Occupancies, 1)
	require.NotNil(t, days[0].Occupancies[0].ClassName)
	assert.Equal(t, "L3 Informatique", *days[0].Occupancies[0].ClassName)

	_, err = svc.Occupancies(999, dto.TimeWindow{})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
}

func TestClassRemoveIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := NewClassService(f.store, nil, nil)

	err := svc.Remove([]uint32{f.class.ID, 999})
	requireAppError(t, err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status)
	_, err = svc.Get(f.class.ID)
	require.NoError(t, err)
}
