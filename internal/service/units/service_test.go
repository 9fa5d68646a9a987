package units

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

var testTime = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeCapacityRepo struct {
	unit      *domain.CapacityUnit
	createErr error
	getErr    error
	setErr    error

	created      *domain.CapacityUnit
	setUnitID    int64
	setAvailable bool
	setWasCalled bool
	nextID       int64
}

func (f *fakeCapacityRepo) Create(_ context.Context, unit *domain.CapacityUnit) (*domain.CapacityUnit, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *unit
	created.ID = f.nextID
	created.CreatedAt = testTime
	created.UpdatedAt = testTime
	f.created = &created
	return &created, nil
}

func (f *fakeCapacityRepo) GetByID(_ context.Context, id int64) (*domain.CapacityUnit, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.unit == nil || f.unit.ID != id {
		return nil, capacityRepo.ErrUnitNotFound
	}
	return f.unit, nil
}

func (f *fakeCapacityRepo) SetAvailability(_ context.Context, unitID int64, isAvailable bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.setWasCalled = true
	f.setUnitID = unitID
	f.setAvailable = isAvailable
	return nil
}

func newTestService(repo *fakeCapacityRepo) *Service {
	svc := NewService(repo, noopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: testTime}
	return svc
}

func validCreateRequest() *models.CreateUnitRequest {
	return &models.CreateUnitRequest{
		PlanID:      1,
		StaffID:     ptr.Ptr(int64(3)),
		WindowStart: testTime.Add(time.Hour),
		WindowEnd:   testTime.Add(2 * time.Hour),
		MaxCapacity: 2,
		IsAvailable: true,
	}
}

func TestService_Create(t *testing.T) {
	repo := &fakeCapacityRepo{nextID: 10}
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, 2, resp.MaxCapacity)
	assert.Equal(t, 0, resp.CurrentBookings)
	assert.Equal(t, 2, resp.RemainingCapacity)
	assert.True(t, resp.IsAvailable)

	require.NotNil(t, repo.created)
	assert.Equal(t, int64(1), repo.created.PlanID)
	assert.Equal(t, 0, repo.created.CurrentBookings)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(&fakeCapacityRepo{})

	tests := []struct {
		name   string
		mutate func(req *models.CreateUnitRequest)
	}{
		{"zero plan id", func(r *models.CreateUnitRequest) { r.PlanID = 0 }},
		{"negative staff id", func(r *models.CreateUnitRequest) { r.StaffID = ptr.Ptr(int64(-1)) }},
		{"zero window start", func(r *models.CreateUnitRequest) { r.WindowStart = time.Time{} }},
		{"window start after end", func(r *models.CreateUnitRequest) {
			r.WindowStart = testTime.Add(2 * time.Hour)
			r.WindowEnd = testTime.Add(time.Hour)
		}},
		{"window start equals end", func(r *models.CreateUnitRequest) {
			r.WindowStart = testTime
			r.WindowEnd = testTime
		}},
		{"zero capacity", func(r *models.CreateUnitRequest) { r.MaxCapacity = 0 }},
		{"capacity above limit", func(r *models.CreateUnitRequest) { r.MaxCapacity = domain.MaxMaxCapacity + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &fakeCapacityRepo{
		unit: &domain.CapacityUnit{
			ID:          1,
			PlanID:      1,
			MaxCapacity: 3,
			IsAvailable: true,
			Holds: []domain.Hold{
				{UnitID: 1, HolderID: "live", ExpiresAt: testTime.Add(5 * time.Minute)},
				{UnitID: 1, HolderID: "dead", ExpiresAt: testTime.Add(-time.Minute)},
			},
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	// Истёкший холд не показывается наружу
	require.Len(t, resp.ActiveHolds, 1)
	assert.Equal(t, "live", resp.ActiveHolds[0].HolderID)
	assert.Equal(t, 2, resp.RemainingCapacity)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeCapacityRepo{})

	_, err := svc.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestService_SetAvailability(t *testing.T) {
	repo := &fakeCapacityRepo{}
	svc := newTestService(repo)

	err := svc.SetAvailability(context.Background(), 1, false)

	require.NoError(t, err)
	assert.True(t, repo.setWasCalled)
	assert.Equal(t, int64(1), repo.setUnitID)
	assert.False(t, repo.setAvailable)
}

func TestService_SetAvailability_NotFound(t *testing.T) {
	repo := &fakeCapacityRepo{setErr: capacityRepo.ErrUnitNotFound}
	svc := newTestService(repo)

	err := svc.SetAvailability(context.Background(), 42, true)

	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestService_SetAvailability_RepoError(t *testing.T) {
	repo := &fakeCapacityRepo{setErr: errors.New("connection refused")}
	svc := newTestService(repo)

	err := svc.SetAvailability(context.Background(), 1, true)

	assert.ErrorIs(t, err, ErrInternal)
}
