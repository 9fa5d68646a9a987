package list_available_units

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
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
	units      []*domain.CapacityUnit
	err        error
	gotFilter  domain.UnitsFilter
	listCalled bool
}

func (f *fakeCapacityRepo) ListByFilter(_ context.Context, filter domain.UnitsFilter) ([]*domain.CapacityUnit, error) {
	f.listCalled = true
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.units, nil
}

type fakeSweeper struct {
	reclaimed int64
	err       error
	called    bool
}

func (f *fakeSweeper) SweepExpired(_ context.Context) (int64, error) {
	f.called = true
	return f.reclaimed, f.err
}

func newTestUseCase(repo *fakeCapacityRepo, sweeper *fakeSweeper) *UseCase {
	uc := NewUseCase(repo, sweeper, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testTime}
	return uc
}

func testUnit(id int64, maxCapacity int, windowOffset time.Duration) *domain.CapacityUnit {
	return &domain.CapacityUnit{
		ID:          id,
		PlanID:      1,
		WindowStart: testTime.Add(windowOffset),
		WindowEnd:   testTime.Add(windowOffset + time.Hour),
		MaxCapacity: maxCapacity,
		IsAvailable: true,
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeCapacityRepo{}, &fakeSweeper{})

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"zero plan id", &Request{PlanID: 0}, ErrInvalidInput},
		{"negative staff id", &Request{PlanID: 1, StaffID: ptr.Ptr(int64(-1))}, ErrInvalidInput},
		{
			"from after to",
			&Request{
				PlanID:    1,
				StartFrom: ptr.Ptr(testTime.Add(time.Hour)),
				StartTo:   ptr.Ptr(testTime),
			},
			ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_FiltersBookableUnits(t *testing.T) {
	bookable := testUnit(1, 2, time.Hour)

	switchedOff := testUnit(2, 2, 2*time.Hour)
	switchedOff.IsAvailable = false

	fullyBooked := testUnit(3, 1, 3*time.Hour)
	fullyBooked.CurrentBookings = 1

	heldByOther := testUnit(4, 1, 4*time.Hour)
	heldByOther.Holds = []domain.Hold{
		{UnitID: 4, HolderID: "other", ExpiresAt: testTime.Add(5 * time.Minute)},
	}

	// Истёкший холд не прячет юнит, даже если sweep его ещё не убрал
	expiredHold := testUnit(5, 1, 5*time.Hour)
	expiredHold.Holds = []domain.Hold{
		{UnitID: 5, HolderID: "other", ExpiresAt: testTime.Add(-time.Minute)},
	}

	repo := &fakeCapacityRepo{
		units: []*domain.CapacityUnit{bookable, switchedOff, fullyBooked, heldByOther, expiredHold},
	}
	uc := newTestUseCase(repo, &fakeSweeper{})

	resp, err := uc.Execute(context.Background(), &Request{PlanID: 1})

	require.NoError(t, err)
	require.Len(t, resp.Units, 2)
	assert.Equal(t, int64(1), resp.Units[0].ID)
	assert.Equal(t, int64(5), resp.Units[1].ID)
}

func TestUseCase_Execute_RemainingCapacity(t *testing.T) {
	unit := testUnit(1, 5, time.Hour)
	unit.CurrentBookings = 2
	unit.Holds = []domain.Hold{
		{UnitID: 1, HolderID: "a", ExpiresAt: testTime.Add(time.Minute)},
		{UnitID: 1, HolderID: "b", ExpiresAt: testTime.Add(-time.Minute)},
	}

	uc := newTestUseCase(&fakeCapacityRepo{units: []*domain.CapacityUnit{unit}}, &fakeSweeper{})

	resp, err := uc.Execute(context.Background(), &Request{PlanID: 1})

	require.NoError(t, err)
	require.Len(t, resp.Units, 1)
	// 5 мест минус 2 брони минус 1 живой холд
	assert.Equal(t, 2, resp.Units[0].RemainingCapacity)
}

func TestUseCase_Execute_PassesFilterToRepo(t *testing.T) {
	repo := &fakeCapacityRepo{}
	uc := newTestUseCase(repo, &fakeSweeper{})

	staffID := ptr.Ptr(int64(7))
	from := ptr.Ptr(testTime)
	to := ptr.Ptr(testTime.Add(24 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{
		PlanID:    3,
		StaffID:   staffID,
		StartFrom: from,
		StartTo:   to,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), repo.gotFilter.PlanID)
	assert.Equal(t, staffID, repo.gotFilter.StaffID)
	assert.Equal(t, from, repo.gotFilter.StartFrom)
	assert.Equal(t, to, repo.gotFilter.StartTo)
}

func TestUseCase_Execute_SweepFailureIsNotFatal(t *testing.T) {
	repo := &fakeCapacityRepo{units: []*domain.CapacityUnit{testUnit(1, 1, time.Hour)}}
	sweeper := &fakeSweeper{err: errors.New("db timeout")}
	uc := newTestUseCase(repo, sweeper)

	resp, err := uc.Execute(context.Background(), &Request{PlanID: 1})

	require.NoError(t, err)
	assert.True(t, sweeper.called)
	assert.Len(t, resp.Units, 1)
}

func TestUseCase_Execute_StoreError(t *testing.T) {
	repo := &fakeCapacityRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(repo, &fakeSweeper{})

	_, err := uc.Execute(context.Background(), &Request{PlanID: 1})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
