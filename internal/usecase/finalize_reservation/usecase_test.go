package finalize_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeCapacityRepo struct {
	unit         *domain.CapacityUnit
	getErr       error
	deleteErr    error
	incrementErr error

	holdRemoved     bool
	incrementedUnit int64
	incrementCalled bool
	deletedHolder   string
	deleteCallNow   time.Time
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

func (f *fakeCapacityRepo) DeleteActiveHold(_ context.Context, unitID int64, holderID string, now time.Time) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.deletedHolder = holderID
	f.deleteCallNow = now
	for _, h := range f.unit.Holds {
		if h.UnitID == unitID && h.HolderID == holderID && h.ExpiresAt.After(now) {
			f.holdRemoved = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCapacityRepo) IncrementBookings(_ context.Context, unitID int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incrementCalled = true
	f.incrementedUnit = unitID
	return nil
}

func newTestUseCase(repo *fakeCapacityRepo, txMgr *fakeTxManager) *UseCase {
	uc := NewUseCase(repo, txMgr, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testTime}
	return uc
}

func testUnit(holds ...domain.Hold) *domain.CapacityUnit {
	return &domain.CapacityUnit{
		ID:              1,
		PlanID:          1,
		MaxCapacity:     2,
		CurrentBookings: 0,
		IsAvailable:     true,
		Holds:           holds,
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeCapacityRepo{}, &fakeTxManager{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero unit id", &Request{UnitID: 0, HolderID: "user-1"}},
		{"empty holder", &Request{UnitID: 1, HolderID: ""}},
		{"holder too long", &Request{UnitID: 1, HolderID: string(make([]byte, domain.MaxHolderIDLength+1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_FinalizesLiveHold(t *testing.T) {
	repo := &fakeCapacityRepo{
		unit: testUnit(domain.Hold{UnitID: 1, HolderID: "user-1", ExpiresAt: testTime.Add(5 * time.Minute)}),
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	require.NoError(t, err)
	assert.True(t, repo.holdRemoved)
	assert.Equal(t, "user-1", repo.deletedHolder)
	assert.Equal(t, testTime, repo.deleteCallNow)
	assert.True(t, repo.incrementCalled)
	assert.Equal(t, int64(1), repo.incrementedUnit)
	assert.Equal(t, int64(1), resp.UnitID)
	assert.Equal(t, 1, resp.CurrentBookings)
	assert.Equal(t, 2, resp.MaxCapacity)
	assert.Equal(t, testTime, resp.FinalizedAt)
}

func TestUseCase_Execute_ExpiredHoldRejected(t *testing.T) {
	repo := &fakeCapacityRepo{
		unit: testUnit(domain.Hold{UnitID: 1, HolderID: "user-1", ExpiresAt: testTime.Add(-time.Minute)}),
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrHoldNotHeld)
	assert.False(t, repo.incrementCalled)
}

func TestUseCase_Execute_NoHoldRejected(t *testing.T) {
	repo := &fakeCapacityRepo{unit: testUnit()}
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrHoldNotHeld)
}

func TestUseCase_Execute_ForeignHoldRejected(t *testing.T) {
	repo := &fakeCapacityRepo{
		unit: testUnit(domain.Hold{UnitID: 1, HolderID: "other", ExpiresAt: testTime.Add(5 * time.Minute)}),
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrHoldNotHeld)
	assert.False(t, repo.incrementCalled)
}

func TestUseCase_Execute_UnitNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeCapacityRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 42, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestUseCase_Execute_CapacityExceeded(t *testing.T) {
	repo := &fakeCapacityRepo{
		unit:         testUnit(domain.Hold{UnitID: 1, HolderID: "user-1", ExpiresAt: testTime.Add(5 * time.Minute)}),
		incrementErr: capacityRepo.ErrCapacityExceeded,
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestUseCase_Execute_SerializationConflict(t *testing.T) {
	txErr := fmt.Errorf("transaction failed after retries: %w", txmanager.ErrSerializationFailure)
	uc := newTestUseCase(&fakeCapacityRepo{}, &fakeTxManager{err: txErr})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUseCase_Execute_StoreErrors(t *testing.T) {
	repo := &fakeCapacityRepo{
		unit:   testUnit(domain.Hold{UnitID: 1, HolderID: "user-1", ExpiresAt: testTime.Add(5 * time.Minute)}),
		getErr: errors.New("connection refused"),
	}
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	repo.getErr = nil
	repo.deleteErr = errors.New("connection refused")

	_, err = uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
