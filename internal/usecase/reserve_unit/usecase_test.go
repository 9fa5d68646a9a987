package reserve_unit

import (
	"context"
	"errors"
	"fmt"
	"sync"
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

// fakeTxManager исполняет callback без настоящей транзакции
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// serialTxManager воспроизводит точку сериализации хранилища: пока одна
// транзакция держит блокировку строки юнита, конкурентная ждет. Без этого
// два параллельных callback прочитали бы юнит до записи друг друга.
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeCapacityRepo хранит юниты в памяти; UpsertHold мутирует состояние,
// поэтому последовательные вызовы видят холды друг друга, как в базе
type fakeCapacityRepo struct {
	units     map[int64]*domain.CapacityUnit
	getErr    error
	upsertErr error
}

func newFakeRepo(units ...*domain.CapacityUnit) *fakeCapacityRepo {
	m := make(map[int64]*domain.CapacityUnit, len(units))
	for _, u := range units {
		m[u.ID] = u
	}
	return &fakeCapacityRepo{units: m}
}

func (f *fakeCapacityRepo) GetByID(_ context.Context, id int64) (*domain.CapacityUnit, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	unit, ok := f.units[id]
	if !ok {
		return nil, capacityRepo.ErrUnitNotFound
	}
	return unit, nil
}

func (f *fakeCapacityRepo) UpsertHold(_ context.Context, hold domain.Hold) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	unit := f.units[hold.UnitID]
	for i := range unit.Holds {
		if unit.Holds[i].HolderID == hold.HolderID {
			unit.Holds[i].ExpiresAt = hold.ExpiresAt
			return nil
		}
	}
	unit.Holds = append(unit.Holds, hold)
	return nil
}

func newTestUseCase(repo *fakeCapacityRepo, txMgr *fakeTxManager) *UseCase {
	uc := NewUseCase(repo, txMgr, 10*time.Minute, 30*time.Minute, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testTime}
	return uc
}

func testUnit(id int64, maxCapacity int) *domain.CapacityUnit {
	return &domain.CapacityUnit{
		ID:          id,
		PlanID:      1,
		WindowStart: testTime.Add(time.Hour),
		WindowEnd:   testTime.Add(2 * time.Hour),
		MaxCapacity: maxCapacity,
		IsAvailable: true,
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeTxManager{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero unit id", &Request{UnitID: 0, HolderID: "user-1"}},
		{"negative unit id", &Request{UnitID: -5, HolderID: "user-1"}},
		{"empty holder", &Request{UnitID: 1, HolderID: ""}},
		{"holder too long", &Request{UnitID: 1, HolderID: string(make([]byte, domain.MaxHolderIDLength+1))}},
		{"negative ttl", &Request{UnitID: 1, HolderID: "user-1", TTL: -time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_AcquiresHold(t *testing.T) {
	repo := newFakeRepo(testUnit(1, 2))
	uc := newTestUseCase(repo, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UnitID)
	assert.Equal(t, "user-1", resp.HolderID)
	assert.False(t, resp.Refreshed)
	// TTL = 0 берётся из конфигурации
	assert.Equal(t, testTime.Add(10*time.Minute), resp.ExpiresAt)
	assert.Len(t, repo.units[1].Holds, 1)
}

func TestUseCase_Execute_CapsTTL(t *testing.T) {
	repo := newFakeRepo(testUnit(1, 1))
	uc := newTestUseCase(repo, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{
		UnitID:   1,
		HolderID: "user-1",
		TTL:      2 * time.Hour,
	})

	require.NoError(t, err)
	assert.Equal(t, testTime.Add(30*time.Minute), resp.ExpiresAt)
}

func TestUseCase_Execute_RefreshesOwnHold(t *testing.T) {
	unit := testUnit(1, 1)
	unit.Holds = []domain.Hold{
		{UnitID: 1, HolderID: "user-1", ExpiresAt: testTime.Add(3 * time.Minute)},
	}
	repo := newFakeRepo(unit)
	uc := newTestUseCase(repo, &fakeTxManager{})

	// Юнит полностью занят собственным холдом: продление всё равно успешно
	resp, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	require.NoError(t, err)
	assert.True(t, resp.Refreshed)
	assert.Equal(t, testTime.Add(10*time.Minute), resp.ExpiresAt)
	// Продление не плодит второй холд
	assert.Len(t, repo.units[1].Holds, 1)
	assert.Equal(t, testTime.Add(10*time.Minute), repo.units[1].Holds[0].ExpiresAt)
}

func TestUseCase_Execute_UnitNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeRepo(), &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 42, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestUseCase_Execute_UnitSwitchedOff(t *testing.T) {
	unit := testUnit(1, 5)
	unit.IsAvailable = false
	uc := newTestUseCase(newFakeRepo(unit), &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrUnitUnavailable)
}

func TestUseCase_Execute_CapacityTakenByBookingsAndHolds(t *testing.T) {
	unit := testUnit(1, 3)
	unit.CurrentBookings = 2
	unit.Holds = []domain.Hold{
		{UnitID: 1, HolderID: "other", ExpiresAt: testTime.Add(5 * time.Minute)},
	}
	uc := newTestUseCase(newFakeRepo(unit), &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrUnitUnavailable)
}

func TestUseCase_Execute_ExpiredHoldFreesCapacity(t *testing.T) {
	// Sweep ещё не прошёл: истёкший холд физически лежит в хранилище
	unit := testUnit(1, 1)
	unit.Holds = []domain.Hold{
		{UnitID: 1, HolderID: "other", ExpiresAt: testTime.Add(-time.Minute)},
	}
	repo := newFakeRepo(unit)
	uc := newTestUseCase(repo, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	require.NoError(t, err)
	assert.False(t, resp.Refreshed)
}

func TestUseCase_Execute_LastUnitSingleWinner(t *testing.T) {
	// Два претендента на последнее место: победитель определяется
	// состоянием, которое увидел второй после записи первого
	repo := newFakeRepo(testUnit(1, 1))
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "winner"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "loser"})
	assert.ErrorIs(t, err, ErrUnitUnavailable)

	// Ёмкость выдана ровно один раз
	assert.Len(t, repo.units[1].Holds, 1)
	assert.Equal(t, "winner", repo.units[1].Holds[0].HolderID)
}

func TestUseCase_Execute_ConcurrentNoDoubleAward(t *testing.T) {
	// Последнее место, много параллельных претендентов: выиграть должен
	// ровно один, остальные получают ErrUnitUnavailable
	const holders = 16

	repo := newFakeRepo(testUnit(1, 1))
	uc := NewUseCase(repo, &serialTxManager{}, 10*time.Minute, 30*time.Minute, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testTime}

	errs := make(chan error, holders)
	var wg sync.WaitGroup
	for i := 0; i < holders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UnitID:   1,
				HolderID: fmt.Sprintf("holder-%d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, ErrUnitUnavailable)
		lost++
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, holders-1, lost)

	// Инвариант ёмкости: брони + живые холды не превышают max_capacity
	unit := repo.units[1]
	assert.Len(t, unit.Holds, 1)
	assert.LessOrEqual(t, unit.CurrentBookings+unit.ActiveHoldCount(testTime), unit.MaxCapacity)
}

func TestUseCase_Execute_SerializationConflict(t *testing.T) {
	txErr := fmt.Errorf("transaction failed after retries: %w", txmanager.ErrSerializationFailure)
	uc := newTestUseCase(newFakeRepo(testUnit(1, 1)), &fakeTxManager{err: txErr})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUseCase_Execute_StoreErrors(t *testing.T) {
	repo := newFakeRepo(testUnit(1, 1))
	repo.getErr = errors.New("connection refused")
	uc := newTestUseCase(repo, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	repo.getErr = nil
	repo.upsertErr = errors.New("connection refused")

	_, err = uc.Execute(context.Background(), &Request{UnitID: 1, HolderID: "user-1"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNormalizeTTL(t *testing.T) {
	defaultTTL := 10 * time.Minute
	maxTTL := 30 * time.Minute

	assert.Equal(t, defaultTTL, normalizeTTL(0, defaultTTL, maxTTL))
	assert.Equal(t, 5*time.Minute, normalizeTTL(5*time.Minute, defaultTTL, maxTTL))
	assert.Equal(t, maxTTL, normalizeTTL(time.Hour, defaultTTL, maxTTL))
	assert.Equal(t, maxTTL, normalizeTTL(maxTTL, defaultTTL, maxTTL))
}
