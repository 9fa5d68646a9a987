package capacity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с capacity units и их холдами.
//
// Дисциплина блокировок: все пути, изменяющие холды или счётчик броней,
// выполняются внутри сериализуемой транзакции и сначала читают строку юнита
// через GetByID (который внутри транзакции добавляет FOR UPDATE). Строка
// юнита служит единственной точкой сериализации для его холдов, поэтому
// два конкурентных Reserve на последнее место не могут выиграть оба.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория capacity units
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый capacity unit
func (r *Repository) Create(ctx context.Context, unit *domain.CapacityUnit) (*domain.CapacityUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("capacity_units").
		Columns(
			"plan_id",
			"staff_id",
			"window_start",
			"window_end",
			"max_capacity",
			"current_bookings",
			"is_available",
		).
		Values(
			unit.PlanID,
			unit.StaffID,
			unit.WindowStart,
			unit.WindowEnd,
			unit.MaxCapacity,
			unit.CurrentBookings,
			unit.IsAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return unit, nil
}

// GetByID получает capacity unit по ID вместе со всеми его холдами.
// Истёкшие холды не фильтруются на уровне SQL: вызывающий код обязан
// трактовать их как отсутствующие (domain.CapacityUnit это делает сам).
// Внутри транзакции строка юнита блокируется через FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CapacityUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"plan_id",
		"staff_id",
		"window_start",
		"window_end",
		"max_capacity",
		"current_bookings",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("capacity_units").
		Where(squirrel.Eq{"id": id})

	// Блокируем строку юнита: точка сериализации для конкурентных Reserve/Finalize
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.CapacityUnit
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&unit.PlanID,
		&unit.StaffID,
		&unit.WindowStart,
		&unit.WindowEnd,
		&unit.MaxCapacity,
		&unit.CurrentBookings,
		&unit.IsAvailable,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan unit: %v", ErrScanRow, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	holds, err := r.loadHolds(ctx, executor, []int64{unit.ID})
	if err != nil {
		return nil, err
	}
	unit.Holds = holds[unit.ID]

	return &unit, nil
}

// ListByFilter получает capacity units по фильтру вместе с холдами.
// Поддерживает фильтрацию по:
// - Сотруднику (StaffID) - опционально
// - Нижней границе окна (StartFrom, включительно по window_start)
// - Верхней границе окна (StartTo, включительно по window_end)
// Результат отсортирован по window_start, затем по id, порядок детерминирован.
func (r *Repository) ListByFilter(ctx context.Context, filter domain.UnitsFilter) ([]*domain.CapacityUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"plan_id",
		"staff_id",
		"window_start",
		"window_end",
		"max_capacity",
		"current_bookings",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("capacity_units").
		Where(squirrel.Eq{"plan_id": filter.PlanID})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"window_start": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"window_end": *filter.StartTo})
	}

	selectBuilder = selectBuilder.OrderBy("window_start ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units, err := r.scanUnits(rows)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return units, nil
	}

	ids := make([]int64, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}

	holds, err := r.loadHolds(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		u.Holds = holds[u.ID]
	}

	return units, nil
}

// UpsertHold создает холд или продлевает существующий холд того же держателя.
// Должен вызываться внутри транзакции после GetByID (строка юнита заблокирована).
func (r *Repository) UpsertHold(ctx context.Context, hold domain.Hold) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unit_holds").
		Columns("unit_id", "holder_id", "expires_at").
		Values(hold.UnitID, hold.HolderID, hold.ExpiresAt).
		Suffix("ON CONFLICT (unit_id, holder_id) DO UPDATE SET expires_at = EXCLUDED.expires_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertHold - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertHold - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteHold удаляет холд держателя на юните.
// Возвращает false, если такого холда не было (идемпотентный release).
func (r *Repository) DeleteHold(ctx context.Context, unitID int64, holderID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unit_holds").
		Where(squirrel.Eq{"unit_id": unitID, "holder_id": holderID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DeleteHold - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteHold - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteHold - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// DeleteActiveHold удаляет холд держателя, только если он ещё не истёк.
// Условная запись для финализации: истёкший или отсутствующий холд
// не может быть конвертирован в подтверждённую бронь.
func (r *Repository) DeleteActiveHold(ctx context.Context, unitID int64, holderID string, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unit_holds").
		Where(squirrel.Eq{"unit_id": unitID, "holder_id": holderID}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DeleteActiveHold - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteActiveHold - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteActiveHold - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// DeleteExpiredHolds удаляет все истёкшие холды (sweep).
// Чисто уборочная операция: корректность Reserve/ListByFilter от неё
// не зависит, истёкшие холды и так считаются отсутствующими.
func (r *Repository) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unit_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredHolds - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredHolds - execute delete: %v", ErrExecQuery, err)
	}

	reclaimed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	return reclaimed, nil
}

// IncrementBookings увеличивает счётчик подтверждённых броней.
// Условие current_bookings < max_capacity защищает инвариант ёмкости
// на уровне SQL даже при ошибке в вызывающем коде.
func (r *Repository) IncrementBookings(ctx context.Context, unitID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_units").
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": unitID}).
		Where(squirrel.Expr("current_bookings < max_capacity")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementBookings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBookings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBookings - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityExceeded
	}

	return nil
}

// SetAvailability переключает операторский флаг доступности юнита
func (r *Repository) SetAvailability(ctx context.Context, unitID int64, isAvailable bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_units").
		Set("is_available", isAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": unitID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUnitNotFound
	}

	return nil
}

// loadHolds загружает холды для набора юнитов
func (r *Repository) loadHolds(ctx context.Context, executor DBExecutor, unitIDs []int64) (map[int64][]domain.Hold, error) {
	query, args, err := psqlbuilder.Select(
		"unit_id",
		"holder_id",
		"expires_at",
		"created_at",
	).
		From("unit_holds").
		Where(squirrel.Eq{"unit_id": unitIDs}).
		OrderBy("unit_id ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadHolds - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadHolds - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make(map[int64][]domain.Hold)
	for rows.Next() {
		var hold domain.Hold
		var createdAt sql.NullTime

		if err := rows.Scan(&hold.UnitID, &hold.HolderID, &hold.ExpiresAt, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: loadHolds - scan row: %v", ErrScanRow, err)
		}

		hold.CreatedAt = createdAt.Time
		holds[hold.UnitID] = append(holds[hold.UnitID], hold)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadHolds - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// scanUnits сканирует результаты запроса в слайс юнитов
func (r *Repository) scanUnits(rows *sql.Rows) ([]*domain.CapacityUnit, error) {
	units := make([]*domain.CapacityUnit, 0)

	for rows.Next() {
		var unit domain.CapacityUnit
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&unit.ID,
			&unit.PlanID,
			&unit.StaffID,
			&unit.WindowStart,
			&unit.WindowEnd,
			&unit.MaxCapacity,
			&unit.CurrentBookings,
			&unit.IsAvailable,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanUnits - scan row: %v", ErrScanRow, err)
		}

		unit.CreatedAt = createdAt.Time
		unit.UpdatedAt = updatedAt.Time

		units = append(units, &unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanUnits - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}
