package domain

import "time"

// CapacityUnit represents one bookable time slot for a plan,
// optionally scoped to a specific staff member.
//
// CurrentBookings counts confirmed (finalized) bookings only; active soft
// holds are tracked separately in Holds so they can lapse without touching
// the durable booking count. A hold whose ExpiresAt has passed is treated
// as absent by every read path, whether or not the sweeper has physically
// deleted it yet.
type CapacityUnit struct {
	ID              int64
	PlanID          int64
	StaffID         *int64 // NULL = any staff member
	WindowStart     time.Time
	WindowEnd       time.Time
	MaxCapacity     int
	CurrentBookings int
	IsAvailable     bool

	Holds []Hold

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hold is a soft, time-limited claim on one unit of capacity,
// taken while a customer goes through checkout.
type Hold struct {
	UnitID    int64
	HolderID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the hold is void at the given instant
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// ActiveHoldCount returns the number of holds still alive at the given instant
func (u *CapacityUnit) ActiveHoldCount(now time.Time) int {
	count := 0
	for i := range u.Holds {
		if !u.Holds[i].IsExpired(now) {
			count++
		}
	}
	return count
}

// HoldFor returns the active hold owned by the given holder, or nil
func (u *CapacityUnit) HoldFor(holderID string, now time.Time) *Hold {
	for i := range u.Holds {
		if u.Holds[i].HolderID == holderID && !u.Holds[i].IsExpired(now) {
			return &u.Holds[i]
		}
	}
	return nil
}

// RemainingCapacity returns how many capacity units are neither booked nor held
func (u *CapacityUnit) RemainingCapacity(now time.Time) int {
	remaining := u.MaxCapacity - u.CurrentBookings - u.ActiveHoldCount(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsBookable returns true if the unit can accept one more hold:
// the operator switch is on and confirmed bookings plus live holds
// leave at least one unit of capacity free
func (u *CapacityUnit) IsBookable(now time.Time) bool {
	return u.IsAvailable && u.CurrentBookings+u.ActiveHoldCount(now) < u.MaxCapacity
}

// IsFullyBooked returns true if every unit of capacity is a confirmed booking
func (u *CapacityUnit) IsFullyBooked() bool {
	return u.CurrentBookings >= u.MaxCapacity
}

// UnitsFilter фильтр для выборки capacity units
type UnitsFilter struct {
	PlanID    int64      // Обязательный параметр
	StaffID   *int64     // Фильтр по сотруднику (опционально)
	StartFrom *time.Time // Нижняя граница window_start включительно (опционально)
	StartTo   *time.Time // Верхняя граница window_end включительно (опционально)
}
