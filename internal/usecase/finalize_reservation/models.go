package finalize_reservation

import "time"

// Request модель запроса на финализацию резервирования
type Request struct {
	UnitID   int64  // ID capacity unit
	HolderID string // Держатель холда, завершивший checkout
}

// Response модель ответа с состоянием юнита после финализации
type Response struct {
	UnitID          int64
	HolderID        string
	CurrentBookings int
	MaxCapacity     int
	FinalizedAt     time.Time
}
