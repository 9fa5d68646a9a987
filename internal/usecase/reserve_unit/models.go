package reserve_unit

import "time"

// Request модель запроса на взятие холда
type Request struct {
	UnitID   int64         // ID capacity unit
	HolderID string        // Идентификатор держателя (user/session id из gateway)
	TTL      time.Duration // Время жизни холда; 0 = значение по умолчанию из конфига
}

// Response модель ответа с параметрами взятого холда
type Response struct {
	UnitID    int64
	HolderID  string
	ExpiresAt time.Time
	Refreshed bool // true, если продлён уже существующий холд того же держателя
}
