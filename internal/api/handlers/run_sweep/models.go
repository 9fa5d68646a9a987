package run_sweep

// SweepResponse HTTP ответ ручного запуска sweep
type SweepResponse struct {
	Reclaimed int64 `json:"reclaimed"`
}
