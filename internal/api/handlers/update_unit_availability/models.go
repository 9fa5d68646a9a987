package update_unit_availability

// UpdateAvailabilityRequest HTTP запрос на переключение доступности юнита
type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}
