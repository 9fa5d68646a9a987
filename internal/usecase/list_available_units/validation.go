package list_available_units

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.StartFrom != nil && req.StartTo != nil && req.StartFrom.After(*req.StartTo) {
		return fmt.Errorf("%w: startFrom is after startTo", ErrInvalidRange)
	}

	return nil
}
