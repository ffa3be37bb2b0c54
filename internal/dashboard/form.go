package dashboard

import (
	"context"

	"github.com/vietddude/chargewindow/internal/core/domain"
)

// ChargingForm holds the requested charging duration.
type ChargingForm struct {
	Hours int
}

// NewChargingForm returns a form preset to the default duration.
func NewChargingForm() *ChargingForm {
	return &ChargingForm{Hours: domain.DefaultChargingHours}
}

// Increase adds an hour, stopping at the maximum.
func (f *ChargingForm) Increase() int {
	f.Hours = domain.ClampChargingHours(f.Hours + 1)
	return f.Hours
}

// Decrease removes an hour, stopping at the minimum.
func (f *ChargingForm) Decrease() int {
	f.Hours = domain.ClampChargingHours(f.Hours - 1)
	return f.Hours
}

// Submit runs the calculation for the current duration and returns the
// resulting panel state. Out-of-range values are rejected without touching
// state.
func (f *ChargingForm) Submit(ctx context.Context, state *OptimalWindowState) (WindowSnapshot, error) {
	if err := (domain.OptimalWindowRequest{Hours: f.Hours}).Validate(); err != nil {
		return WindowSnapshot{}, err
	}
	return state.Calculate(ctx, f.Hours), nil
}
