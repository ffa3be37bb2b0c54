package domain

import "errors"

const (
	MinChargingHours     = 1
	MaxChargingHours     = 6
	DefaultChargingHours = 2
)

// ErrHoursOutOfRange is returned when a charging duration is outside 1..6 hours.
var ErrHoursOutOfRange = errors.New("charging hours out of range")

// OptimalWindowRequest asks for the best window of the given length.
type OptimalWindowRequest struct {
	Hours int `json:"hours"`
}

// Validate checks the requested duration against the supported range.
func (r OptimalWindowRequest) Validate() error {
	if !ValidChargingHours(r.Hours) {
		return ErrHoursOutOfRange
	}
	return nil
}

// OptimalWindowResponse is the window computed by the backend. The wire and
// dashboard shapes are identical.
type OptimalWindowResponse struct {
	Start            string  `json:"start"`
	End              string  `json:"end"`
	CleanEnergyShare float64 `json:"cleanEnergyShare"`
}

// ValidChargingHours reports whether h is within the supported range.
func ValidChargingHours(h int) bool {
	return h >= MinChargingHours && h <= MaxChargingHours
}

// ClampChargingHours pins h into the supported range.
func ClampChargingHours(h int) int {
	if h < MinChargingHours {
		return MinChargingHours
	}
	if h > MaxChargingHours {
		return MaxChargingHours
	}
	return h
}
