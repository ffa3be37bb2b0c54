// Package energyapi adapts the backend energy endpoints to dashboard types.
package energyapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vietddude/chargewindow/internal/core/domain"
	"github.com/vietddude/chargewindow/internal/infra/httpclient"
)

const (
	EnergyMixPath      = "/api/energy-mix"
	ChargingWindowPath = "/api/charging-window"
)

// Fetcher performs a GET against the backend and decodes the body into out.
// *httpclient.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, path string, out any, opts ...httpclient.RequestOption) error
}

var _ Fetcher = (*httpclient.Client)(nil)

// Service exposes the energy endpoints in dashboard shapes.
type Service struct {
	fetcher Fetcher
}

// NewService creates a new Service on top of fetcher.
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// GetEnergyMix returns the forecast mix per day with fields renamed for the dashboard.
func (s *Service) GetEnergyMix(ctx context.Context) ([]domain.EnergyMixDay, error) {
	var raw []domain.RawEnergyMixDay
	if err := s.fetcher.Get(ctx, EnergyMixPath, &raw); err != nil {
		return nil, err
	}

	days := make([]domain.EnergyMixDay, 0, len(raw))
	for _, r := range raw {
		days = append(days, MapRawEnergyMixDay(r))
	}
	return days, nil
}

// GetOptimalWindow asks the backend for the cleanest window of req.Hours.
// The hours range is the caller's responsibility; the response is returned as is.
func (s *Service) GetOptimalWindow(
	ctx context.Context,
	req domain.OptimalWindowRequest,
) (domain.OptimalWindowResponse, error) {
	var window domain.OptimalWindowResponse
	if err := s.fetcher.Get(ctx, OptimalWindowPath(req.Hours), &window); err != nil {
		return domain.OptimalWindowResponse{}, err
	}
	return window, nil
}

// OptimalWindowPath builds the charging-window path with its query string.
func OptimalWindowPath(hours int) string {
	params := url.Values{}
	params.Set("hours", strconv.Itoa(hours))
	return ChargingWindowPath + "?" + params.Encode()
}

// MapRawEnergyMixDay re-keys a wire record: mix becomes sources and
// cleanPercentage becomes cleanEnergyShare.
func MapRawEnergyMixDay(raw domain.RawEnergyMixDay) domain.EnergyMixDay {
	return domain.EnergyMixDay{
		Date:             raw.Date,
		Sources:          raw.Mix,
		CleanEnergyShare: raw.CleanPercentage,
	}
}
