package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vietddude/chargewindow/internal/core/domain"
	"github.com/vietddude/chargewindow/internal/dashboard"
)

// =============================================================================
// Mocks
// =============================================================================

type stubLoader struct {
	days []domain.EnergyMixDay
	err  error
}

func (s *stubLoader) GetEnergyMix(ctx context.Context) ([]domain.EnergyMixDay, error) {
	return s.days, s.err
}

type stubCalc struct {
	res   domain.OptimalWindowResponse
	err   error
	hours []int
}

func (s *stubCalc) GetOptimalWindow(ctx context.Context, req domain.OptimalWindowRequest) (domain.OptimalWindowResponse, error) {
	s.hours = append(s.hours, req.Hours)
	return s.res, s.err
}

var discard = slog.New(slog.DiscardHandler)

var sampleDays = []domain.EnergyMixDay{
	{
		Date:             "2024-12-04",
		Sources:          map[domain.EnergySource]float64{"wind": 40, "gas": 35, "solar": 0, "nuclear": 25},
		CleanEnergyShare: 65,
	},
	{
		Date:             "2024-12-05",
		Sources:          map[domain.EnergySource]float64{"wind": 50, "gas": 50},
		CleanEnergyShare: 50,
	},
}

var sampleWindow = domain.OptimalWindowResponse{
	Start:            "2024-12-04T14:00:00Z",
	End:              "2024-12-04T18:00:00Z",
	CleanEnergyShare: 75.5,
}

type fixture struct {
	mix    *dashboard.EnergyMixState
	window *dashboard.OptimalWindowState
	calc   *stubCalc
	server *Server
}

func newFixture(loader *stubLoader, calc *stubCalc) *fixture {
	mix := dashboard.NewEnergyMixState(loader, discard)
	win := dashboard.NewOptimalWindowState(calc, discard)
	mon := NewMonitor("http://api.test", mix, win)
	return &fixture{
		mix:    mix,
		window: win,
		calc:   calc,
		server: NewServer(mon, mix, win, 0),
	}
}

func (f *fixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

// =============================================================================
// Monitor
// =============================================================================

func TestMonitor_CheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		loader *stubLoader
		load   bool
		calc   *stubCalc
		hours  int
		want   SystemStatus
	}{
		{name: "still loading", loader: &stubLoader{}, want: StatusDegraded},
		{name: "mix loaded", loader: &stubLoader{days: sampleDays}, load: true, want: StatusHealthy},
		{name: "mix failed", loader: &stubLoader{err: errors.New("boom")}, load: true, want: StatusCritical},
		{
			name:   "window failed",
			loader: &stubLoader{days: sampleDays},
			load:   true,
			calc:   &stubCalc{err: errors.New("boom")},
			hours:  3,
			want:   StatusDegraded,
		},
		{
			name:   "mix failed and window failed",
			loader: &stubLoader{err: errors.New("boom")},
			load:   true,
			calc:   &stubCalc{err: errors.New("boom")},
			hours:  3,
			want:   StatusCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := tt.calc
			if calc == nil {
				calc = &stubCalc{res: sampleWindow}
			}
			f := newFixture(tt.loader, calc)
			if tt.load {
				f.mix.Load(context.Background())
			}
			if tt.hours > 0 {
				f.window.Calculate(context.Background(), tt.hours)
			}

			report := f.server.monitor.CheckHealth(context.Background())
			if report.SystemStatus != tt.want {
				t.Errorf("expected %s, got %s (%+v)", tt.want, report.SystemStatus, report.Components)
			}
			if report.APIBaseURL != "http://api.test" {
				t.Errorf("unexpected base url %q", report.APIBaseURL)
			}
			if len(report.Components) != 2 {
				t.Errorf("expected 2 components, got %d", len(report.Components))
			}
		})
	}
}

// =============================================================================
// Health endpoints
// =============================================================================

func TestHandleHealth(t *testing.T) {
	f := newFixture(&stubLoader{days: sampleDays}, &stubCalc{})
	f.mix.Load(context.Background())

	rec := f.do(t, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != string(StatusHealthy) {
		t.Errorf("expected healthy, got %q", body["status"])
	}
}

func TestHandleHealth_CriticalReturns503(t *testing.T) {
	f := newFixture(&stubLoader{err: errors.New("down")}, &stubCalc{})
	f.mix.Load(context.Background())

	rec := f.do(t, http.MethodGet, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleDetailed(t *testing.T) {
	f := newFixture(&stubLoader{err: errors.New("down")}, &stubCalc{})
	f.mix.Load(context.Background())

	rec := f.do(t, http.MethodGet, "/health/detailed")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var report HealthReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	mix := report.Components[ComponentEnergyMix]
	if mix.Status != StatusCritical || mix.Error != dashboard.EnergyMixErrorMessage {
		t.Errorf("unexpected mix component %+v", mix)
	}
}

func TestHandleMetrics(t *testing.T) {
	f := newFixture(&stubLoader{}, &stubCalc{})

	rec := f.do(t, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// =============================================================================
// Dashboard endpoints
// =============================================================================

func TestHandleEnergyMix(t *testing.T) {
	f := newFixture(&stubLoader{days: sampleDays}, &stubCalc{})
	f.mix.Load(context.Background())

	rec := f.do(t, http.MethodGet, "/dashboard/energy-mix")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var view EnergyMixView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Loading || view.Error != "" {
		t.Errorf("unexpected panel state %+v", view)
	}
	if len(view.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(view.Days))
	}

	today := view.Days[0]
	if today.Label != "Today" || today.DisplayDate != "December 4, 2024" || today.DisplayShare != "65.0%" {
		t.Errorf("unexpected day view %+v", today)
	}
	// gas, nuclear, wind in display order; solar dropped
	if len(today.Chart) != 3 || today.Chart[0].Key != "gas" || today.Chart[2].Key != "wind" {
		t.Errorf("unexpected chart %+v", today.Chart)
	}
	if view.Days[1].Label != "Tomorrow" {
		t.Errorf("expected Tomorrow, got %q", view.Days[1].Label)
	}
}

func TestHandleEnergyMix_Loading(t *testing.T) {
	f := newFixture(&stubLoader{}, &stubCalc{})

	rec := f.do(t, http.MethodGet, "/dashboard/energy-mix")
	var view EnergyMixView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !view.Loading || len(view.Days) != 0 {
		t.Errorf("expected loading panel, got %+v", view)
	}
}

func TestHandleChargingWindow(t *testing.T) {
	calc := &stubCalc{res: sampleWindow}
	f := newFixture(&stubLoader{}, calc)

	rec := f.do(t, http.MethodPost, "/dashboard/charging-window?hours=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view WindowView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Result == nil || *view.Result != sampleWindow {
		t.Errorf("expected %+v, got %+v", sampleWindow, view.Result)
	}
	if view.Hours != 4 {
		t.Errorf("expected hours 4, got %d", view.Hours)
	}
	if view.DisplayStart != "4 Dec, 14:00" || view.DisplayEnd != "4 Dec, 18:00" || view.DisplayShare != "75.5%" {
		t.Errorf("unexpected display fields %+v", view)
	}
	if len(calc.hours) != 1 || calc.hours[0] != 4 {
		t.Errorf("expected one call for 4 hours, got %v", calc.hours)
	}
}

func TestHandleChargingWindow_DefaultHours(t *testing.T) {
	calc := &stubCalc{res: sampleWindow}
	f := newFixture(&stubLoader{}, calc)

	rec := f.do(t, http.MethodGet, "/dashboard/charging-window")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(calc.hours) != 1 || calc.hours[0] != domain.DefaultChargingHours {
		t.Errorf("expected default hours, got %v", calc.hours)
	}
}

func TestHandleChargingWindow_InvalidHours(t *testing.T) {
	for _, q := range []string{"0", "7", "-2", "abc"} {
		calc := &stubCalc{res: sampleWindow}
		f := newFixture(&stubLoader{}, calc)

		rec := f.do(t, http.MethodPost, "/dashboard/charging-window?hours="+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("hours=%s: expected 400, got %d", q, rec.Code)
		}
		if len(calc.hours) != 0 {
			t.Errorf("hours=%s: expected no backend call", q)
		}
	}
}

func TestHandleChargingWindow_BackendFailure(t *testing.T) {
	f := newFixture(&stubLoader{}, &stubCalc{err: errors.New("boom")})

	rec := f.do(t, http.MethodPost, "/dashboard/charging-window?hours=3")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var view WindowView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Error != dashboard.WindowErrorMessage || view.Result != nil {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestHandleChargingWindow_FailureDoesNotReportPreviousHours(t *testing.T) {
	calc := &stubCalc{res: sampleWindow}
	f := newFixture(&stubLoader{}, calc)

	if rec := f.do(t, http.MethodPost, "/dashboard/charging-window?hours=4"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	calc.err = errors.New("boom")
	rec := f.do(t, http.MethodPost, "/dashboard/charging-window?hours=3")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var view WindowView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Hours != 0 || view.Result != nil || view.DisplayStart != "" {
		t.Errorf("expected no trace of the previous window, got %+v", view)
	}
}
