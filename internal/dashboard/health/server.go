package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/chargewindow/internal/core/domain"
	"github.com/vietddude/chargewindow/internal/dashboard"
)

// Server provides HTTP endpoints for health monitoring and the dashboard.
type Server struct {
	monitor *Monitor
	mix     *dashboard.EnergyMixState
	window  *dashboard.OptimalWindowState
	router  chi.Router
	server  *http.Server
}

// NewServer creates a new health server.
func NewServer(monitor *Monitor, mix *dashboard.EnergyMixState, window *dashboard.OptimalWindowState, port int) *Server {
	s := &Server{
		monitor: monitor,
		mix:     mix,
		window:  window,
		router:  chi.NewRouter(),
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Get("/health", s.handleHealth)
	r.Get("/health/detailed", s.handleDetailed)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/energy-mix", s.handleEnergyMix)
		r.Get("/charging-window", s.handleChargingWindow)
		r.Post("/charging-window", s.handleChargingWindow)
	})
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.monitor.CheckHealth(r.Context())

	status := http.StatusOK
	if report.SystemStatus == StatusCritical {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"status": string(report.SystemStatus)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.monitor.CheckHealth(r.Context()))
}

// DayView is one forecast day as rendered by the dashboard.
type DayView struct {
	Label            string                 `json:"label"`
	Date             string                 `json:"date"`
	DisplayDate      string                 `json:"display_date"`
	CleanEnergyShare float64                `json:"clean_energy_share"`
	DisplayShare     string                 `json:"display_share"`
	Chart            []dashboard.ChartSlice `json:"chart"`
}

// EnergyMixView is the energy mix panel.
type EnergyMixView struct {
	Loading bool      `json:"loading"`
	Error   string    `json:"error,omitempty"`
	Days    []DayView `json:"days"`
}

// WindowView is the charging window panel.
type WindowView struct {
	dashboard.WindowSnapshot
	DisplayStart string `json:"display_start,omitempty"`
	DisplayEnd   string `json:"display_end,omitempty"`
	DisplayShare string `json:"display_share,omitempty"`
}

func (s *Server) handleEnergyMix(w http.ResponseWriter, r *http.Request) {
	snap := s.mix.Snapshot()

	view := EnergyMixView{
		Loading: snap.Loading,
		Error:   snap.Error,
		Days:    make([]DayView, 0, len(snap.Data)),
	}
	for i, day := range snap.Data {
		view.Days = append(view.Days, DayView{
			Label:            dashboard.DayLabel(i),
			Date:             day.Date,
			DisplayDate:      dashboard.FormatDate(day.Date),
			CleanEnergyShare: day.CleanEnergyShare,
			DisplayShare:     dashboard.FormatShare(day.CleanEnergyShare),
			Chart:            dashboard.ChartData(day),
		})
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleChargingWindow(w http.ResponseWriter, r *http.Request) {
	form := dashboard.NewChargingForm()
	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "hours must be an integer")
			return
		}
		form.Hours = hours
	}

	snap, err := form.Submit(r.Context(), s.window)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("hours must be between %d and %d",
			domain.MinChargingHours, domain.MaxChargingHours))
		return
	}

	view := WindowView{WindowSnapshot: snap}
	status := http.StatusOK
	if snap.Result != nil {
		view.DisplayStart = dashboard.FormatWindowTime(snap.Result.Start)
		view.DisplayEnd = dashboard.FormatWindowTime(snap.Result.End)
		view.DisplayShare = dashboard.FormatShare(snap.Result.CleanEnergyShare)
	} else if snap.Error != "" {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, view)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
