package control

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vietddude/chargewindow/internal/dashboard"
	"github.com/vietddude/chargewindow/internal/dashboard/health"
	"github.com/vietddude/chargewindow/internal/infra/energyapi"
	"github.com/vietddude/chargewindow/internal/infra/httpclient"
)

// App is the main application struct that manages the dashboard lifecycle.
type App struct {
	cfg          Config
	client       *httpclient.Client
	service      *energyapi.Service
	mix          *dashboard.EnergyMixState
	window       *dashboard.OptimalWindowState
	healthMon    *health.Monitor
	healthServer *health.Server
	log          *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds the application configuration.
type Config struct {
	Port            int
	RefreshInterval time.Duration // 0 = load the mix once on start
	API             httpclient.Config

	// ClientOptions are passed to the API client, e.g. to swap the transport.
	ClientOptions []httpclient.Option
}

// NewApp creates a new App instance with all dependencies initialized.
func NewApp(cfg Config) (*App, error) {
	logger := slog.Default().With("component", "app")

	opts := append([]httpclient.Option{httpclient.WithLogger(slog.Default())}, cfg.ClientOptions...)
	client := httpclient.New(cfg.API, opts...)
	service := energyapi.NewService(client)

	mix := dashboard.NewEnergyMixState(service, slog.Default())
	window := dashboard.NewOptimalWindowState(service, slog.Default())

	healthMon := health.NewMonitor(client.BaseURL(), mix, window)
	healthServer := health.NewServer(healthMon, mix, window, cfg.Port)

	if cfg.API.BaseURL == "" {
		logger.Warn("API base URL is empty, requests will go to relative paths")
	}

	return &App{
		cfg:          cfg,
		client:       client,
		service:      service,
		mix:          mix,
		window:       window,
		healthMon:    healthMon,
		healthServer: healthServer,
		log:          logger,
	}, nil
}

// Start serves the dashboard and loads the energy mix in the background.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	// Start Health Server
	go func() {
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Health server failed", "error", err)
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.runRefresher(ctx)
	}()

	a.log.Info("App started", "port", a.cfg.Port, "api", a.client.BaseURL())
	return nil
}

// Stop stops the HTTP server and releases the API client.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping App...")

	if a.cancel != nil {
		a.cancel()
	}
	err := a.healthServer.Stop(ctx)
	a.wg.Wait()
	if cerr := a.client.Close(); cerr != nil {
		a.log.Warn("Failed to close API client", "error", cerr)
	}
	return err
}

// EnergyMix returns the energy mix panel state.
func (a *App) EnergyMix() *dashboard.EnergyMixState { return a.mix }

// ChargingWindow returns the charging window panel state.
func (a *App) ChargingWindow() *dashboard.OptimalWindowState { return a.window }

// Health returns the current health report.
func (a *App) Health(ctx context.Context) health.HealthReport {
	return a.healthMon.CheckHealth(ctx)
}

func (a *App) runRefresher(ctx context.Context) {
	a.mix.Load(ctx)
	if a.cfg.RefreshInterval <= 0 {
		return
	}

	ticker := time.NewTicker(a.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.log.Debug("Refreshing energy mix")
			a.mix.Load(ctx)
		}
	}
}
