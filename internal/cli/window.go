package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietddude/chargewindow/internal/core/domain"
	"github.com/vietddude/chargewindow/internal/dashboard"
)

var windowHours int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Find the cleanest charging window",
	RunE:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&windowHours, "hours", domain.DefaultChargingHours,
		fmt.Sprintf("charging duration in hours (%d-%d)", domain.MinChargingHours, domain.MaxChargingHours))
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	form := &dashboard.ChargingForm{Hours: windowHours}
	if !domain.ValidChargingHours(form.Hours) {
		return fmt.Errorf("--hours %d: %w", form.Hours, domain.ErrHoursOutOfRange)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, client := newService(cfg)
	defer func() {
		_ = client.Close()
	}()

	state := dashboard.NewOptimalWindowState(service, nil)
	snap, err := form.Submit(cmd.Context(), state)
	if err != nil {
		return err
	}
	if snap.Error != "" {
		return errors.New(snap.Error)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Best %d-hour charging window\n", snap.Hours)
	_, _ = fmt.Fprintf(out, "  Start: %s\n", dashboard.FormatWindowTime(snap.Result.Start))
	_, _ = fmt.Fprintf(out, "  End:   %s\n", dashboard.FormatWindowTime(snap.Result.End))
	_, _ = fmt.Fprintf(out, "  Clean energy: %s\n", dashboard.FormatShare(snap.Result.CleanEnergyShare))
	return nil
}
