package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/chargewindow/internal/core/domain"
	"github.com/vietddude/chargewindow/internal/dashboard"
)

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Print the energy mix forecast",
	RunE:  runMix,
}

func init() {
	rootCmd.AddCommand(mixCmd)
}

func runMix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, client := newService(cfg)
	defer func() {
		_ = client.Close()
	}()

	days, err := service.GetEnergyMix(cmd.Context())
	if err != nil {
		slog.Error("getEnergyMix error", "error", err)
		return errors.New(dashboard.EnergyMixErrorMessage)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprint(w, "DAY\tDATE\tCLEAN")
	for _, src := range domain.SourcesOrder {
		_, _ = fmt.Fprintf(w, "\t%s", src.Label())
	}
	_, _ = fmt.Fprintln(w)

	for i, day := range days {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s",
			dashboard.DayLabel(i), dashboard.FormatDate(day.Date), dashboard.FormatShare(day.CleanEnergyShare))
		for _, src := range domain.SourcesOrder {
			_, _ = fmt.Fprintf(w, "\t%s", dashboard.FormatShare(day.Sources[src]))
		}
		_, _ = fmt.Fprintln(w)
	}
	return w.Flush()
}
