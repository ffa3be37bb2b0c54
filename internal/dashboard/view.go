package dashboard

import (
	"fmt"
	"time"

	"github.com/vietddude/chargewindow/internal/core/domain"
)

// ChartSlice is one segment of a day's pie chart.
type ChartSlice struct {
	Key   domain.EnergySource `json:"key"`
	Name  string              `json:"name"`
	Value float64             `json:"value"`
	Color string              `json:"color"`
}

// ChartData lists the day's sources in display order, dropping empty ones.
func ChartData(day domain.EnergyMixDay) []ChartSlice {
	slices := make([]ChartSlice, 0, len(domain.SourcesOrder))
	for _, src := range domain.SourcesOrder {
		v := day.Sources[src]
		if v <= 0 {
			continue
		}
		slices = append(slices, ChartSlice{
			Key:   src,
			Name:  src.Label(),
			Value: v,
			Color: domain.SourceColors[src],
		})
	}
	return slices
}

// DayLabel names a forecast day relative to today.
func DayLabel(offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case 2:
		return "The next day"
	default:
		return fmt.Sprintf("In %d days", offset)
	}
}

// FormatDate renders an ISO calendar date as "December 4, 2024".
// Unparseable input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// FormatWindowTime renders an RFC 3339 timestamp as "4 Dec, 14:00" in UTC.
// Unparseable input is returned unchanged.
func FormatWindowTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2 Jan, 15:04")
}

// FormatShare renders a percentage with one decimal.
func FormatShare(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
