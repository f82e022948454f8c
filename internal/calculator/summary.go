package calculator

import "github.com/mmynk/logflow/internal/models"

// RomaneioTotals pairs a romaneio with the totals of its collection.
type RomaneioTotals struct {
	Romaneio models.Romaneio
	Totals   Totals
}

// Summary holds the dashboard statistics across many romaneios.
type Summary struct {
	TotalRomaneios int

	ByType   Counts
	ByStatus Counts

	TypeShares   Shares
	StatusShares Shares

	TotalItems  int
	TotalWeight float64
	TotalVolume float64

	// CompletionRate is the percentage of completed romaneios, nil when there
	// are none.
	CompletionRate *float64

	// AverageItemsPerRomaneio is nil when there are no romaneios.
	AverageItemsPerRomaneio *float64

	// Anomalies counts diagnostics across every collection, plus each
	// romaneio total left out of a grand total that would overflow.
	Anomalies int
}

// TotalsFor computes the totals of each romaneio's collection.
func TotalsFor(romaneios []models.Romaneio) []RomaneioTotals {
	out := make([]RomaneioTotals, len(romaneios))
	for i, r := range romaneios {
		out[i] = RomaneioTotals{Romaneio: r, Totals: ComputeTotals(r.Items)}
	}
	return out
}

// Summarize computes dashboard statistics for a list of romaneios.
// Item totals are derived from each romaneio's items, never from stored values.
func Summarize(romaneios []models.Romaneio) Summary {
	s := Summary{
		TotalRomaneios: len(romaneios),
		ByType:         GroupBy(romaneios, ByRomaneioType),
		ByStatus:       GroupBy(romaneios, ByRomaneioStatus),
	}
	s.TypeShares = PercentageBreakdown(s.ByType)
	s.StatusShares = PercentageBreakdown(s.ByStatus)

	for _, rt := range TotalsFor(romaneios) {
		s.TotalItems += rt.Totals.TotalItems
		var ok bool
		if s.TotalWeight, ok = addFinite(s.TotalWeight, rt.Totals.TotalWeight); !ok {
			s.Anomalies++
		}
		if s.TotalVolume, ok = addFinite(s.TotalVolume, rt.Totals.TotalVolume); !ok {
			s.Anomalies++
		}
		s.Anomalies += len(rt.Totals.Diagnostics)
	}

	if s.TotalRomaneios > 0 {
		rate := float64(s.ByStatus.Get(string(models.StatusCompleted))) / float64(s.TotalRomaneios) * 100
		avg := float64(s.TotalItems) / float64(s.TotalRomaneios)
		s.CompletionRate = &rate
		s.AverageItemsPerRomaneio = &avg
	}

	return s
}
