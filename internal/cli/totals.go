package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/logflow/internal/calculator"
	"github.com/mmynk/logflow/internal/models"
)

type diagnosticJSON struct {
	Index    int    `json:"index"`
	ItemID   string `json:"item_id,omitempty"`
	Field    string `json:"field"`
	Original string `json:"original"`
	Reason   string `json:"reason"`
}

type groupJSON struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type totalsJSON struct {
	TotalItems        int              `json:"total_items"`
	TotalWeight       float64          `json:"total_weight"`
	TotalVolume       float64          `json:"total_volume"`
	AverageConfidence *float64         `json:"average_confidence"`
	CleanedCount      int              `json:"cleaned_count"`
	VerifiedCount     int              `json:"verified_count"`
	ByCategory        []groupJSON      `json:"by_category"`
	ByType            []groupJSON      `json:"by_type"`
	Groups            []groupJSON      `json:"groups,omitempty"`
	Diagnostics       []diagnosticJSON `json:"diagnostics,omitempty"`
}

func newTotalsCommand() *cobra.Command {
	var groupBy string

	cmd := &cobra.Command{
		Use:   "totals [file]",
		Short: "Compute totals for a JSON array of items",
		Long:  "Reads a JSON array of items from file (or stdin when omitted or \"-\") and prints totals, breakdowns and diagnostics as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sel calculator.Selector[models.Item]
			if groupBy != "" {
				s, ok := calculator.ItemSelector(groupBy)
				if !ok {
					return fmt.Errorf("unknown group-by field %q", groupBy)
				}
				sel = s
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open items file: %w", err)
				}
				defer f.Close()
				in = f
			}

			items, err := readItems(in)
			if err != nil {
				return err
			}

			out := totalsToJSON(calculator.ComputeTotals(items))
			if sel != nil {
				out.Groups = groupsToJSON(calculator.GroupBy(items, sel))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&groupBy, "group-by", "", "also break items down by field: category, type, unit, source, cleaned, verified")
	return cmd
}

func readItems(r io.Reader) ([]models.Item, error) {
	var items []models.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

func totalsToJSON(t calculator.Totals) totalsJSON {
	out := totalsJSON{
		TotalItems:        t.TotalItems,
		TotalWeight:       t.TotalWeight,
		TotalVolume:       t.TotalVolume,
		AverageConfidence: t.AverageConfidence,
		CleanedCount:      t.CleanedCount,
		VerifiedCount:     t.VerifiedCount,
		ByCategory:        groupsToJSON(t.CountByCategory),
		ByType:            groupsToJSON(t.CountByType),
	}
	for _, d := range t.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON{
			Index:    d.Index,
			ItemID:   d.ItemID,
			Field:    d.Field,
			Original: d.Original,
			Reason:   string(d.Reason),
		})
	}
	return out
}

func groupsToJSON(counts calculator.Counts) []groupJSON {
	shares := calculator.PercentageBreakdown(counts)
	out := make([]groupJSON, 0, len(counts))
	for _, c := range counts {
		out = append(out, groupJSON{Key: c.Key, Count: c.Count, Percentage: shares.Get(c.Key)})
	}
	return out
}
