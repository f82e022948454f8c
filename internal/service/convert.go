package service

import (
	"github.com/mmynk/logflow/internal/automation"
	"github.com/mmynk/logflow/internal/calculator"
	"github.com/mmynk/logflow/internal/cleaning"
	"github.com/mmynk/logflow/internal/models"
	"github.com/mmynk/logflow/pkg/api"
)

func itemFromAPI(in *api.Item) models.Item {
	if in == nil {
		return models.Item{}
	}
	out := models.Item{
		ID:              in.Id,
		Kind:            models.ItemKind(in.Kind),
		ProductCode:     in.ProductCode,
		ProductName:     in.ProductName,
		Description:     in.Description,
		Notes:           in.Notes,
		Location:        in.Location,
		Category:        in.Category,
		Source:          in.Source,
		Unit:            models.Unit(in.Unit),
		Weight:          copyFloat(in.Weight),
		EstimatedWeight: copyFloat(in.EstimatedWeight),
		Volume:          copyFloat(in.Volume),
		Confidence:      copyFloat(in.Confidence),
		IsCleaned:       in.IsCleaned,
		IsVerified:      in.IsVerified,
	}
	if in.Quantity != nil {
		out.Quantity = models.Int(int(*in.Quantity))
	}
	return out
}

func itemsFromAPI(in []*api.Item) []models.Item {
	out := make([]models.Item, 0, len(in))
	for _, it := range in {
		out = append(out, itemFromAPI(it))
	}
	return out
}

func itemToAPI(in models.Item) *api.Item {
	out := &api.Item{
		Id:              in.ID,
		Kind:            string(in.Kind),
		ProductCode:     in.ProductCode,
		ProductName:     in.ProductName,
		Description:     in.Description,
		Notes:           in.Notes,
		Location:        in.Location,
		Category:        in.Category,
		Source:          in.Source,
		Unit:            string(in.Unit),
		Weight:          copyFloat(in.Weight),
		EstimatedWeight: copyFloat(in.EstimatedWeight),
		Volume:          copyFloat(in.Volume),
		Confidence:      copyFloat(in.Confidence),
		IsCleaned:       in.IsCleaned,
		IsVerified:      in.IsVerified,
	}
	if in.Quantity != nil {
		q := int64(*in.Quantity)
		out.Quantity = &q
	}
	return out
}

func itemsToAPI(in []models.Item) []*api.Item {
	out := make([]*api.Item, 0, len(in))
	for _, it := range in {
		out = append(out, itemToAPI(it))
	}
	return out
}

func countsToAPI(in calculator.Counts) []*api.GroupCount {
	out := make([]*api.GroupCount, 0, len(in))
	for _, g := range in {
		out = append(out, &api.GroupCount{Key: g.Key, Count: int32(g.Count)})
	}
	return out
}

func sharesToAPI(in calculator.Shares) []*api.GroupShare {
	out := make([]*api.GroupShare, 0, len(in))
	for _, g := range in {
		out = append(out, &api.GroupShare{Key: g.Key, Percent: g.Percent})
	}
	return out
}

func totalsToAPI(t calculator.Totals) *api.Totals {
	out := &api.Totals{
		TotalItems:        int64(t.TotalItems),
		TotalWeight:       t.TotalWeight,
		TotalVolume:       t.TotalVolume,
		AverageConfidence: copyFloat(t.AverageConfidence),
		CountByCategory:   countsToAPI(t.CountByCategory),
		CountByType:       countsToAPI(t.CountByType),
		CleanedCount:      int32(t.CleanedCount),
		VerifiedCount:     int32(t.VerifiedCount),
	}
	for _, d := range t.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, &api.Diagnostic{
			Index:    int32(d.Index),
			ItemId:   d.ItemID,
			Field:    d.Field,
			Original: d.Original,
			Reason:   string(d.Reason),
		})
	}
	return out
}

// romaneioToAPI converts a romaneio, recomputing its totals.
func romaneioToAPI(r *models.Romaneio) *api.Romaneio {
	return &api.Romaneio{
		Id:        r.ID,
		Number:    r.Number,
		Title:     r.Title,
		Type:      string(r.Type),
		Status:    string(r.Status),
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		Items:     itemsToAPI(r.Items),
		Totals:    totalsToAPI(calculator.ComputeTotals(r.Items)),
	}
}

func summaryToAPI(rt calculator.RomaneioTotals) *api.RomaneioSummary {
	r := rt.Romaneio
	return &api.RomaneioSummary{
		Id:        r.ID,
		Number:    r.Number,
		Title:     r.Title,
		Type:      string(r.Type),
		Status:    string(r.Status),
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		Totals:    totalsToAPI(rt.Totals),
	}
}

func statsToAPI(s calculator.Summary) *api.Stats {
	return &api.Stats{
		TotalRomaneios:          int32(s.TotalRomaneios),
		ByType:                  countsToAPI(s.ByType),
		ByStatus:                countsToAPI(s.ByStatus),
		TypeShares:              sharesToAPI(s.TypeShares),
		StatusShares:            sharesToAPI(s.StatusShares),
		TotalItems:              int64(s.TotalItems),
		TotalWeight:             s.TotalWeight,
		TotalVolume:             s.TotalVolume,
		CompletionRate:          copyFloat(s.CompletionRate),
		AverageItemsPerRomaneio: copyFloat(s.AverageItemsPerRomaneio),
		Anomalies:               int32(s.Anomalies),
	}
}

func issuesToAPI(in []cleaning.Issue) []*api.CleaningIssue {
	out := make([]*api.CleaningIssue, 0, len(in))
	for _, is := range in {
		out = append(out, &api.CleaningIssue{
			Index:   int32(is.Index),
			ItemId:  is.ItemID,
			Rule:    is.Rule,
			Message: is.Message,
		})
	}
	return out
}

func ruleToAPI(d cleaning.Definition) *api.CleaningRule {
	def := cleaning.Encode(d)
	return &api.CleaningRule{
		Name:         def.Name,
		Type:         def.Type,
		Description:  def.Description,
		Active:       d.Active,
		Priority:     int32(def.Priority),
		Fields:       def.Fields,
		Field:        def.Field,
		Mode:         def.Mode,
		Keep:         def.Keep,
		Pattern:      def.Pattern,
		Drop:         def.Drop,
		Replacements: def.Replacements,
		Sources:      def.Sources,
		Target:       def.Target,
		Separator:    def.Separator,
	}
}

func jobToAPI(j automation.Job) *api.AutomationJob {
	return &api.AutomationJob{
		Id:         j.ID,
		RomaneioId: j.RomaneioID,
		Phase:      string(j.State.Phase),
		Step:       j.CurrentStep(),
		StepIndex:  int32(j.State.Step),
		Steps:      append([]string(nil), j.Steps...),
		Reason:     j.State.Reason,
		Progress:   j.Progress(),
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
