package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/logflow/internal/calculator"
	"github.com/mmynk/logflow/internal/cleaning"
	"github.com/mmynk/logflow/internal/collection"
	"github.com/mmynk/logflow/internal/models"
	"github.com/mmynk/logflow/internal/storage"
	"github.com/mmynk/logflow/pkg/api"
	"github.com/mmynk/logflow/pkg/api/apiconnect"
)

// RomaneioService implements the Connect RomaneioService
type RomaneioService struct {
	apiconnect.UnimplementedRomaneioServiceHandler
	store storage.Store
	rules *cleaning.Registry
	ids   collection.IDProvider

	onClean func(CleaningReport)

	// mu serialises read-modify-write cycles on item collections.
	mu sync.Mutex
}

// CleaningReport describes one finished cleaning pass.
type CleaningReport struct {
	RomaneioID string
	Saved      bool
	Result     cleaning.Result
}

// Option configures a RomaneioService.
type Option func(*RomaneioService)

// WithCleaningObserver registers fn to receive a report of every cleaning pass.
func WithCleaningObserver(fn func(CleaningReport)) Option {
	return func(s *RomaneioService) { s.onClean = fn }
}

// NewRomaneioService creates a new RomaneioService.
// A nil rules registry serves cleaning.DefaultRules; a nil ids uses UUIDs.
func NewRomaneioService(store storage.Store, rules *cleaning.Registry, ids collection.IDProvider, opts ...Option) *RomaneioService {
	if rules == nil {
		rules = cleaning.NewRegistry(cleaning.DefaultRules())
	}
	if ids == nil {
		ids = collection.UUIDProvider{}
	}
	s := &RomaneioService{store: store, rules: rules, ids: ids}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRomaneio opens a new draft romaneio, optionally with initial items.
func (s *RomaneioService) CreateRomaneio(ctx context.Context, req *connect.Request[api.CreateRomaneioRequest]) (*connect.Response[api.CreateRomaneioResponse], error) {
	slog.Info("CreateRomaneio request received", "type", req.Msg.Type, "items", len(req.Msg.Items))

	typ := models.RomaneioType(req.Msg.Type)
	if !typ.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown romaneio type %q", req.Msg.Type))
	}
	items, err := normalizeItems(typ, itemsFromAPI(req.Msg.Items))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	r := &models.Romaneio{
		Title:     req.Msg.Title,
		Type:      typ,
		Status:    models.StatusDraft,
		CreatedBy: req.Msg.CreatedBy,
		Items:     collection.Collection{}.Import(s.ids, items).Items(),
	}
	if err := s.store.CreateRomaneio(ctx, r); err != nil {
		slog.Error("CreateRomaneio failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Romaneio created", "romaneio_id", r.ID, "number", r.Number)
	return connect.NewResponse(&api.CreateRomaneioResponse{Romaneio: romaneioToAPI(r)}), nil
}

// GetRomaneio returns a romaneio with its items and recomputed totals.
func (s *RomaneioService) GetRomaneio(ctx context.Context, req *connect.Request[api.GetRomaneioRequest]) (*connect.Response[api.GetRomaneioResponse], error) {
	slog.Info("GetRomaneio request received", "romaneio_id", req.Msg.Id)

	r, err := s.store.GetRomaneio(ctx, req.Msg.Id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetRomaneioResponse{Romaneio: romaneioToAPI(r)}), nil
}

// ListRomaneios returns list rows with totals recomputed from each collection.
func (s *RomaneioService) ListRomaneios(ctx context.Context, req *connect.Request[api.ListRomaneiosRequest]) (*connect.Response[api.ListRomaneiosResponse], error) {
	slog.Info("ListRomaneios request received", "type", req.Msg.Type, "status", req.Msg.Status)

	filter := storage.ListFilter{
		Type:   models.RomaneioType(req.Msg.Type),
		Status: models.Status(req.Msg.Status),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown romaneio type %q", req.Msg.Type))
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown status %q", req.Msg.Status))
	}

	romaneios, err := s.store.ListRomaneios(ctx, filter)
	if err != nil {
		slog.Error("ListRomaneios failed", "error", err)
		return nil, toConnectError(err)
	}

	rows := make([]*api.RomaneioSummary, 0, len(romaneios))
	for _, rt := range calculator.TotalsFor(deref(romaneios)) {
		rows = append(rows, summaryToAPI(rt))
	}
	return connect.NewResponse(&api.ListRomaneiosResponse{Romaneios: rows}), nil
}

// UpdateStatus moves a romaneio through its lifecycle.
func (s *RomaneioService) UpdateStatus(ctx context.Context, req *connect.Request[api.UpdateStatusRequest]) (*connect.Response[api.UpdateStatusResponse], error) {
	slog.Info("UpdateStatus request received", "romaneio_id", req.Msg.Id, "status", req.Msg.Status)

	next := models.Status(req.Msg.Status)
	if !next.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown status %q", req.Msg.Status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.store.GetRomaneio(ctx, req.Msg.Id)
	if err != nil {
		return nil, toConnectError(err)
	}
	if r.Status != next {
		if !r.Status.CanTransitionTo(next) {
			return nil, connect.NewError(connect.CodeFailedPrecondition,
				fmt.Errorf("cannot move romaneio from %s to %s", r.Status, next))
		}
		if err := s.store.UpdateStatus(ctx, r.ID, next); err != nil {
			slog.Error("UpdateStatus failed", "romaneio_id", r.ID, "error", err)
			return nil, toConnectError(err)
		}
		slog.Info("Romaneio status changed", "romaneio_id", r.ID, "from", r.Status, "to", next)
		r.Status = next
	}
	return connect.NewResponse(&api.UpdateStatusResponse{Romaneio: romaneioToAPI(r)}), nil
}

// DeleteRomaneio removes a romaneio and its items.
func (s *RomaneioService) DeleteRomaneio(ctx context.Context, req *connect.Request[api.DeleteRomaneioRequest]) (*connect.Response[api.DeleteRomaneioResponse], error) {
	slog.Info("DeleteRomaneio request received", "romaneio_id", req.Msg.Id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteRomaneio(ctx, req.Msg.Id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteRomaneioResponse{}), nil
}

// AddItems appends items (single add or bulk import) with fresh IDs.
func (s *RomaneioService) AddItems(ctx context.Context, req *connect.Request[api.AddItemsRequest]) (*connect.Response[api.AddItemsResponse], error) {
	slog.Info("AddItems request received", "romaneio_id", req.Msg.RomaneioId, "items", len(req.Msg.Items))

	if len(req.Msg.Items) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("at least one item is required"))
	}

	var added []models.Item
	r, err := s.mutate(ctx, req.Msg.RomaneioId, func(r *models.Romaneio, c collection.Collection) (collection.Collection, error) {
		items, err := normalizeItems(r.Type, itemsFromAPI(req.Msg.Items))
		if err != nil {
			return c, connect.NewError(connect.CodeInvalidArgument, err)
		}
		next := c.Import(s.ids, items)
		added = next.Items()[c.Len():]
		return next, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddItemsResponse{
		Romaneio: romaneioToAPI(r),
		Added:    itemsToAPI(added),
	}), nil
}

// UpdateItem replaces one item in place.
func (s *RomaneioService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	if req.Msg.Item == nil || req.Msg.Item.Id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("item id is required"))
	}
	slog.Info("UpdateItem request received", "romaneio_id", req.Msg.RomaneioId, "item_id", req.Msg.Item.Id)

	r, err := s.mutate(ctx, req.Msg.RomaneioId, func(r *models.Romaneio, c collection.Collection) (collection.Collection, error) {
		items, err := normalizeItems(r.Type, []models.Item{itemFromAPI(req.Msg.Item)})
		if err != nil {
			return c, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return c.Replace(items[0])
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateItemResponse{Romaneio: romaneioToAPI(r)}), nil
}

// RemoveItem deletes one item.
func (s *RomaneioService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error) {
	slog.Info("RemoveItem request received", "romaneio_id", req.Msg.RomaneioId, "item_id", req.Msg.ItemId)

	r, err := s.mutate(ctx, req.Msg.RomaneioId, func(_ *models.Romaneio, c collection.Collection) (collection.Collection, error) {
		return c.Remove(req.Msg.ItemId)
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveItemResponse{Romaneio: romaneioToAPI(r)}), nil
}

// ToggleVerified flips the verified flag of an automated item.
func (s *RomaneioService) ToggleVerified(ctx context.Context, req *connect.Request[api.ToggleVerifiedRequest]) (*connect.Response[api.ToggleVerifiedResponse], error) {
	slog.Info("ToggleVerified request received", "romaneio_id", req.Msg.RomaneioId, "item_id", req.Msg.ItemId)

	r, err := s.mutate(ctx, req.Msg.RomaneioId, func(_ *models.Romaneio, c collection.Collection) (collection.Collection, error) {
		return c.ToggleVerified(req.Msg.ItemId)
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ToggleVerifiedResponse{Romaneio: romaneioToAPI(r)}), nil
}

// ComputeTotals aggregates an ad-hoc collection.
func (s *RomaneioService) ComputeTotals(ctx context.Context, req *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.ComputeTotalsResponse], error) {
	slog.Info("ComputeTotals request received", "items", len(req.Msg.Items))

	totals := calculator.ComputeTotals(itemsFromAPI(req.Msg.Items))
	if n := len(totals.Diagnostics); n > 0 {
		slog.Debug("ComputeTotals substituted anomalous values", "diagnostics", n)
	}
	return connect.NewResponse(&api.ComputeTotalsResponse{Totals: totalsToAPI(totals)}), nil
}

// GroupItems counts items per tag value with a percentage breakdown.
func (s *RomaneioService) GroupItems(ctx context.Context, req *connect.Request[api.GroupItemsRequest]) (*connect.Response[api.GroupItemsResponse], error) {
	slog.Info("GroupItems request received", "romaneio_id", req.Msg.RomaneioId, "field", req.Msg.Field)

	selector, ok := calculator.ItemSelector(req.Msg.Field)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("cannot group by %q", req.Msg.Field))
	}

	items := itemsFromAPI(req.Msg.Items)
	if req.Msg.RomaneioId != "" {
		r, err := s.store.GetRomaneio(ctx, req.Msg.RomaneioId)
		if err != nil {
			return nil, toConnectError(err)
		}
		items = r.Items
	}

	counts := calculator.GroupBy(items, selector)
	return connect.NewResponse(&api.GroupItemsResponse{
		Groups: countsToAPI(counts),
		Shares: sharesToAPI(calculator.PercentageBreakdown(counts)),
		Total:  int32(counts.Total()),
	}), nil
}

// GetStats returns the dashboard statistics over every stored romaneio.
func (s *RomaneioService) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	slog.Info("GetStats request received")

	romaneios, err := s.store.ListRomaneios(ctx, storage.ListFilter{})
	if err != nil {
		slog.Error("GetStats failed", "error", err)
		return nil, toConnectError(err)
	}
	summary := calculator.Summarize(deref(romaneios))
	return connect.NewResponse(&api.GetStatsResponse{Stats: statsToAPI(summary)}), nil
}

// ListCleaningRules returns the configured cleaning rules in priority order.
func (s *RomaneioService) ListCleaningRules(ctx context.Context, req *connect.Request[api.ListCleaningRulesRequest]) (*connect.Response[api.ListCleaningRulesResponse], error) {
	slog.Info("ListCleaningRules request received")

	rules := s.rules.Rules().Sorted()
	out := make([]*api.CleaningRule, 0, len(rules))
	for _, d := range rules {
		out = append(out, ruleToAPI(d))
	}
	return connect.NewResponse(&api.ListCleaningRulesResponse{Rules: out}), nil
}

// CleanItems runs cleaning rules over a romaneio's items. The stored
// collection is only replaced when Save is set.
func (s *RomaneioService) CleanItems(ctx context.Context, req *connect.Request[api.CleanItemsRequest]) (*connect.Response[api.CleanItemsResponse], error) {
	slog.Info("CleanItems request received",
		"romaneio_id", req.Msg.RomaneioId,
		"rules", req.Msg.RuleNames,
		"save", req.Msg.Save,
	)

	available := s.rules.Rules()
	for _, name := range req.Msg.RuleNames {
		if _, ok := available.Lookup(name); !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown cleaning rule %q", name))
		}
	}
	selected := available.Select(req.Msg.RuleNames)
	// Explicitly named rules run even when configured inactive.
	for i := range selected {
		selected[i].Active = true
	}

	var result cleaning.Result
	clean := func(_ *models.Romaneio, c collection.Collection) (collection.Collection, error) {
		result = cleaning.Apply(selected, c.Items())
		return collection.New(result.Items...), nil
	}

	var (
		r   *models.Romaneio
		err error
	)
	if req.Msg.Save {
		r, err = s.mutate(ctx, req.Msg.RomaneioId, clean)
	} else {
		r, err = s.store.GetRomaneio(ctx, req.Msg.RomaneioId)
		if err == nil {
			_, err = clean(r, collection.New(r.Items...))
		}
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Cleaning finished",
		"romaneio_id", r.ID,
		"original", result.OriginalCount,
		"cleaned", result.CleanedCount,
		"removed", result.RemovedCount,
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
	)
	if s.onClean != nil {
		s.onClean(CleaningReport{RomaneioID: r.ID, Saved: req.Msg.Save, Result: result})
	}

	resp := &api.CleanItemsResponse{
		OriginalCount: int32(result.OriginalCount),
		CleanedCount:  int32(result.CleanedCount),
		RemovedCount:  int32(result.RemovedCount),
		Warnings:      issuesToAPI(result.Warnings),
		Errors:        issuesToAPI(result.Errors),
		Items:         itemsToAPI(result.Items),
	}
	if req.Msg.Save {
		resp.Romaneio = romaneioToAPI(r)
	}
	return connect.NewResponse(resp), nil
}

// mutate loads a romaneio, applies fn to its collection and stores the result.
// Finalized romaneios are read-only.
func (s *RomaneioService) mutate(ctx context.Context, id string, fn func(*models.Romaneio, collection.Collection) (collection.Collection, error)) (*models.Romaneio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.store.GetRomaneio(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == models.StatusCompleted || r.Status == models.StatusCancelled {
		return nil, fmt.Errorf("%w: %s", errFinalized, r.Number)
	}

	next, err := fn(r, collection.New(r.Items...))
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplaceItems(ctx, r.ID, next.Items()); err != nil {
		slog.Error("Failed to store items", "romaneio_id", r.ID, "error", err)
		return nil, err
	}
	r.Items = next.Items()
	return r, nil
}

// normalizeItems fills in the item kind from the romaneio type and rejects
// items of another kind.
func normalizeItems(typ models.RomaneioType, items []models.Item) ([]models.Item, error) {
	want := typ.ItemKind()
	for i := range items {
		switch items[i].Kind {
		case "":
			items[i].Kind = want
		case want:
		default:
			return nil, fmt.Errorf("item %d: kind %q does not belong in a %s romaneio", i, items[i].Kind, typ)
		}
	}
	return items, nil
}

func deref(in []*models.Romaneio) []models.Romaneio {
	out := make([]models.Romaneio, 0, len(in))
	for _, r := range in {
		out = append(out, *r)
	}
	return out
}
