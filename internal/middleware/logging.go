// Package middleware holds the Connect interceptors and HTTP wrappers shared
// by every LogFlow service.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/logflow/pkg/api"
)

// LoggingInterceptor returns a Connect interceptor that logs one line per RPC.
// Each line carries the procedure, peer and latency, plus the romaneio, item
// or automation job the request targets when it names one.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := append(targetAttrs(req.Any()),
				slog.String("procedure", req.Spec().Procedure),
				slog.String("peer", req.Peer().Addr),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				level, msg = errorLevel(err), "RPC error"
				attrs = append(attrs, slog.String("code", connect.CodeOf(err).String()), slog.Any("error", err))
			}
			slog.LogAttrs(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}

// errorLevel reports caller mistakes at WARN and server faults at ERROR.
func errorLevel(err error) slog.Level {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal && connectErr.Code() != connect.CodeUnknown {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// targetAttrs extracts the identifiers a request message is scoped to.
func targetAttrs(msg any) []slog.Attr {
	var romaneioID, itemID, jobID string
	switch m := msg.(type) {
	case *api.GetRomaneioRequest:
		romaneioID = m.Id
	case *api.UpdateStatusRequest:
		romaneioID = m.Id
	case *api.DeleteRomaneioRequest:
		romaneioID = m.Id
	case *api.AddItemsRequest:
		romaneioID = m.RomaneioId
	case *api.UpdateItemRequest:
		romaneioID = m.RomaneioId
		if m.Item != nil {
			itemID = m.Item.Id
		}
	case *api.RemoveItemRequest:
		romaneioID, itemID = m.RomaneioId, m.ItemId
	case *api.ToggleVerifiedRequest:
		romaneioID, itemID = m.RomaneioId, m.ItemId
	case *api.GroupItemsRequest:
		romaneioID = m.RomaneioId
	case *api.CleanItemsRequest:
		romaneioID = m.RomaneioId
	case *api.StartAutomationRequest:
		romaneioID = m.RomaneioId
	case *api.ListAutomationsRequest:
		romaneioID = m.RomaneioId
	case *api.SignalAutomationRequest:
		jobID = m.JobId
	case *api.GetAutomationRequest:
		jobID = m.JobId
	}

	attrs := make([]slog.Attr, 0, 6)
	if romaneioID != "" {
		attrs = append(attrs, slog.String("romaneio_id", romaneioID))
	}
	if itemID != "" {
		attrs = append(attrs, slog.String("item_id", itemID))
	}
	if jobID != "" {
		attrs = append(attrs, slog.String("job_id", jobID))
	}
	return attrs
}
