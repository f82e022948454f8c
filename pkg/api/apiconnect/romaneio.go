package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/logflow/pkg/api"
)

// RomaneioServiceName is the fully-qualified name of the RomaneioService.
const RomaneioServiceName = "logflow.v1.RomaneioService"

// Procedure paths, used for routing and in interceptors.
const (
	RomaneioServiceCreateRomaneioProcedure    = "/logflow.v1.RomaneioService/CreateRomaneio"
	RomaneioServiceGetRomaneioProcedure       = "/logflow.v1.RomaneioService/GetRomaneio"
	RomaneioServiceListRomaneiosProcedure     = "/logflow.v1.RomaneioService/ListRomaneios"
	RomaneioServiceUpdateStatusProcedure      = "/logflow.v1.RomaneioService/UpdateStatus"
	RomaneioServiceDeleteRomaneioProcedure    = "/logflow.v1.RomaneioService/DeleteRomaneio"
	RomaneioServiceAddItemsProcedure          = "/logflow.v1.RomaneioService/AddItems"
	RomaneioServiceUpdateItemProcedure        = "/logflow.v1.RomaneioService/UpdateItem"
	RomaneioServiceRemoveItemProcedure        = "/logflow.v1.RomaneioService/RemoveItem"
	RomaneioServiceToggleVerifiedProcedure    = "/logflow.v1.RomaneioService/ToggleVerified"
	RomaneioServiceComputeTotalsProcedure     = "/logflow.v1.RomaneioService/ComputeTotals"
	RomaneioServiceGroupItemsProcedure        = "/logflow.v1.RomaneioService/GroupItems"
	RomaneioServiceGetStatsProcedure          = "/logflow.v1.RomaneioService/GetStats"
	RomaneioServiceListCleaningRulesProcedure = "/logflow.v1.RomaneioService/ListCleaningRules"
	RomaneioServiceCleanItemsProcedure        = "/logflow.v1.RomaneioService/CleanItems"
)

// RomaneioServiceClient is a client for the logflow.v1.RomaneioService service.
type RomaneioServiceClient interface {
	CreateRomaneio(context.Context, *connect.Request[api.CreateRomaneioRequest]) (*connect.Response[api.CreateRomaneioResponse], error)
	GetRomaneio(context.Context, *connect.Request[api.GetRomaneioRequest]) (*connect.Response[api.GetRomaneioResponse], error)
	ListRomaneios(context.Context, *connect.Request[api.ListRomaneiosRequest]) (*connect.Response[api.ListRomaneiosResponse], error)
	UpdateStatus(context.Context, *connect.Request[api.UpdateStatusRequest]) (*connect.Response[api.UpdateStatusResponse], error)
	DeleteRomaneio(context.Context, *connect.Request[api.DeleteRomaneioRequest]) (*connect.Response[api.DeleteRomaneioResponse], error)
	AddItems(context.Context, *connect.Request[api.AddItemsRequest]) (*connect.Response[api.AddItemsResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error)
	ToggleVerified(context.Context, *connect.Request[api.ToggleVerifiedRequest]) (*connect.Response[api.ToggleVerifiedResponse], error)
	ComputeTotals(context.Context, *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.ComputeTotalsResponse], error)
	GroupItems(context.Context, *connect.Request[api.GroupItemsRequest]) (*connect.Response[api.GroupItemsResponse], error)
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
	ListCleaningRules(context.Context, *connect.Request[api.ListCleaningRulesRequest]) (*connect.Response[api.ListCleaningRulesResponse], error)
	CleanItems(context.Context, *connect.Request[api.CleanItemsRequest]) (*connect.Response[api.CleanItemsResponse], error)
}

// NewRomaneioServiceClient constructs a client for the logflow.v1.RomaneioService service. Requests
// are JSON encoded; baseURL is the server root (e.g. http://localhost:8080).
func NewRomaneioServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RomaneioServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &romaneioServiceClient{
		createRomaneio:    connect.NewClient[api.CreateRomaneioRequest, api.CreateRomaneioResponse](httpClient, baseURL+RomaneioServiceCreateRomaneioProcedure, opts...),
		getRomaneio:       connect.NewClient[api.GetRomaneioRequest, api.GetRomaneioResponse](httpClient, baseURL+RomaneioServiceGetRomaneioProcedure, opts...),
		listRomaneios:     connect.NewClient[api.ListRomaneiosRequest, api.ListRomaneiosResponse](httpClient, baseURL+RomaneioServiceListRomaneiosProcedure, opts...),
		updateStatus:      connect.NewClient[api.UpdateStatusRequest, api.UpdateStatusResponse](httpClient, baseURL+RomaneioServiceUpdateStatusProcedure, opts...),
		deleteRomaneio:    connect.NewClient[api.DeleteRomaneioRequest, api.DeleteRomaneioResponse](httpClient, baseURL+RomaneioServiceDeleteRomaneioProcedure, opts...),
		addItems:          connect.NewClient[api.AddItemsRequest, api.AddItemsResponse](httpClient, baseURL+RomaneioServiceAddItemsProcedure, opts...),
		updateItem:        connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+RomaneioServiceUpdateItemProcedure, opts...),
		removeItem:        connect.NewClient[api.RemoveItemRequest, api.RemoveItemResponse](httpClient, baseURL+RomaneioServiceRemoveItemProcedure, opts...),
		toggleVerified:    connect.NewClient[api.ToggleVerifiedRequest, api.ToggleVerifiedResponse](httpClient, baseURL+RomaneioServiceToggleVerifiedProcedure, opts...),
		computeTotals:     connect.NewClient[api.ComputeTotalsRequest, api.ComputeTotalsResponse](httpClient, baseURL+RomaneioServiceComputeTotalsProcedure, opts...),
		groupItems:        connect.NewClient[api.GroupItemsRequest, api.GroupItemsResponse](httpClient, baseURL+RomaneioServiceGroupItemsProcedure, opts...),
		getStats:          connect.NewClient[api.GetStatsRequest, api.GetStatsResponse](httpClient, baseURL+RomaneioServiceGetStatsProcedure, opts...),
		listCleaningRules: connect.NewClient[api.ListCleaningRulesRequest, api.ListCleaningRulesResponse](httpClient, baseURL+RomaneioServiceListCleaningRulesProcedure, opts...),
		cleanItems:        connect.NewClient[api.CleanItemsRequest, api.CleanItemsResponse](httpClient, baseURL+RomaneioServiceCleanItemsProcedure, opts...),
	}
}

type romaneioServiceClient struct {
	createRomaneio    *connect.Client[api.CreateRomaneioRequest, api.CreateRomaneioResponse]
	getRomaneio       *connect.Client[api.GetRomaneioRequest, api.GetRomaneioResponse]
	listRomaneios     *connect.Client[api.ListRomaneiosRequest, api.ListRomaneiosResponse]
	updateStatus      *connect.Client[api.UpdateStatusRequest, api.UpdateStatusResponse]
	deleteRomaneio    *connect.Client[api.DeleteRomaneioRequest, api.DeleteRomaneioResponse]
	addItems          *connect.Client[api.AddItemsRequest, api.AddItemsResponse]
	updateItem        *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	removeItem        *connect.Client[api.RemoveItemRequest, api.RemoveItemResponse]
	toggleVerified    *connect.Client[api.ToggleVerifiedRequest, api.ToggleVerifiedResponse]
	computeTotals     *connect.Client[api.ComputeTotalsRequest, api.ComputeTotalsResponse]
	groupItems        *connect.Client[api.GroupItemsRequest, api.GroupItemsResponse]
	getStats          *connect.Client[api.GetStatsRequest, api.GetStatsResponse]
	listCleaningRules *connect.Client[api.ListCleaningRulesRequest, api.ListCleaningRulesResponse]
	cleanItems        *connect.Client[api.CleanItemsRequest, api.CleanItemsResponse]
}

func (c *romaneioServiceClient) CreateRomaneio(ctx context.Context, req *connect.Request[api.CreateRomaneioRequest]) (*connect.Response[api.CreateRomaneioResponse], error) {
	return c.createRomaneio.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) GetRomaneio(ctx context.Context, req *connect.Request[api.GetRomaneioRequest]) (*connect.Response[api.GetRomaneioResponse], error) {
	return c.getRomaneio.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) ListRomaneios(ctx context.Context, req *connect.Request[api.ListRomaneiosRequest]) (*connect.Response[api.ListRomaneiosResponse], error) {
	return c.listRomaneios.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) UpdateStatus(ctx context.Context, req *connect.Request[api.UpdateStatusRequest]) (*connect.Response[api.UpdateStatusResponse], error) {
	return c.updateStatus.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) DeleteRomaneio(ctx context.Context, req *connect.Request[api.DeleteRomaneioRequest]) (*connect.Response[api.DeleteRomaneioResponse], error) {
	return c.deleteRomaneio.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) AddItems(ctx context.Context, req *connect.Request[api.AddItemsRequest]) (*connect.Response[api.AddItemsResponse], error) {
	return c.addItems.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) ToggleVerified(ctx context.Context, req *connect.Request[api.ToggleVerifiedRequest]) (*connect.Response[api.ToggleVerifiedResponse], error) {
	return c.toggleVerified.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) ComputeTotals(ctx context.Context, req *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.ComputeTotalsResponse], error) {
	return c.computeTotals.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) GroupItems(ctx context.Context, req *connect.Request[api.GroupItemsRequest]) (*connect.Response[api.GroupItemsResponse], error) {
	return c.groupItems.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) ListCleaningRules(ctx context.Context, req *connect.Request[api.ListCleaningRulesRequest]) (*connect.Response[api.ListCleaningRulesResponse], error) {
	return c.listCleaningRules.CallUnary(ctx, req)
}

func (c *romaneioServiceClient) CleanItems(ctx context.Context, req *connect.Request[api.CleanItemsRequest]) (*connect.Response[api.CleanItemsResponse], error) {
	return c.cleanItems.CallUnary(ctx, req)
}

// RomaneioServiceHandler is implemented by the server side of the logflow.v1.RomaneioService service.
type RomaneioServiceHandler interface {
	CreateRomaneio(context.Context, *connect.Request[api.CreateRomaneioRequest]) (*connect.Response[api.CreateRomaneioResponse], error)
	GetRomaneio(context.Context, *connect.Request[api.GetRomaneioRequest]) (*connect.Response[api.GetRomaneioResponse], error)
	ListRomaneios(context.Context, *connect.Request[api.ListRomaneiosRequest]) (*connect.Response[api.ListRomaneiosResponse], error)
	UpdateStatus(context.Context, *connect.Request[api.UpdateStatusRequest]) (*connect.Response[api.UpdateStatusResponse], error)
	DeleteRomaneio(context.Context, *connect.Request[api.DeleteRomaneioRequest]) (*connect.Response[api.DeleteRomaneioResponse], error)
	AddItems(context.Context, *connect.Request[api.AddItemsRequest]) (*connect.Response[api.AddItemsResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error)
	ToggleVerified(context.Context, *connect.Request[api.ToggleVerifiedRequest]) (*connect.Response[api.ToggleVerifiedResponse], error)
	ComputeTotals(context.Context, *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.ComputeTotalsResponse], error)
	GroupItems(context.Context, *connect.Request[api.GroupItemsRequest]) (*connect.Response[api.GroupItemsResponse], error)
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
	ListCleaningRules(context.Context, *connect.Request[api.ListCleaningRulesRequest]) (*connect.Response[api.ListCleaningRulesResponse], error)
	CleanItems(context.Context, *connect.Request[api.CleanItemsRequest]) (*connect.Response[api.CleanItemsResponse], error)
}

// NewRomaneioServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewRomaneioServiceHandler(svc RomaneioServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(RomaneioServiceCreateRomaneioProcedure, connect.NewUnaryHandler(RomaneioServiceCreateRomaneioProcedure, svc.CreateRomaneio, opts...))
	mux.Handle(RomaneioServiceGetRomaneioProcedure, connect.NewUnaryHandler(RomaneioServiceGetRomaneioProcedure, svc.GetRomaneio, opts...))
	mux.Handle(RomaneioServiceListRomaneiosProcedure, connect.NewUnaryHandler(RomaneioServiceListRomaneiosProcedure, svc.ListRomaneios, opts...))
	mux.Handle(RomaneioServiceUpdateStatusProcedure, connect.NewUnaryHandler(RomaneioServiceUpdateStatusProcedure, svc.UpdateStatus, opts...))
	mux.Handle(RomaneioServiceDeleteRomaneioProcedure, connect.NewUnaryHandler(RomaneioServiceDeleteRomaneioProcedure, svc.DeleteRomaneio, opts...))
	mux.Handle(RomaneioServiceAddItemsProcedure, connect.NewUnaryHandler(RomaneioServiceAddItemsProcedure, svc.AddItems, opts...))
	mux.Handle(RomaneioServiceUpdateItemProcedure, connect.NewUnaryHandler(RomaneioServiceUpdateItemProcedure, svc.UpdateItem, opts...))
	mux.Handle(RomaneioServiceRemoveItemProcedure, connect.NewUnaryHandler(RomaneioServiceRemoveItemProcedure, svc.RemoveItem, opts...))
	mux.Handle(RomaneioServiceToggleVerifiedProcedure, connect.NewUnaryHandler(RomaneioServiceToggleVerifiedProcedure, svc.ToggleVerified, opts...))
	mux.Handle(RomaneioServiceComputeTotalsProcedure, connect.NewUnaryHandler(RomaneioServiceComputeTotalsProcedure, svc.ComputeTotals, opts...))
	mux.Handle(RomaneioServiceGroupItemsProcedure, connect.NewUnaryHandler(RomaneioServiceGroupItemsProcedure, svc.GroupItems, opts...))
	mux.Handle(RomaneioServiceGetStatsProcedure, connect.NewUnaryHandler(RomaneioServiceGetStatsProcedure, svc.GetStats, opts...))
	mux.Handle(RomaneioServiceListCleaningRulesProcedure, connect.NewUnaryHandler(RomaneioServiceListCleaningRulesProcedure, svc.ListCleaningRules, opts...))
	mux.Handle(RomaneioServiceCleanItemsProcedure, connect.NewUnaryHandler(RomaneioServiceCleanItemsProcedure, svc.CleanItems, opts...))
	return "/logflow.v1.RomaneioService/", mux
}

// UnimplementedRomaneioServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedRomaneioServiceHandler struct{}

func (UnimplementedRomaneioServiceHandler) CreateRomaneio(context.Context, *connect.Request[api.CreateRomaneioRequest]) (*connect.Response[api.CreateRomaneioResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.CreateRomaneio is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) GetRomaneio(context.Context, *connect.Request[api.GetRomaneioRequest]) (*connect.Response[api.GetRomaneioResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.GetRomaneio is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) ListRomaneios(context.Context, *connect.Request[api.ListRomaneiosRequest]) (*connect.Response[api.ListRomaneiosResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.ListRomaneios is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) UpdateStatus(context.Context, *connect.Request[api.UpdateStatusRequest]) (*connect.Response[api.UpdateStatusResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.UpdateStatus is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) DeleteRomaneio(context.Context, *connect.Request[api.DeleteRomaneioRequest]) (*connect.Response[api.DeleteRomaneioResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.DeleteRomaneio is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) AddItems(context.Context, *connect.Request[api.AddItemsRequest]) (*connect.Response[api.AddItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.AddItems is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.UpdateItem is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.RemoveItem is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) ToggleVerified(context.Context, *connect.Request[api.ToggleVerifiedRequest]) (*connect.Response[api.ToggleVerifiedResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.ToggleVerified is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) ComputeTotals(context.Context, *connect.Request[api.ComputeTotalsRequest]) (*connect.Response[api.ComputeTotalsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.ComputeTotals is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) GroupItems(context.Context, *connect.Request[api.GroupItemsRequest]) (*connect.Response[api.GroupItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.GroupItems is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.GetStats is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) ListCleaningRules(context.Context, *connect.Request[api.ListCleaningRulesRequest]) (*connect.Response[api.ListCleaningRulesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.ListCleaningRules is not implemented"))
}

func (UnimplementedRomaneioServiceHandler) CleanItems(context.Context, *connect.Request[api.CleanItemsRequest]) (*connect.Response[api.CleanItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.RomaneioService.CleanItems is not implemented"))
}
