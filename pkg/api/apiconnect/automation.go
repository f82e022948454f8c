package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/logflow/pkg/api"
)

// AutomationServiceName is the fully-qualified name of the AutomationService.
const AutomationServiceName = "logflow.v1.AutomationService"

// Procedure paths, used for routing and in interceptors.
const (
	AutomationServiceStartAutomationProcedure  = "/logflow.v1.AutomationService/StartAutomation"
	AutomationServiceSignalAutomationProcedure = "/logflow.v1.AutomationService/SignalAutomation"
	AutomationServiceGetAutomationProcedure    = "/logflow.v1.AutomationService/GetAutomation"
	AutomationServiceListAutomationsProcedure  = "/logflow.v1.AutomationService/ListAutomations"
)

// AutomationServiceClient is a client for the logflow.v1.AutomationService service.
type AutomationServiceClient interface {
	StartAutomation(context.Context, *connect.Request[api.StartAutomationRequest]) (*connect.Response[api.StartAutomationResponse], error)
	SignalAutomation(context.Context, *connect.Request[api.SignalAutomationRequest]) (*connect.Response[api.SignalAutomationResponse], error)
	GetAutomation(context.Context, *connect.Request[api.GetAutomationRequest]) (*connect.Response[api.GetAutomationResponse], error)
	ListAutomations(context.Context, *connect.Request[api.ListAutomationsRequest]) (*connect.Response[api.ListAutomationsResponse], error)
}

// NewAutomationServiceClient constructs a client for the logflow.v1.AutomationService service. Requests
// are JSON encoded; baseURL is the server root (e.g. http://localhost:8080).
func NewAutomationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AutomationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &automationServiceClient{
		startAutomation:  connect.NewClient[api.StartAutomationRequest, api.StartAutomationResponse](httpClient, baseURL+AutomationServiceStartAutomationProcedure, opts...),
		signalAutomation: connect.NewClient[api.SignalAutomationRequest, api.SignalAutomationResponse](httpClient, baseURL+AutomationServiceSignalAutomationProcedure, opts...),
		getAutomation:    connect.NewClient[api.GetAutomationRequest, api.GetAutomationResponse](httpClient, baseURL+AutomationServiceGetAutomationProcedure, opts...),
		listAutomations:  connect.NewClient[api.ListAutomationsRequest, api.ListAutomationsResponse](httpClient, baseURL+AutomationServiceListAutomationsProcedure, opts...),
	}
}

type automationServiceClient struct {
	startAutomation  *connect.Client[api.StartAutomationRequest, api.StartAutomationResponse]
	signalAutomation *connect.Client[api.SignalAutomationRequest, api.SignalAutomationResponse]
	getAutomation    *connect.Client[api.GetAutomationRequest, api.GetAutomationResponse]
	listAutomations  *connect.Client[api.ListAutomationsRequest, api.ListAutomationsResponse]
}

func (c *automationServiceClient) StartAutomation(ctx context.Context, req *connect.Request[api.StartAutomationRequest]) (*connect.Response[api.StartAutomationResponse], error) {
	return c.startAutomation.CallUnary(ctx, req)
}

func (c *automationServiceClient) SignalAutomation(ctx context.Context, req *connect.Request[api.SignalAutomationRequest]) (*connect.Response[api.SignalAutomationResponse], error) {
	return c.signalAutomation.CallUnary(ctx, req)
}

func (c *automationServiceClient) GetAutomation(ctx context.Context, req *connect.Request[api.GetAutomationRequest]) (*connect.Response[api.GetAutomationResponse], error) {
	return c.getAutomation.CallUnary(ctx, req)
}

func (c *automationServiceClient) ListAutomations(ctx context.Context, req *connect.Request[api.ListAutomationsRequest]) (*connect.Response[api.ListAutomationsResponse], error) {
	return c.listAutomations.CallUnary(ctx, req)
}

// AutomationServiceHandler is implemented by the server side of the logflow.v1.AutomationService service.
type AutomationServiceHandler interface {
	StartAutomation(context.Context, *connect.Request[api.StartAutomationRequest]) (*connect.Response[api.StartAutomationResponse], error)
	SignalAutomation(context.Context, *connect.Request[api.SignalAutomationRequest]) (*connect.Response[api.SignalAutomationResponse], error)
	GetAutomation(context.Context, *connect.Request[api.GetAutomationRequest]) (*connect.Response[api.GetAutomationResponse], error)
	ListAutomations(context.Context, *connect.Request[api.ListAutomationsRequest]) (*connect.Response[api.ListAutomationsResponse], error)
}

// NewAutomationServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewAutomationServiceHandler(svc AutomationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AutomationServiceStartAutomationProcedure, connect.NewUnaryHandler(AutomationServiceStartAutomationProcedure, svc.StartAutomation, opts...))
	mux.Handle(AutomationServiceSignalAutomationProcedure, connect.NewUnaryHandler(AutomationServiceSignalAutomationProcedure, svc.SignalAutomation, opts...))
	mux.Handle(AutomationServiceGetAutomationProcedure, connect.NewUnaryHandler(AutomationServiceGetAutomationProcedure, svc.GetAutomation, opts...))
	mux.Handle(AutomationServiceListAutomationsProcedure, connect.NewUnaryHandler(AutomationServiceListAutomationsProcedure, svc.ListAutomations, opts...))
	return "/logflow.v1.AutomationService/", mux
}

// UnimplementedAutomationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAutomationServiceHandler struct{}

func (UnimplementedAutomationServiceHandler) StartAutomation(context.Context, *connect.Request[api.StartAutomationRequest]) (*connect.Response[api.StartAutomationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.AutomationService.StartAutomation is not implemented"))
}

func (UnimplementedAutomationServiceHandler) SignalAutomation(context.Context, *connect.Request[api.SignalAutomationRequest]) (*connect.Response[api.SignalAutomationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.AutomationService.SignalAutomation is not implemented"))
}

func (UnimplementedAutomationServiceHandler) GetAutomation(context.Context, *connect.Request[api.GetAutomationRequest]) (*connect.Response[api.GetAutomationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.AutomationService.GetAutomation is not implemented"))
}

func (UnimplementedAutomationServiceHandler) ListAutomations(context.Context, *connect.Request[api.ListAutomationsRequest]) (*connect.Response[api.ListAutomationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("logflow.v1.AutomationService.ListAutomations is not implemented"))
}
