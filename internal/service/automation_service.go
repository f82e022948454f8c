package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/logflow/internal/automation"
	"github.com/mmynk/logflow/internal/models"
	"github.com/mmynk/logflow/internal/storage"
	"github.com/mmynk/logflow/pkg/api"
	"github.com/mmynk/logflow/pkg/api/apiconnect"
)

// AutomationService implements the Connect AutomationService. Jobs advance
// only when the processing service reports a step via SignalAutomation.
type AutomationService struct {
	apiconnect.UnimplementedAutomationServiceHandler
	store   storage.Store
	tracker *automation.Tracker
}

// NewAutomationService creates a new AutomationService.
func NewAutomationService(store storage.Store, tracker *automation.Tracker) *AutomationService {
	return &AutomationService{store: store, tracker: tracker}
}

// StartAutomation creates a job for an automated romaneio and starts it.
func (s *AutomationService) StartAutomation(ctx context.Context, req *connect.Request[api.StartAutomationRequest]) (*connect.Response[api.StartAutomationResponse], error) {
	slog.Info("StartAutomation request received", "romaneio_id", req.Msg.RomaneioId)

	r, err := s.store.GetRomaneio(ctx, req.Msg.RomaneioId)
	if err != nil {
		return nil, toConnectError(err)
	}
	if r.Type != models.TypeAutomated {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("romaneio %s is %s, not automated", r.Number, r.Type))
	}

	job := s.tracker.Create(r.ID)
	job, err = s.tracker.Signal(job.ID, automation.Start{})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.StartAutomationResponse{Job: jobToAPI(job)}), nil
}

// SignalAutomation applies a completion signal to a job.
func (s *AutomationService) SignalAutomation(ctx context.Context, req *connect.Request[api.SignalAutomationRequest]) (*connect.Response[api.SignalAutomationResponse], error) {
	slog.Info("SignalAutomation request received",
		"job_id", req.Msg.JobId,
		"event", req.Msg.Event,
		"step", req.Msg.Step,
	)

	ev, err := eventFromAPI(req.Msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	job, err := s.tracker.Signal(req.Msg.JobId, ev)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SignalAutomationResponse{Job: jobToAPI(job)}), nil
}

// GetAutomation returns one job.
func (s *AutomationService) GetAutomation(ctx context.Context, req *connect.Request[api.GetAutomationRequest]) (*connect.Response[api.GetAutomationResponse], error) {
	job, err := s.tracker.Get(req.Msg.JobId)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetAutomationResponse{Job: jobToAPI(job)}), nil
}

// ListAutomations returns jobs, optionally for one romaneio.
func (s *AutomationService) ListAutomations(ctx context.Context, req *connect.Request[api.ListAutomationsRequest]) (*connect.Response[api.ListAutomationsResponse], error) {
	jobs := s.tracker.List(req.Msg.RomaneioId)
	out := make([]*api.AutomationJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobToAPI(j))
	}
	return connect.NewResponse(&api.ListAutomationsResponse{Jobs: out}), nil
}

func eventFromAPI(req *api.SignalAutomationRequest) (automation.Event, error) {
	switch req.Event {
	case "start":
		return automation.Start{}, nil
	case "step_done":
		if req.Step == "" {
			return nil, fmt.Errorf("step is required for step_done")
		}
		return automation.StepDone{Step: req.Step}, nil
	case "fail":
		return automation.Fail{Reason: req.Reason}, nil
	case "reset":
		return automation.Reset{}, nil
	}
	return nil, fmt.Errorf("unknown automation event %q", req.Event)
}
