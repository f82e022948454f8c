package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/logflow/internal/automation"
	"github.com/mmynk/logflow/internal/cleaning"
	"github.com/mmynk/logflow/internal/collection"
	"github.com/mmynk/logflow/internal/storage"
)

// errFinalized is returned when a completed or cancelled romaneio is edited.
var errFinalized = errors.New("romaneio is completed or cancelled")

// toConnectError maps domain errors onto connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, collection.ErrItemNotFound),
		errors.Is(err, automation.ErrJobNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, automation.ErrInvalidTransition),
		errors.Is(err, errFinalized):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, cleaning.ErrInvalidRule):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
