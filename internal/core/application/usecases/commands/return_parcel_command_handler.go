package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// ReturnParcelCommandHandler marks a parcel as returned. The transition graph
// restricts this to dispatched and in-transit parcels.
type ReturnParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewReturnParcelCommandHandler creates a handler for returns.
func NewReturnParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) ReturnParcelCommandHandler {
	return ReturnParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the return command.
func (h ReturnParcelCommandHandler) Handle(ctx context.Context, cmd ReturnParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	aggregate, err := repo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = aggregate.EnsureMutable(); err != nil {
		return err
	}
	if err = aggregate.Status().ValidateTransition(parcel.StatusReturned); err != nil {
		return err
	}
	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionReturn); err != nil {
		return err
	}

	err = aggregate.ApplyTransition(
		parcel.StatusReturned, time.Now().UTC(),
		cmd.Actor().ID(), cmd.Actor().Role(),
		"", cmd.Note(),
	)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
