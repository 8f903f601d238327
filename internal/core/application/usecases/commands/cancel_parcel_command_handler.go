package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// CancelParcelCommandHandler cancels a parcel. Unlike the general status
// update, authorization runs before the graph check: a sender cancelling a
// dispatched parcel is denied for state, not told the transition is invalid.
type CancelParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewCancelParcelCommandHandler creates a handler for cancellations.
func NewCancelParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the cancel command.
func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) error {
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
	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionCancel); err != nil {
		return err
	}

	err = aggregate.ApplyTransition(
		parcel.StatusCancelled, time.Now().UTC(),
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
