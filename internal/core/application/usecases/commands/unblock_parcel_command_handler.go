package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// UnblockParcelCommandHandler clears all three gates on a parcel and appends
// a single unblocked audit entry.
type UnblockParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewUnblockParcelCommandHandler creates a handler for unblocking.
func NewUnblockParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) UnblockParcelCommandHandler {
	return UnblockParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the unblock command.
func (h UnblockParcelCommandHandler) Handle(ctx context.Context, cmd UnblockParcelCommand) error {
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

	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionUnblock); err != nil {
		return err
	}

	if err = aggregate.ClearGates(time.Now().UTC(), cmd.Actor().ID(), cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
