package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// DeleteParcelCommandHandler permanently removes a parcel. The parcel is
// loaded first so deletion of an absent parcel reports not-found and the
// authorizer can evaluate the actor against the aggregate. Gates are not
// consulted: delete is a designated escape hatch like gate management.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewDeleteParcelCommandHandler creates a handler for parcel deletion.
func NewDeleteParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the delete command.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
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

	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionDelete); err != nil {
		return err
	}

	if err = repo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
