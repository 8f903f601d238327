package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// UpdateParcelStatusCommandHandler moves a parcel along the lifecycle graph.
// Checks run in a fixed order: hard gate, transition graph, role
// authorization. A gated parcel fails before the graph is consulted, and an
// impossible move fails before the actor's role is considered.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewUpdateParcelStatusCommandHandler creates a handler for status updates.
func NewUpdateParcelStatusCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the status update command.
func (h UpdateParcelStatusCommandHandler) Handle(ctx context.Context, cmd UpdateParcelStatusCommand) error {
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
	if err = aggregate.Status().ValidateTransition(cmd.Target()); err != nil {
		return err
	}
	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionUpdateStatus); err != nil {
		return err
	}

	err = aggregate.ApplyTransition(
		cmd.Target(), time.Now().UTC(),
		cmd.Actor().ID(), cmd.Actor().Role(),
		cmd.Location(), cmd.Note(),
	)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
