package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// AssignPersonnelCommandHandler records the delivery personnel on a parcel
// and appends an audit entry tagged with the current status.
type AssignPersonnelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewAssignPersonnelCommandHandler creates a handler for personnel assignment.
func NewAssignPersonnelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) AssignPersonnelCommandHandler {
	return AssignPersonnelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the personnel assignment command.
func (h AssignPersonnelCommandHandler) Handle(ctx context.Context, cmd AssignPersonnelCommand) error {
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
	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionAssignPersonnel); err != nil {
		return err
	}

	if err = aggregate.AssignPersonnel(cmd.Personnel(), time.Now().UTC(), cmd.Actor().ID()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
