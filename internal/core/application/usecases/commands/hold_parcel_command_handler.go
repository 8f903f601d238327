package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// HoldParcelCommandHandler toggles the hold gate.
type HoldParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewHoldParcelCommandHandler creates a handler for hold toggles.
func NewHoldParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) HoldParcelCommandHandler {
	return HoldParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the hold toggle command.
func (h HoldParcelCommandHandler) Handle(ctx context.Context, cmd HoldParcelCommand) error {
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

	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionHold); err != nil {
		return err
	}

	if err = aggregate.SetHeld(cmd.Held(), time.Now().UTC(), cmd.Actor().ID(), cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
