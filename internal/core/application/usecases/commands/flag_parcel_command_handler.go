package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// FlagParcelCommandHandler toggles the flag gate. Gate management is exempt
// from the hard gate, otherwise a flagged parcel could never be unflagged.
type FlagParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewFlagParcelCommandHandler creates a handler for flag toggles.
func NewFlagParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) FlagParcelCommandHandler {
	return FlagParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the flag toggle command.
func (h FlagParcelCommandHandler) Handle(ctx context.Context, cmd FlagParcelCommand) error {
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

	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionFlag); err != nil {
		return err
	}

	if err = aggregate.SetFlagged(cmd.Flagged(), time.Now().UTC(), cmd.Actor().ID(), cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
