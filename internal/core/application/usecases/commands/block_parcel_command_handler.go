package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// BlockParcelCommandHandler toggles the block gate.
type BlockParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewBlockParcelCommandHandler creates a handler for block toggles.
func NewBlockParcelCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) BlockParcelCommandHandler {
	return BlockParcelCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the block toggle command.
func (h BlockParcelCommandHandler) Handle(ctx context.Context, cmd BlockParcelCommand) error {
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

	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionBlock); err != nil {
		return err
	}

	if err = aggregate.SetBlocked(cmd.Blocked(), time.Now().UTC(), cmd.Actor().ID(), cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
