package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler marks an in-transit parcel as delivered. The
// graph check runs before authorization so a second confirmation of an
// already delivered parcel reports an invalid transition, not a denial.
type ConfirmDeliveryCommandHandler struct {
	uowFactory ParcelUoWFactory
	authorizer *services.ActionAuthorizer
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory ParcelUoWFactory, authorizer *services.ActionAuthorizer,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the delivery confirmation command.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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
	if err = aggregate.Status().ValidateTransition(parcel.StatusDelivered); err != nil {
		return err
	}
	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, services.ActionConfirmDelivery); err != nil {
		return err
	}

	err = aggregate.ApplyTransition(
		parcel.StatusDelivered, time.Now().UTC(),
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
