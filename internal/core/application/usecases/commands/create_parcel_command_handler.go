package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// trackingCodeMaxAttempts bounds the retry loop on tracking-code collisions.
// Each attempt runs in its own transaction because a unique violation aborts
// the current one.
const trackingCodeMaxAttempts = 5

// CreateParcelCommandHandler handles the business logic for parcel creation:
// it verifies the sender exists and is not blocked, snapshots the sender from
// the account record, resolves the receiver's email to a registered account,
// computes the fee, and persists the parcel together with its initial
// "requested" log entry in one transaction.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("parcel creation failed: %w", err)
//	}
//	fmt.Printf("tracking code: %s", created.TrackingCode())
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel creation.
// Requires a UoWFactory since creation touches both users and parcels.
func NewCreateParcelCommandHandler(uowFactory UoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel creation command and returns the created
// aggregate. Tracking-code generation is retried up to five times on
// uniqueness collision; exhaustion fails with a ConflictError.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for range trackingCodeMaxAttempts {
		created, err := h.tryCreate(ctx, cmd)
		if errors.Is(err, errs.ErrConflict) {
			lastErr = err
			continue
		}
		return created, err
	}

	return nil, errs.NewConflictErrorWithCause("parcel",
		"tracking code generation exhausted retries", lastErr)
}

func (h CreateParcelCommandHandler) tryCreate(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	sender, err := userRepo.Get(ctx, cmd.SenderID())
	if err != nil {
		return nil, err
	}
	if sender.IsBlocked() {
		return nil, errs.NewAuthorizationError(errs.ReasonState, "sender account is blocked")
	}

	senderInfo, err := parcel.NewPartyInfo(sender.Name(), sender.Email(), sender.Phone(), sender.Address())
	if err != nil {
		return nil, err
	}

	receiverID, err := h.resolveReceiver(ctx, userRepo, cmd.Receiver().Email())
	if err != nil {
		return nil, err
	}

	fee, err := parcel.NewFee(cmd.Details().WeightKg(), cmd.Preferences().Urgent())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	code, err := parcel.GenerateTrackingCode(now)
	if err != nil {
		return nil, err
	}

	created, err := parcel.NewParcel(
		cmd.ParcelID(), code, cmd.SenderID(), senderInfo,
		receiverID, cmd.Receiver(),
		cmd.Details(), cmd.Preferences(), fee, now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// resolveReceiver links the parcel to a registered receiver account when the
// receiver's email matches one; otherwise the parcel stays unlinked until
// the receiver registers.
func (h CreateParcelCommandHandler) resolveReceiver(
	ctx context.Context, userRepo ports.UserRepository, email string,
) (*kernel.UUID, error) {
	account, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if account.Role() != user.RoleReceiver {
		return nil, nil
	}

	id := account.ID()
	return &id, nil
}
