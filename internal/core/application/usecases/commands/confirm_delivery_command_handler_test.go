package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDeliveryCommandHandler_Handle_ReceiverConfirmsByEmail(t *testing.T) {
	ctx := t.Context()
	receiver := actorFor(t, kernel.NewUUID(), user.RoleReceiver, "bob@example.com")
	p := storedParcel(t, kernel.NewUUID(), "bob@example.com",
		parcel.StatusApproved, parcel.StatusDispatched, parcel.StatusInTransit)

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	expectLoadAndUpdate(ctx, uow, repo, p)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewConfirmDeliveryCommand(receiver, p.ID(), "received in good condition")
	require.NoError(t, err)

	h := commands.NewConfirmDeliveryCommandHandler(factory, services.NewActionAuthorizer())
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, parcel.StatusDelivered, p.Status())
	entries := p.Log()
	last := entries[len(entries)-1]
	assert.Equal(t, parcel.StatusDelivered, last.Status())
	assert.Equal(t, user.RoleReceiver, last.ActorRole())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_DoubleConfirmIsInvalidTransition(t *testing.T) {
	ctx := t.Context()
	receiver := actorFor(t, kernel.NewUUID(), user.RoleReceiver, "bob@example.com")
	p := storedParcel(t, kernel.NewUUID(), "bob@example.com",
		parcel.StatusApproved, parcel.StatusDispatched, parcel.StatusInTransit, parcel.StatusDelivered)

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	expectLoadOnly(ctx, uow, repo, p)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewConfirmDeliveryCommand(receiver, p.ID(), "")
	require.NoError(t, err)

	h := commands.NewConfirmDeliveryCommandHandler(factory, services.NewActionAuthorizer())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)

	// The graph is consulted before the role, so confirming twice reports an
	// invalid transition rather than an authorization denial.
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.NotErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestConfirmDeliveryCommandHandler_Handle_WrongReceiverDenied(t *testing.T) {
	ctx := t.Context()
	stranger := actorFor(t, kernel.NewUUID(), user.RoleReceiver, "mallory@example.com")
	p := storedParcel(t, kernel.NewUUID(), "bob@example.com",
		parcel.StatusApproved, parcel.StatusDispatched, parcel.StatusInTransit)

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	expectLoadOnly(ctx, uow, repo, p)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewConfirmDeliveryCommand(stranger, p.ID(), "")
	require.NoError(t, err)

	h := commands.NewConfirmDeliveryCommandHandler(factory, services.NewActionAuthorizer())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)

	var authErr *errs.AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, errs.ReasonOwnership, authErr.Reason)
	assert.Equal(t, parcel.StatusInTransit, p.Status())
}
