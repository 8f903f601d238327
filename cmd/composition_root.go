package cmd

import (
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	authorizer *services.ActionAuthorizer
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		authorizer: services.NewActionAuthorizer(),
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateReturnParcelCommandHandler() commands.ReturnParcelCommandHandler {
	return commands.NewReturnParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateFlagParcelCommandHandler() commands.FlagParcelCommandHandler {
	return commands.NewFlagParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateHoldParcelCommandHandler() commands.HoldParcelCommandHandler {
	return commands.NewHoldParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateBlockParcelCommandHandler() commands.BlockParcelCommandHandler {
	return commands.NewBlockParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateUnblockParcelCommandHandler() commands.UnblockParcelCommandHandler {
	return commands.NewUnblockParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateAssignPersonnelCommandHandler() commands.AssignPersonnelCommandHandler {
	return commands.NewAssignPersonnelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.parcelUoWFactory(), c.authorizer)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateParcelStatsQueryHandler() queries.ParcelStatsQueryHandler {
	return queries.NewParcelStatsQueryHandler(c.gormDB)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
