package postgres_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&parcelrepo.ParcelDTO{}, &parcelrepo.StatusLogDTO{}, &userrepo.UserDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcel_status_log").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newParcel() *parcel.Parcel {
	sender, err := parcel.NewPartyInfo("Alice", "alice@example.com", "", "")
	suite.Require().NoError(err)
	receiver, err := parcel.NewPartyInfo("Bob", "bob@example.com", "", "")
	suite.Require().NoError(err)
	details, err := parcel.NewDetails(parcel.TypeDocument, 0.5, "", "contract", nil)
	suite.Require().NoError(err)
	fee, err := parcel.NewFee(0.5, false)
	suite.Require().NoError(err)

	createdAt := time.Now().UTC()
	code, err := parcel.GenerateTrackingCode(createdAt)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(), code, kernel.NewUUID(), sender, nil, receiver,
		details, parcel.RestorePreferences(nil, "", false), fee, createdAt,
	)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsParcelAndLog() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(p))
	suite.Len(loaded.Log(), 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()
	p := suite.newParcel()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var logCount int64
	suite.Require().NoError(suite.db.Model(&parcelrepo.StatusLogDTO{}).Count(&logCount).Error)
	suite.Zero(logCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCrossRepository_SameTransaction() {
	ctx := context.Background()
	p := suite.newParcel()
	account, err := user.NewUser(kernel.NewUUID(), "Alice", "alice@example.com", "", "", user.RoleSender)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, account))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Rollback(ctx))

	// Neither write survived the rollback.
	_, err = suite.factory.Create().UserRepository().GetByEmail(ctx, "alice@example.com")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
