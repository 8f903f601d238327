package queries_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *parcelrepo.GormParcelRepository

	trackHandler queries.TrackParcelQueryHandler
	getHandler   queries.GetParcelQueryHandler
	listHandler  queries.ListParcelsQueryHandler
	statsHandler queries.ParcelStatsQueryHandler
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.StatusLogDTO{}, &userrepo.UserDTO{})
	suite.Require().NoError(err)

	suite.repo = parcelrepo.NewGormParcelRepository(db, &mockAggregateTracker{})
	suite.trackHandler = queries.NewTrackParcelQueryHandler(db)
	suite.getHandler = queries.NewGetParcelQueryHandler(db)
	suite.listHandler = queries.NewListParcelsQueryHandler(db)
	suite.statsHandler = queries.NewParcelStatsQueryHandler(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels CASCADE").Error
	suite.Require().NoError(err)
}

// seedParcel creates a parcel owned by senderID, walks it through the given
// statuses as an admin, and persists it.
func (suite *QueryHandlersTestSuite) seedParcel(
	senderID kernel.UUID, receiverEmail string, urgent bool, statuses ...parcel.Status,
) *parcel.Parcel {
	suite.T().Helper()

	sender, err := parcel.NewPartyInfo("Sender", "sender@example.com", "+100", "1 Origin St")
	suite.Require().NoError(err)
	receiver, err := parcel.NewPartyInfo("Receiver", receiverEmail, "+200", "2 Target Ave")
	suite.Require().NoError(err)
	details, err := parcel.NewDetails(parcel.TypePackage, 2, "", "books", nil)
	suite.Require().NoError(err)
	fee, err := parcel.NewFee(2, urgent)
	suite.Require().NoError(err)

	createdAt := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	code, err := parcel.GenerateTrackingCode(createdAt)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(), code, senderID, sender, nil, receiver,
		details, parcel.RestorePreferences(nil, "", urgent), fee, createdAt,
	)
	suite.Require().NoError(err)

	adminID := kernel.NewUUID()
	at := createdAt
	for _, s := range statuses {
		at = at.Add(time.Minute)
		suite.Require().NoError(p.ApplyTransition(s, at, adminID, user.RoleAdmin, "", ""))
	}

	suite.Require().NoError(suite.repo.Add(context.Background(), p))
	return p
}

func (suite *QueryHandlersTestSuite) admin() user.Actor {
	actor, err := user.NewActor(kernel.NewUUID(), user.RoleAdmin, "admin@example.com")
	suite.Require().NoError(err)
	return actor
}

func (suite *QueryHandlersTestSuite) actor(id kernel.UUID, role user.Role, email string) user.Actor {
	actor, err := user.NewActor(id, role, email)
	suite.Require().NoError(err)
	return actor
}

func (suite *QueryHandlersTestSuite) TestTrack_ReturnsStatusAndHistory() {
	senderID := kernel.NewUUID()
	p := suite.seedParcel(senderID, "rcv@example.com", false,
		parcel.StatusApproved, parcel.StatusDispatched)

	query, err := queries.NewTrackParcelQuery(p.TrackingCode().String())
	suite.Require().NoError(err)

	result, err := suite.trackHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(p.TrackingCode().String(), result.TrackingCode)
	suite.Equal("dispatched", result.Status)
	suite.Len(result.History, 3)
	suite.Equal("requested", result.History[0].Status)
	suite.Equal("dispatched", result.History[2].Status)
}

func (suite *QueryHandlersTestSuite) TestTrack_UnknownCode_NotFound() {
	code, err := parcel.GenerateTrackingCode(time.Now().UTC())
	suite.Require().NoError(err)

	query, err := queries.NewTrackParcelQuery(code.String())
	suite.Require().NoError(err)

	result, err := suite.trackHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGet_AdminReadsAnyParcel() {
	p := suite.seedParcel(kernel.NewUUID(), "rcv@example.com", true)

	query, err := queries.NewGetParcelQuery(suite.admin(), p.ID())
	suite.Require().NoError(err)

	view, err := suite.getHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(p.ID().String(), view.ID)
	suite.Equal("Receiver", view.Receiver.Name)
	suite.True(view.Urgent)
	suite.InDelta(190.0, view.Fee.Total, 0.001)
	suite.Len(view.History, 1)
}

func (suite *QueryHandlersTestSuite) TestGet_SenderReadsOwnParcelOnly() {
	ownerID := kernel.NewUUID()
	own := suite.seedParcel(ownerID, "rcv@example.com", false)
	foreign := suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false)

	owner := suite.actor(ownerID, user.RoleSender, "sender@example.com")

	query, err := queries.NewGetParcelQuery(owner, own.ID())
	suite.Require().NoError(err)
	view, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(own.ID().String(), view.ID)

	query, err = queries.NewGetParcelQuery(owner, foreign.ID())
	suite.Require().NoError(err)
	view, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Nil(view)
	suite.ErrorIs(err, errs.ErrNotAuthorized)
}

func (suite *QueryHandlersTestSuite) TestGet_ReceiverMatchedByEmail() {
	p := suite.seedParcel(kernel.NewUUID(), "maria@example.com", false)

	receiver := suite.actor(kernel.NewUUID(), user.RoleReceiver, "maria@example.com")

	query, err := queries.NewGetParcelQuery(receiver, p.ID())
	suite.Require().NoError(err)

	view, err := suite.getHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(p.ID().String(), view.ID)
}

func (suite *QueryHandlersTestSuite) TestGet_Missing_NotFound() {
	query, err := queries.NewGetParcelQuery(suite.admin(), kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.getHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestList_SenderSeesOnlyOwnParcels() {
	ownerID := kernel.NewUUID()
	suite.seedParcel(ownerID, "rcv@example.com", false)
	suite.seedParcel(ownerID, "rcv@example.com", false)
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false)

	owner := suite.actor(ownerID, user.RoleSender, "sender@example.com")
	query, err := queries.NewListParcelsQuery(owner, queries.ParcelFilter{}, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.EqualValues(2, result.Total)
	suite.Len(result.Items, 2)
}

func (suite *QueryHandlersTestSuite) TestList_ReceiverScopedByEmail() {
	suite.seedParcel(kernel.NewUUID(), "maria@example.com", false)
	suite.seedParcel(kernel.NewUUID(), "other@example.com", false)

	receiver := suite.actor(kernel.NewUUID(), user.RoleReceiver, "maria@example.com")
	query, err := queries.NewListParcelsQuery(receiver, queries.ParcelFilter{}, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.EqualValues(1, result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal("Receiver", result.Items[0].ReceiverName)
}

func (suite *QueryHandlersTestSuite) TestList_AdminFiltersByStatus() {
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false, parcel.StatusApproved)
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false, parcel.StatusApproved, parcel.StatusDispatched)
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false)

	status := parcel.StatusApproved
	query, err := queries.NewListParcelsQuery(suite.admin(), queries.ParcelFilter{Status: &status}, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.EqualValues(1, result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal("approved", result.Items[0].Status)
}

func (suite *QueryHandlersTestSuite) TestList_SearchMatchesTrackingCode() {
	p := suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false)
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false)

	query, err := queries.NewListParcelsQuery(
		suite.admin(), queries.ParcelFilter{Search: p.TrackingCode().String()}, 0, 0)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.EqualValues(1, result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal(p.TrackingCode().String(), result.Items[0].TrackingCode)
}

func (suite *QueryHandlersTestSuite) TestList_Pagination() {
	for range 5 {
		suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false)
	}

	query, err := queries.NewListParcelsQuery(suite.admin(), queries.ParcelFilter{}, 2, 2)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.EqualValues(5, result.Total)
	suite.Len(result.Items, 2)
	suite.Equal(2, result.Page)
}

func (suite *QueryHandlersTestSuite) TestStats_CountsAndRevenue() {
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", true)
	suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false, parcel.StatusApproved)
	delivered := suite.seedParcel(kernel.NewUUID(), "rcv@example.com", false,
		parcel.StatusApproved, parcel.StatusDispatched, parcel.StatusInTransit, parcel.StatusDelivered)

	err := suite.db.Exec("UPDATE parcels SET fee_paid = true WHERE id = ?",
		delivered.ID().Bytes()).Error
	suite.Require().NoError(err)

	query, err := queries.NewParcelStatsQuery(suite.admin())
	suite.Require().NoError(err)

	result, err := suite.statsHandler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.EqualValues(3, result.Total)
	suite.EqualValues(1, result.ByStatus["requested"])
	suite.EqualValues(1, result.ByStatus["approved"])
	suite.EqualValues(1, result.ByStatus["delivered"])
	suite.EqualValues(1, result.Urgent)
	suite.InDelta(90.0, result.CollectedRevenue, 0.001)
}

func (suite *QueryHandlersTestSuite) TestStats_NonAdminDenied() {
	sender := suite.actor(kernel.NewUUID(), user.RoleSender, "sender@example.com")

	query, err := queries.NewParcelStatsQuery(sender)
	suite.Require().NoError(err)

	result, err := suite.statsHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, errs.ErrNotAuthorized)
}

// mockAggregateTracker satisfies the repository's tracker dependency.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
