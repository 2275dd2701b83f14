package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/locationrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/location"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveRegionsQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *locationrepo.GormLocationRepository
	handler    queries.GetActiveRegionsQueryHandler
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(
		&locationrepo.RegionDTO{},
		&locationrepo.SubRegionDTO{},
		&locationrepo.PickupPointDTO{},
	)
	suite.Require().NoError(err)

	suite.repository = locationrepo.NewGormLocationRepository(db)
	suite.handler = queries.NewGetActiveRegionsQueryHandler(db)
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE regions, sub_regions, pickup_points").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetActiveRegionsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) TestHandle_AttachesDeliverableSubRegions() {
	ctx := context.Background()

	err := suite.repository.UpsertRegions(ctx, []location.Region{
		location.NewRegion(16, "Alger", 1),
		location.NewRegion(31, "Oran", 2),
	})
	suite.Require().NoError(err)

	err = suite.repository.UpsertSubRegions(ctx, []location.SubRegion{
		location.NewSubRegion(1601, 16, "Bab El Oued", true, true),
		location.NewSubRegion(1602, 16, "Casbah", true, false),
		location.NewSubRegion(1603, 16, "Bouzareah", false, false), // not deliverable
		location.NewSubRegion(3101, 31, "Es Senia", true, false),
	})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, queries.NewGetActiveRegionsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 2)

	alger := result[0]
	suite.Equal(16, alger.ID)
	suite.Equal("Alger", alger.Name)
	suite.Equal("alger", alger.Slug)
	suite.Equal(1, alger.ZoneID)
	suite.Require().Len(alger.SubRegions, 2)
	suite.Equal(1601, alger.SubRegions[0].ID)
	suite.True(alger.SubRegions[0].HasPickupPoint)
	suite.Equal(1602, alger.SubRegions[1].ID)
	suite.False(alger.SubRegions[1].HasPickupPoint)

	oran := result[1]
	suite.Equal(31, oran.ID)
	suite.Require().Len(oran.SubRegions, 1)
	suite.Equal(3101, oran.SubRegions[0].ID)
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) TestHandle_DeactivatedRecordsAreHidden() {
	ctx := context.Background()

	err := suite.repository.UpsertRegions(ctx, []location.Region{
		location.NewRegion(16, "Alger", 1),
		location.NewRegion(31, "Oran", 2),
	})
	suite.Require().NoError(err)

	err = suite.repository.UpsertSubRegions(ctx, []location.SubRegion{
		location.NewSubRegion(1601, 16, "Bab El Oued", true, true),
		location.NewSubRegion(1602, 16, "Casbah", true, false),
	})
	suite.Require().NoError(err)

	// Region 31 and sub-region 1602 disappear from the courier feed
	_, err = suite.repository.DeactivateRegionsNotIn(ctx, []int{16})
	suite.Require().NoError(err)
	_, err = suite.repository.DeactivateSubRegionsNotIn(ctx, []int{1601})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, queries.NewGetActiveRegionsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(16, result[0].ID)
	suite.Require().Len(result[0].SubRegions, 1)
	suite.Equal(1601, result[0].SubRegions[0].ID)
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) TestHandle_RegionWithoutSubRegionsStillListed() {
	ctx := context.Background()

	err := suite.repository.UpsertRegions(ctx, []location.Region{
		location.NewRegion(16, "Alger", 1),
	})
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, queries.NewGetActiveRegionsQuery())
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.NotNil(result[0].SubRegions)
	suite.Empty(result[0].SubRegions)
}

func (suite *GetActiveRegionsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetActiveRegionsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetActiveRegionsQuery constructor")
}

func TestGetActiveRegionsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveRegionsQueryHandlerTestSuite))
}
