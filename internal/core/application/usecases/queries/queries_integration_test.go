package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "tracker/internal/adapters/out/postgres"
	"tracker/internal/adapters/out/postgres/componentrepo"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *componentrepo.GormComponentRepository
}

func (suite *QueriesTestSuite) SetupSuite() {
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

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))
	suite.repo = componentrepo.NewGormComponentRepository(db)
}

func (suite *QueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE components, component_transitions").Error)
}

// seed stores a component of WO-1 and walks it through targets.
func (suite *QueriesTestSuite) seed(code string, treatments []string, targets ...string) *component.Component {
	ctx := context.Background()
	c, err := component.NewComponent(kernel.NewUUID(), code, "WO-1", treatments)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, c))

	at := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	for i, target := range targets {
		s := status.Parse(target)
		var doc *component.Document
		if component.RequiresDocument(s) {
			d, docErr := component.NewDocument("DDT-"+code, at)
			suite.Require().NoError(docErr)
			doc = &d
		}

		loaded, getErr := suite.repo.Get(ctx, c.ID())
		suite.Require().NoError(getErr)
		next, _, changeErr := loaded.ChangeStatus(s, "m.rossi", "step", doc, at.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(changeErr)
		next, _ = next.AutoAdvance(at.Add(time.Duration(i) * time.Minute))
		suite.Require().NoError(suite.repo.Update(ctx, next))
	}
	return c
}

func (suite *QueriesTestSuite) TestGetComponent_ReturnsDetail() {
	c := suite.seed("TAV-1", []string{"zinc"}, "BUILT", "4:zinc:IN_PROGRESS", "4:zinc:ARRIVED")
	query, err := queries.NewGetComponentQuery(c.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetComponentQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(c.ID()))
	suite.Equal("TAV-1", result.Code)
	suite.Equal("WO-1", result.WorkOrder)
	suite.Equal(queries.StatusView{Code: "READY_FOR_DELIVERY", Label: "5 - Pronto per la consegna", Rank: 8000}, result.Status)
	suite.Equal([]string{"zinc"}, result.Treatments)
	suite.Len(result.AllowedStatuses, 9)
	suite.Equal("NEW", result.AllowedStatuses[0].Code)
	suite.Equal("4:zinc:ARRIVED", result.AllowedStatuses[8].Code)
	suite.Equal(3, result.Version)

	suite.Require().Len(result.History, 4)
	suite.Equal("NEW", result.History[0].From.Code)
	suite.Equal("3 - Costruito", result.History[0].To.Label)
	suite.Nil(result.History[0].DocumentNumber)
	suite.Equal("4 - Rientrato da zinc", result.History[2].To.Label)
	suite.Require().NotNil(result.History[2].DocumentNumber)
	suite.Equal("DDT-TAV-1", *result.History[2].DocumentNumber)
	suite.False(result.History[2].Automatic)
	suite.True(result.History[3].Automatic)
	suite.Equal(component.AutoAdvanceNote, result.History[3].Note)
}

func (suite *QueriesTestSuite) TestGetComponent_NotFound() {
	query, err := queries.NewGetComponentQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetComponentQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetComponent_InvalidQuery() {
	_, err := queries.NewGetComponentQueryHandler(suite.db).Handle(context.Background(), queries.GetComponentQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetComponentQueryIsNotConstructed)
}

func (suite *QueriesTestSuite) TestGetWorkOrderComponents_SortedByRankThenCode() {
	suite.seed("TAV-3", nil, "SHIPPED")
	suite.seed("TAV-2", []string{"paint"}, "BUILT", "4:paint:IN_PROGRESS")
	suite.seed("TAV-1", nil)
	suite.seed("TAV-0", nil)
	suite.seed("TAV-4", []string{"zinc"}, "BUILT")
	c, err := component.NewComponent(kernel.NewUUID(), "OTHER", "WO-2", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), c))

	query, err := queries.NewGetWorkOrderComponentsQuery(" WO-1 ")
	suite.Require().NoError(err)

	result, err := queries.NewGetWorkOrderComponentsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	codes := make([]string, len(result))
	for i, r := range result {
		codes[i] = r.Code
	}
	suite.Equal([]string{"TAV-0", "TAV-1", "TAV-4", "TAV-2", "TAV-3"}, codes)
	suite.Equal("4:paint:IN_PROGRESS", result[3].Status.Code)
	suite.Equal([]string{"paint"}, result[3].Treatments)
}

func (suite *QueriesTestSuite) TestGetWorkOrderComponents_Empty() {
	query, err := queries.NewGetWorkOrderComponentsQuery("WO-404")
	suite.Require().NoError(err)

	result, err := queries.NewGetWorkOrderComponentsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
