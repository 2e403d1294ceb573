package queries_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/jobcardrepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderProgressQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderProgressQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	cardRepo  *jobcardrepo.GormJobCardRepository
}

func (suite *GetOrderProgressQueryHandlerTestSuite) SetupSuite() {
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
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.RMRequirementDTO{},
		&orderrepo.StepTemplateDTO{},
		&orderrepo.FQCParamSpecDTO{},
		&jobcardrepo.JobCardDTO{},
		&jobcardrepo.StepDTO{},
		&jobcardrepo.SubStepDTO{},
		&jobcardrepo.FQCParamDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderProgressQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.cardRepo = jobcardrepo.NewGormJobCardRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderProgressQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, rm_requirements, step_templates, fqc_param_specs, " +
			"job_cards, steps, sub_steps, fqc_params").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderProgressQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_OrderWithoutCards_ReturnsStageOnly() {
	ctx := context.Background()

	testOrder := suite.seedOrder(ctx)

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), result.OrderID)
	suite.Equal("New", result.Stage)
	suite.Empty(result.Cards)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_ReturnsPerStepProgress() {
	ctx := context.Background()

	testOrder := suite.seedOrder(ctx)
	suite.Require().NoError(testOrder.SetStage(order.StageProcessing))
	suite.Require().NoError(suite.orderRepo.Update(ctx, testOrder))

	// One card mid-execution, one untouched.
	activeCard := suite.seedCard(ctx, testOrder.ID(), 60)
	employeeID := kernel.NewUUID()
	step, err := activeCard.Step(0)
	suite.Require().NoError(err)
	suite.Require().NoError(step.AssignEmployee(employeeID))
	suite.Require().NoError(activeCard.StartStep(0, employeeID))
	suite.Require().NoError(activeCard.CompleteStep(0, 57, 3, "", employeeID))
	suite.Require().NoError(suite.cardRepo.Update(ctx, activeCard))

	idleCard := suite.seedCard(ctx, testOrder.ID(), 40)

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), result.OrderID)
	suite.Equal("Processing", result.Stage)
	suite.Require().Len(result.Cards, 2)

	byID := make(map[kernel.UUID]queries.JobCardProgress, len(result.Cards))
	for _, card := range result.Cards {
		byID[card.ID] = card
	}

	active, ok := byID[activeCard.ID()]
	suite.Require().True(ok)
	suite.Equal("InProgress", active.Status)
	suite.Equal(60, active.Quantity)
	suite.Require().Len(active.Steps, 2)
	suite.Equal(0, active.Steps[0].Index)
	suite.Equal("Turning", active.Steps[0].Name)
	suite.Equal("Completed", active.Steps[0].Status)
	suite.Equal(57, active.Steps[0].Processed)
	suite.Equal(3, active.Steps[0].Rejected)
	suite.Equal("Milling", active.Steps[1].Name)
	suite.Equal("Pending", active.Steps[1].Status)

	idle, ok := byID[idleCard.ID()]
	suite.Require().True(ok)
	suite.Equal("Created", idle.Status)
	suite.Equal(40, idle.Quantity)
	suite.Require().Len(idle.Steps, 2)
	suite.Equal("Pending", idle.Steps[0].Status)
}

// seedOrder persists a minimal single-item order in the New stage.
func (suite *GetOrderProgressQueryHandlerTestSuite) seedOrder(ctx context.Context) *order.Order {
	tmpl, err := jobcard.NewStepTemplate("Turning", jobcard.StepNormal, nil, false)
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), "Flange 80mm", 500, 0, nil, []jobcard.StepTemplate{tmpl}, nil)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []*order.Item{item})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))
	return testOrder
}

// seedCard persists a two step card planned for the given order.
func (suite *GetOrderProgressQueryHandlerTestSuite) seedCard(
	ctx context.Context, orderID kernel.UUID, quantity int,
) *jobcard.JobCard {
	turning, err := jobcard.NewStepTemplate("Turning", jobcard.StepNormal, nil, false)
	suite.Require().NoError(err)
	milling, err := jobcard.NewStepTemplate("Milling", jobcard.StepNormal, nil, false)
	suite.Require().NoError(err)

	step0, err := jobcard.NewStepFromTemplate(0, turning, nil, 0)
	suite.Require().NoError(err)
	step1, err := jobcard.NewStepFromTemplate(1, milling, nil, 0)
	suite.Require().NoError(err)

	card, err := jobcard.NewJobCard(
		kernel.NewUUID(), orderID, kernel.NewUUID(), quantity, 0, []*jobcard.Step{step0, step1})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.cardRepo.Add(ctx, card))
	return card
}

func TestGetOrderProgressQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderProgressQueryHandlerTestSuite))
}
