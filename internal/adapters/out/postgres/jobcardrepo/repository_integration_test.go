package jobcardrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/jobcardrepo"
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// JobCardRepositoryIntegrationTestSuite provides integration tests for
// JobCardRepository using PostgreSQL containers to verify database
// persistence behavior, including the conditional claim update.
type JobCardRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *jobcardrepo.GormJobCardRepository
	tracker    *MockAggregateTracker
}

func (suite *JobCardRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&jobcardrepo.JobCardDTO{},
		&jobcardrepo.StepDTO{},
		&jobcardrepo.SubStepDTO{},
		&jobcardrepo.FQCParamDTO{},
	))
}

func (suite *JobCardRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE job_cards, steps, sub_steps, fqc_params").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = jobcardrepo.NewGormJobCardRepository(suite.db, suite.tracker)
}

func (suite *JobCardRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestAdd_ValidCard_Success() {
	ctx := context.Background()

	card := suite.createTestCard()

	suite.tracker.On("TrackAggregate", card.ID(), card).Once()

	err := suite.repository.Add(ctx, card)
	suite.Require().NoError(err)

	suite.assertRowCount(&jobcardrepo.JobCardDTO{}, 1)
	suite.assertRowCount(&jobcardrepo.StepDTO{}, 3)
	suite.assertRowCount(&jobcardrepo.SubStepDTO{}, 2)
	suite.assertRowCount(&jobcardrepo.FQCParamDTO{}, 1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestGet_NonExistentCard_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedCard, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedCard)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestUpdate_RoundTripsExecutionState() {
	ctx := context.Background()

	card := suite.createTestCard()
	suite.tracker.On("TrackAggregate", card.ID(), card).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, card))

	// Drive the card through a realistic mid-batch state: the turning
	// step claimed and completed, the plating batch at the vendor, one
	// FQC sample already read.
	employeeID := kernel.NewUUID()
	suite.Require().NoError(card.Claim(0, employeeID))
	suite.Require().NoError(card.ToggleSubStep(0, 0))
	suite.Require().NoError(card.ToggleSubStep(0, 1))
	suite.Require().NoError(card.StartStep(0, employeeID))
	suite.Require().NoError(card.CompleteStep(0, 101, 4, "minor tool marks on two pieces", employeeID))

	platingStep, err := card.Step(1)
	suite.Require().NoError(err)
	suite.Require().NoError(platingStep.AssignEmployee(employeeID))
	suite.Require().NoError(card.StartStep(1, employeeID))
	sentDate := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	suite.Require().NoError(platingStep.RecordOutwardSent("Shreeji Platers", sentDate))

	fqcStep, err := card.Step(2)
	suite.Require().NoError(err)
	suite.Require().NoError(fqcStep.FQCParameters()[0].SetSample(0, "10.2"))

	suite.Require().NoError(suite.repository.Update(ctx, card))

	retrievedCard, err := suite.repository.Get(ctx, card.ID())
	suite.Require().NoError(err)

	suite.Equal(card.ID(), retrievedCard.ID())
	suite.Equal(card.OrderID(), retrievedCard.OrderID())
	suite.Equal(card.ItemID(), retrievedCard.ItemID())
	suite.Equal(100, retrievedCard.Quantity())
	suite.Equal(5, retrievedCard.ExtraQty())
	suite.Equal(jobcard.InProgress, retrievedCard.Status())

	turning, err := retrievedCard.Step(0)
	suite.Require().NoError(err)
	suite.Equal(jobcard.StepCompleted, turning.Status())
	suite.Equal(105, turning.Quantities().Received())
	suite.Equal(101, turning.Quantities().Processed())
	suite.Equal(4, turning.Quantities().Rejected())
	suite.Equal("minor tool marks on two pieces", turning.Remarks())
	suite.False(turning.IsOpenJob())
	suite.Require().Len(turning.AssignedEmployees(), 1)
	suite.Equal(employeeID, turning.AssignedEmployees()[0])
	suite.Require().Len(turning.SubSteps(), 2)
	suite.True(turning.SubSteps()[0].Done())
	suite.True(turning.SubSteps()[1].Done())

	plating, err := retrievedCard.Step(1)
	suite.Require().NoError(err)
	suite.Equal(jobcard.StepInProgress, plating.Status())
	suite.Require().NotNil(plating.Outward())
	suite.Equal("Shreeji Platers", plating.Outward().VendorName())
	suite.Require().NotNil(plating.Outward().SentDate())
	suite.WithinDuration(sentDate, *plating.Outward().SentDate(), time.Second)
	suite.Nil(plating.Outward().ReturnDate())

	fqc, err := retrievedCard.Step(2)
	suite.Require().NoError(err)
	suite.Equal(jobcard.StepPending, fqc.Status())
	suite.Require().Len(fqc.FQCParameters(), 1)
	suite.Equal([]string{"10.2", ""}, fqc.FQCParameters()[0].Samples())
	suite.Equal(jobcard.NoDisposition, fqc.FQCParameters()[0].Result())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestUpdate_NonExistentCard_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestCard())
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestGetAllForOrder_ReturnsOnlyOrderCards() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	orderID := kernel.NewUUID()
	first := suite.createTestCardForOrder(orderID)
	second := suite.createTestCardForOrder(orderID)
	other := suite.createTestCardForOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	cards, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(cards, 2)
	for _, card := range cards {
		suite.Equal(orderID, card.OrderID())
		suite.Len(card.Steps(), 3)
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestClaimStep_OpenStep_AssignsEmployee() {
	ctx := context.Background()

	card := suite.createTestCard()
	suite.tracker.On("TrackAggregate", card.ID(), card).Once()
	suite.Require().NoError(suite.repository.Add(ctx, card))

	employeeID := kernel.NewUUID()
	err := suite.repository.ClaimStep(ctx, card.ID(), 0, employeeID)
	suite.Require().NoError(err)

	retrievedCard, err := suite.repository.Get(ctx, card.ID())
	suite.Require().NoError(err)
	step, err := retrievedCard.Step(0)
	suite.Require().NoError(err)
	suite.Require().Len(step.AssignedEmployees(), 1)
	suite.Equal(employeeID, step.AssignedEmployees()[0])

	// The claim also cleared the open flag, so the restored step behaves
	// like any assigned step and the claimer can start it.
	suite.False(step.IsOpenJob())
	suite.Require().NoError(retrievedCard.StartStep(0, employeeID))

	// A second claim finds the assignment set non-empty and loses.
	err = suite.repository.ClaimStep(ctx, card.ID(), 0, kernel.NewUUID())
	suite.Require().ErrorIs(err, jobcard.ErrAlreadyClaimed)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestClaimStep_NonOpenStep_ReturnsAlreadyClaimed() {
	ctx := context.Background()

	card := suite.createTestCard()
	suite.tracker.On("TrackAggregate", card.ID(), card).Once()
	suite.Require().NoError(suite.repository.Add(ctx, card))

	// Step 1 was never flagged as an open job.
	err := suite.repository.ClaimStep(ctx, card.ID(), 1, kernel.NewUUID())
	suite.Require().ErrorIs(err, jobcard.ErrAlreadyClaimed)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestClaimStep_MissingStep_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.ClaimStep(ctx, kernel.NewUUID(), 0, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

// TestClaimStep_ConcurrentClaims_ExactlyOneWins races two claimers against
// the same open job step. The conditional update matches the row for
// exactly one of them; the other must receive AlreadyClaimed.
func (suite *JobCardRepositoryIntegrationTestSuite) TestClaimStep_ConcurrentClaims_ExactlyOneWins() {
	ctx := context.Background()

	card := suite.createTestCard()
	suite.tracker.On("TrackAggregate", card.ID(), card).Once()
	suite.Require().NoError(suite.repository.Add(ctx, card))

	claimers := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	results := make([]error, len(claimers))

	var wg sync.WaitGroup
	for i, employeeID := range claimers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = suite.repository.ClaimStep(ctx, card.ID(), 0, employeeID)
		}()
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			suite.Require().ErrorIs(err, jobcard.ErrAlreadyClaimed)
		}
	}
	suite.Equal(1, winners, "exactly one concurrent claimer should win")

	// The winner's assignment is durable and the step is no longer open,
	// so the winner can start it after a reload.
	retrievedCard, err := suite.repository.Get(ctx, card.ID())
	suite.Require().NoError(err)
	step, err := retrievedCard.Step(0)
	suite.Require().NoError(err)
	suite.Require().Len(step.AssignedEmployees(), 1)
	suite.Contains(claimers, step.AssignedEmployees()[0])
	suite.False(step.IsOpenJob())
	suite.Require().NoError(retrievedCard.StartStep(0, step.AssignedEmployees()[0]))

	suite.tracker.AssertExpectations(suite.T())
}

// createTestCard creates a card with a three step route: a claimable
// turning step with a checklist, an outward plating step, and an FQC step
// with one numeric parameter sampled twice.
func (suite *JobCardRepositoryIntegrationTestSuite) createTestCard() *jobcard.JobCard {
	return suite.createTestCardForOrder(kernel.NewUUID())
}

func (suite *JobCardRepositoryIntegrationTestSuite) createTestCardForOrder(orderID kernel.UUID) *jobcard.JobCard {
	turning, err := jobcard.NewStepTemplate("Turning", jobcard.StepNormal, []string{"Load bar stock", "Rough cut"}, true)
	suite.Require().NoError(err)
	plating, err := jobcard.NewStepTemplate("Zinc Plating", jobcard.StepOutward, nil, false)
	suite.Require().NoError(err)
	fqcTmpl, err := jobcard.NewStepTemplate("Final Quality Check", jobcard.StepFQC, nil, false)
	suite.Require().NoError(err)

	spec, err := jobcard.NewParameterSpec("Diameter", "Ø", jobcard.ValueNumeric, "10", 0.5, 0.5)
	suite.Require().NoError(err)

	steps := make([]*jobcard.Step, 0, 3)
	step0, err := jobcard.NewStepFromTemplate(0, turning, nil, 0)
	suite.Require().NoError(err)
	step1, err := jobcard.NewStepFromTemplate(1, plating, nil, 0)
	suite.Require().NoError(err)
	step2, err := jobcard.NewStepFromTemplate(2, fqcTmpl, []jobcard.ParameterSpec{spec}, 2)
	suite.Require().NoError(err)
	steps = append(steps, step0, step1, step2)

	card, err := jobcard.NewJobCard(kernel.NewUUID(), orderID, kernel.NewUUID(), 100, 5, steps)
	suite.Require().NoError(err)
	return card
}

// assertRowCount verifies the number of rows behind the given model.
func (suite *JobCardRepositoryIntegrationTestSuite) assertRowCount(model any, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *JobCardRepositoryIntegrationTestSuite) TestGetAllForOrder_NoCards_ReturnsEmptySlice() {
	ctx := context.Background()

	cards, err := suite.repository.GetAllForOrder(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(cards)

	suite.tracker.AssertExpectations(suite.T())
}

func TestJobCardRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(JobCardRepositoryIntegrationTestSuite))
}
