package commands_test

import (
	"context"
	"errors"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/employee"
	"production/internal/core/domain/model/jobcard"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllInFlight(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockJobCardRepository struct{ mock.Mock }

func (m *MockJobCardRepository) Add(ctx context.Context, card *jobcard.JobCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}
func (m *MockJobCardRepository) Update(ctx context.Context, card *jobcard.JobCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}
func (m *MockJobCardRepository) Get(ctx context.Context, id kernel.UUID) (*jobcard.JobCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobcard.JobCard), args.Error(1)
}
func (m *MockJobCardRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*jobcard.JobCard, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobcard.JobCard), args.Error(1)
}
func (m *MockJobCardRepository) ClaimStep(
	ctx context.Context, cardID kernel.UUID, stepIndex int, employeeID kernel.UUID,
) error {
	args := m.Called(ctx, cardID, stepIndex, employeeID)
	return args.Error(0)
}

type MockJobCardUoW struct{ mock.Mock }

func (m *MockJobCardUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockJobCardUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockJobCardUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockJobCardUoW) JobCardRepository() ports.JobCardRepository {
	args := m.Called()
	return args.Get(0).(ports.JobCardRepository)
}

type MockJobCardUoWFactory struct{ mock.Mock }

func (m *MockJobCardUoWFactory) Create() commands.JobCardUoW {
	args := m.Called()
	return args.Get(0).(commands.JobCardUoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) JobCardRepository() ports.JobCardRepository {
	args := m.Called()
	return args.Get(0).(ports.JobCardRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEmployeeDirectory struct{ mock.Mock }

func (m *MockEmployeeDirectory) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*employee.Employee), args.Error(1)
}
func (m *MockEmployeeDirectory) GetMany(_ context.Context, _ []kernel.UUID) ([]*employee.Employee, error) {
	return nil, errors.New("not implemented in mock")
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) AvailableStock(
	ctx context.Context, materialIDs []kernel.UUID,
) (map[kernel.UUID]float64, error) {
	args := m.Called(ctx, materialIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]float64), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
