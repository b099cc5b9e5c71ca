package commands_test

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/core/domain/model/truck"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockTrainRepository struct{ mock.Mock }

func (m *MockTrainRepository) Add(ctx context.Context, t *train.Train) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTrainRepository) Update(ctx context.Context, t *train.Train) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTrainRepository) Get(ctx context.Context, id kernel.UUID) (*train.Train, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*train.Train)
	return t, args.Error(1)
}
func (m *MockTrainRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*train.Train, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*train.Train)
	return t, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) ListByTrainForUpdate(ctx context.Context, trainID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, trainID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *route.Route) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*route.Route)
	return r, args.Error(1)
}

type MockTruckRepository struct{ mock.Mock }

func (m *MockTruckRepository) Add(ctx context.Context, t *truck.Truck) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTruckRepository) Update(ctx context.Context, t *truck.Truck) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTruckRepository) Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*truck.Truck)
	return t, args.Error(1)
}
func (m *MockTruckRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*truck.Truck)
	return t, args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Add(ctx context.Context, e *employee.Employee) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*employee.Employee)
	return e, args.Error(1)
}
func (m *MockEmployeeRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*employee.Employee, error) {
	args := m.Called(ctx, ids)
	crew, _ := args.Get(0).([]*employee.Employee)
	return crew, args.Error(1)
}
func (m *MockEmployeeRepository) ListRestedForUpdate(ctx context.Context, now time.Time, limit int) ([]*employee.Employee, error) {
	args := m.Called(ctx, now, limit)
	crew, _ := args.Get(0).([]*employee.Employee)
	return crew, args.Error(1)
}
func (m *MockEmployeeRepository) ResetWeeklyHours(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}
func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface of the commands package.
type MockUoW struct {
	mock.Mock

	trains    *MockTrainRepository
	orders    *MockOrderRepository
	products  *MockProductRepository
	routes    *MockRouteRepository
	trucks    *MockTruckRepository
	employees *MockEmployeeRepository
	dels      *MockDeliveryRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		trains:    new(MockTrainRepository),
		orders:    new(MockOrderRepository),
		products:  new(MockProductRepository),
		routes:    new(MockRouteRepository),
		trucks:    new(MockTruckRepository),
		employees: new(MockEmployeeRepository),
		dels:      new(MockDeliveryRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) TrainRepository() ports.TrainRepository       { return m.trains }
func (m *MockUoW) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *MockUoW) ProductRepository() ports.ProductRepository   { return m.products }
func (m *MockUoW) RouteRepository() ports.RouteRepository       { return m.routes }
func (m *MockUoW) TruckRepository() ports.TruckRepository       { return m.trucks }
func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository { return m.employees }
func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository { return m.dels }

func (m *MockUoW) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.trains.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.routes.AssertExpectations(t)
	m.trucks.AssertExpectations(t)
	m.employees.AssertExpectations(t)
	m.dels.AssertExpectations(t)
}

type MockTrainUoWFactory struct{ mock.Mock }

func (m *MockTrainUoWFactory) Create() commands.TrainUoW {
	args := m.Called()
	return args.Get(0).(commands.TrainUoW)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockCrewUoWFactory struct{ mock.Mock }

func (m *MockCrewUoWFactory) Create() commands.CrewUoW {
	args := m.Called()
	return args.Get(0).(commands.CrewUoW)
}
