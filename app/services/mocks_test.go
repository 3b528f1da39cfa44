package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *mockUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = 10
	}
	return args.Error(0)
}

func (m *mockOrders) All(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) Save(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrders) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockOrders) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrders) ForCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	o, _ := args.Get(0).([]models.Order)
	return o, args.Error(1)
}

func (m *mockOrders) FindForCustomer(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	args := m.Called(ctx, customerID, orderID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type mockBlocklist struct{ mock.Mock }

func (m *mockBlocklist) Revoke(ctx context.Context, jti, tokenType string, expiresAt time.Time) error {
	return m.Called(ctx, jti, tokenType, expiresAt).Error(0)
}

func (m *mockBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}
