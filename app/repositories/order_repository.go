package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/orm"
)

// OrderStore is the order store.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	All(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	Delete(ctx context.Context, id uint) error
	ForCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	FindForCustomer(ctx context.Context, customerID, orderID uint) (*models.Order, error)
}

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := orm.New(ctx, r.db).Create(order); err != nil {
		return fmt.Errorf("orders: create: %w", err)
	}
	return nil
}

// All returns every order in insertion order.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := orm.New(ctx, r.db).Model(&models.Order{}).Order("id asc").Get(&orders); err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := orm.New(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).First(&order); err != nil {
		return nil, fmt.Errorf("orders: find %d: %w", id, err)
	}
	return &order, nil
}

// Save writes every column of an existing order.
func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	if err := orm.New(ctx, r.db).Save(order); err != nil {
		return fmt.Errorf("orders: save %d: %w", order.ID, err)
	}
	return nil
}

// UpdateStatus writes only the order_status column.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	err := orm.New(ctx, r.db).Model(&models.Order{ID: id}).Update("order_status", status)
	if err != nil {
		return fmt.Errorf("orders: update status %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes an order. A missing id yields ErrNotFound.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	n, err := orm.New(ctx, r.db).Delete(&models.Order{ID: id})
	if err != nil {
		return fmt.Errorf("orders: delete %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("orders: delete %d: %w", id, ErrNotFound)
	}
	return nil
}

// ForCustomer returns a customer's orders in insertion order.
func (r *OrderRepository) ForCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := orm.New(ctx, r.db).Model(&models.Order{}).
		Where("customer = ?", customerID).
		Order("id asc").
		Get(&orders)
	if err != nil {
		return nil, fmt.Errorf("orders: list for customer %d: %w", customerID, err)
	}
	return orders, nil
}

// FindForCustomer returns the order only when it belongs to customerID.
func (r *OrderRepository) FindForCustomer(ctx context.Context, customerID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := orm.New(ctx, r.db).Model(&models.Order{}).
		Where("id = ? AND customer = ?", orderID, customerID).
		First(&order)
	if err != nil {
		return nil, fmt.Errorf("orders: find %d for customer %d: %w", orderID, customerID, err)
	}
	return &order, nil
}
