package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/metrics"
)

// OrderInput is the create and full-update payload. Size defaults to SMALL
// on create.
type OrderInput struct {
	Size     models.Size `json:"size"     validate:"nullable,enum"`
	Flavour  string      `json:"flavour"  validate:"required,max=45"`
	Quantity int         `json:"quantity" validate:"required,gte=1"`
}

// StatusInput is the update-status payload.
type StatusInput struct {
	OrderStatus models.OrderStatus `json:"order_status" validate:"required,enum"`
}

type OrderService struct {
	orders repositories.OrderStore
	users  repositories.UserStore
}

func NewOrderService(orders repositories.OrderStore, users repositories.UserStore) *OrderService {
	return &OrderService{orders: orders, users: users}
}

// Create places an order for the caller identified by username.
func (s *OrderService) Create(ctx context.Context, username string, in OrderInput) (*models.Order, error) {
	caller, err := s.caller(ctx, username)
	if err != nil {
		return nil, err
	}

	size := in.Size
	if size == "" {
		size = models.SizeSmall
	}

	order := &models.Order{
		Size:        size,
		OrderStatus: models.StatusPending,
		Flavour:     strings.TrimSpace(in.Flavour),
		Quantity:    in.Quantity,
		Customer:    &caller.ID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("services: create order: %w", err)
	}

	metrics.OrderEvent("created")
	logger.WithCtx(ctx).Info("order placed", "order_id", order.ID, "customer", caller.ID)
	return order, nil
}

// All returns every order regardless of owner.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list orders: %w", err)
	}
	return orders, nil
}

// Find returns one order by id.
func (s *OrderService) Find(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return order, nil
}

// Update overwrites size, flavour and quantity of any order. There is no
// ownership check.
func (s *OrderService) Update(ctx context.Context, id uint, in OrderInput) (*models.Order, error) {
	order, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Size != "" {
		order.Size = in.Size
	}
	order.Flavour = strings.TrimSpace(in.Flavour)
	order.Quantity = in.Quantity

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("services: update order: %w", err)
	}

	metrics.OrderEvent("updated")
	return order, nil
}

// UpdateStatus overwrites only the order status.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	order, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("services: update order status: %w", err)
	}
	order.OrderStatus = status

	metrics.OrderEvent("status_changed")
	logger.WithCtx(ctx).Info("order status changed", "order_id", id, "status", status)
	return order, nil
}

// Delete removes the order when the caller owns it. Otherwise the order is
// left untouched and ErrNotOwner is returned.
func (s *OrderService) Delete(ctx context.Context, username string, id uint) error {
	caller, err := s.caller(ctx, username)
	if err != nil {
		return err
	}

	order, err := s.Find(ctx, id)
	if err != nil {
		return err
	}

	if order.Customer == nil || *order.Customer != caller.ID {
		logger.WithCtx(ctx).Warn("order delete refused", "order_id", id, "caller", caller.ID)
		return fmt.Errorf("%w: order %d", ErrNotOwner, id)
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return notFound(err, "order", id)
	}

	metrics.OrderEvent("deleted")
	return nil
}

// ForUser returns the orders of user userID in creation order.
func (s *OrderService) ForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, "user", userID)
	}

	orders, err := s.orders.ForCustomer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("services: list user orders: %w", err)
	}
	return orders, nil
}

// FindForUser returns order orderID only if it belongs to userID.
func (s *OrderService) FindForUser(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, "user", userID)
	}

	order, err := s.orders.FindForCustomer(ctx, userID, orderID)
	if err != nil {
		return nil, notFound(err, "order", orderID)
	}
	return order, nil
}

// caller resolves the token identity to a user. A valid token whose user is
// gone is an authentication failure, not a missing resource.
func (s *OrderService) caller(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown identity", ErrAuthenticationFailed)
		}
		return nil, fmt.Errorf("services: resolve caller: %w", err)
	}
	return user, nil
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return fmt.Errorf("services: load %s %d: %w", what, id, err)
}
