package seeders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
)

const (
	DemoUsername = "admin"
	DemoEmail    = "admin@pizza.local"
	DemoPassword = "change-me-now"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo creates a staff user with two orders. It does nothing when the
// user already exists.
func SeedDemo(ctx context.Context, db *gorm.DB) error {
	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)

	if _, err := users.FindByEmail(ctx, DemoEmail); err == nil {
		logger.Info("demo data already present", "email", DemoEmail)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	admin := &models.User{
		Username:     DemoUsername,
		Email:        DemoEmail,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	for _, o := range []models.Order{
		{Size: models.SizeLarge, Flavour: "pepperoni", Quantity: 2},
		{Size: models.SizeMedium, OrderStatus: models.StatusDelivered, Flavour: "margherita", Quantity: 1},
	} {
		order := o
		order.Customer = &admin.ID
		if order.OrderStatus == "" {
			order.OrderStatus = models.StatusPending
		}
		if err := orders.Create(ctx, &order); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded", "user_id", admin.ID)
	return nil
}
