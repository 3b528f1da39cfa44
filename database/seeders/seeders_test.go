package seeders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	_ "github.com/shashiranjanraj/pizza-delivery-api/database/migrations"
	"github.com/shashiranjanraj/pizza-delivery-api/database/seeders"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/database"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/migration"
)

func TestDemoSeederIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db).Run(ctx)
	require.NoError(t, err)

	assert.Contains(t, seeders.Names(), "demo")

	require.NoError(t, seeders.RunAll(ctx, db))
	require.NoError(t, seeders.RunAll(ctx, db))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	admin, err := repositories.NewUserRepository(db).FindByEmail(ctx, seeders.DemoEmail)
	require.NoError(t, err)
	assert.True(t, admin.IsStaff)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, seeders.DemoPassword))

	orders, err := repositories.NewOrderRepository(db).ForCustomer(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, models.SizeLarge, orders[0].Size)
	assert.Equal(t, models.StatusDelivered, orders[1].OrderStatus)
}
