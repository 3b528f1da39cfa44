package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000002_create_token_blocklist_table", &CreateTokenBlocklistTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: orders (customer → users.id) --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0003: token_blocklist --------

type CreateTokenBlocklistTable struct{}

func (m *CreateTokenBlocklistTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.RevokedToken{})
}

func (m *CreateTokenBlocklistTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.RevokedToken{}.TableName())
}
