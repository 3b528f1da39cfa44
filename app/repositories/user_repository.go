package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/orm"
)

// UserStore is the credential store.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. A taken username or email yields ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := orm.New(ctx, r.db).Create(user); err != nil {
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.findBy(ctx, "id = ?", id)
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(ctx, "email = ?", email)
}

// FindByUsername looks up a user by username, the identity carried in tokens.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findBy(ctx, "username = ?", username)
}

func (r *UserRepository) findBy(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := orm.New(ctx, r.db).Model(&models.User{}).Where(query, arg).First(&user); err != nil {
		return nil, fmt.Errorf("users: find: %w", err)
	}
	return &user, nil
}
