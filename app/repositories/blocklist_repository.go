package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/models"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/orm"
)

// TokenBlocklist is the revocation registry.
type TokenBlocklist interface {
	// Revoke records jti. Revoking an already revoked jti is not an error.
	Revoke(ctx context.Context, jti, tokenType string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// BlocklistRepository keeps revoked token ids in the token_blocklist table.
type BlocklistRepository struct {
	db *gorm.DB
}

func NewBlocklistRepository(db *gorm.DB) *BlocklistRepository {
	return &BlocklistRepository{db: db}
}

func (r *BlocklistRepository) Revoke(ctx context.Context, jti, tokenType string, expiresAt time.Time) error {
	revoked, err := r.IsRevoked(ctx, jti)
	if err != nil {
		return err
	}
	if revoked {
		return nil
	}

	entry := &models.RevokedToken{JTI: jti, Type: tokenType, ExpiresAt: expiresAt.UTC()}
	if err := orm.New(ctx, r.db).Create(entry); err != nil {
		return fmt.Errorf("blocklist: revoke %s: %w", jti, err)
	}
	return nil
}

func (r *BlocklistRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	found, err := orm.New(ctx, r.db).Model(&models.RevokedToken{}).Where("jti = ?", jti).Exists()
	if err != nil {
		return false, fmt.Errorf("blocklist: lookup %s: %w", jti, err)
	}
	return found, nil
}

// Prune deletes entries whose token expired before cutoff. Such tokens fail
// signature validation on their own, so the rows are dead weight.
func (r *BlocklistRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := orm.New(ctx, r.db).Where("expires_at < ?", cutoff.UTC()).Delete(&models.RevokedToken{})
	if err != nil {
		return 0, fmt.Errorf("blocklist: prune: %w", err)
	}
	return n, nil
}
