// Package repositories persists users, orders and revoked tokens. Each
// entity has a small store interface consumed by app/services and a gorm
// implementation; the revocation registry also has a Redis implementation.
package repositories

import "github.com/shashiranjanraj/pizza-delivery-api/pkg/orm"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = orm.ErrNotFound
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = orm.ErrDuplicateKey
)
