// Package seeders provides a registry of database seed functions.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("users", SeedUsers)
//	}
//
// Then run via CLI: pizza seed
package seeders

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
)

// SeederFunc is the signature for a seed function. Seeders must be safe to
// run more than once.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists registered seeders in registration order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(ctx context.Context, db *gorm.DB) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		logger.Info("no seeders registered")
		return nil
	}

	for _, e := range current {
		logger.Info("running seeder", "seeder", e.name)
		if err := e.fn(ctx, db); err != nil {
			logger.Error("seeder failed", "seeder", e.name, "error", err)
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
	}
	return nil
}
