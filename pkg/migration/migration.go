// Package migration provides a versioned database migration runner.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20240101000000_create_users_table", &CreateUsersTable{})
//	}
//
//	type CreateUsersTable struct{}
//	func (m *CreateUsersTable) Up(db *gorm.DB) error {
//	    return db.Migrator().CreateTable(&models.User{})
//	}
//	func (m *CreateUsersTable) Down(db *gorm.DB) error {
//	    return db.Migrator().DropTable("users")
//	}
//
// Run from CLI:
//
//	pizza migrate             // run all pending
//	pizza migrate:rollback    // rollback last batch
//	pizza migrate:status
package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// Entry is a named migration.
type Entry struct {
	Name      string
	Migration Migration
}

// Status describes one migration for migrate:status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "pizza_migrations" }

// ErrNotRegistered is returned by Rollback when the tracking table names a
// migration the binary does not know.
var ErrNotRegistered = errors.New("migration not registered")

// ------------------- Registry -------------------

var (
	mu       sync.Mutex
	registry []Entry
)

// Register adds a migration to the global registry.
// name should be a timestamp-prefixed string, e.g. "20240101000000_create_users_table".
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	registry = append(registry, Entry{Name: name, Migration: m})
}

// Registered returns a copy of the global registry.
func Registered() []Entry {
	mu.Lock()
	defer mu.Unlock()
	return append([]Entry(nil), registry...)
}

// ------------------- Runner -------------------

// Runner executes and tracks migrations.
type Runner struct {
	db      *gorm.DB
	entries []Entry
}

// New creates a Runner for the globally registered migrations.
func New(db *gorm.DB) *Runner {
	return NewWithEntries(db, Registered())
}

// NewWithEntries creates a Runner for an explicit migration list.
func NewWithEntries(db *gorm.DB, entries []Entry) *Runner {
	sorted := append([]Entry(nil), entries...)
	// Timestamp prefixes sort lexicographically.
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, entries: sorted}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran(ctx context.Context) (map[string]migrationRecord, error) {
	var records []migrationRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: fetch ran: %w", err)
	}
	out := make(map[string]migrationRecord, len(records))
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run executes all pending migrations in a single batch and returns their
// names in execution order.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Entry
	for _, e := range r.entries {
		if _, ok := ran[e.Name]; !ok {
			pending = append(pending, e)
		}
	}

	if len(pending) == 0 {
		logger.Info("migration: nothing to migrate")
		return nil, nil
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return nil, err
	}
	batch++

	names := make([]string, 0, len(pending))
	for _, e := range pending {
		logger.Info("migration: running", "name", e.Name, "batch", batch)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := e.Migration.Up(tx); err != nil {
				return fmt.Errorf("migration: %s up: %w", e.Name, err)
			}
			if err := tx.Create(&migrationRecord{Name: e.Name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("migration: record %s: %w", e.Name, err)
			}
			return nil
		})
		if err != nil {
			return names, err
		}
		names = append(names, e.Name)
	}

	logger.Info("migration: done", "ran", len(names), "batch", batch)
	return names, nil
}

// Rollback reverses all migrations from the most recent batch and returns
// their names in the order they were reverted.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	batch, err := r.lastBatch(ctx)
	if err != nil {
		return nil, err
	}
	if batch == 0 {
		logger.Info("migration: nothing to roll back")
		return nil, nil
	}

	var records []migrationRecord
	if err := r.db.WithContext(ctx).Where("batch = ?", batch).Order("id desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: fetch batch %d: %w", batch, err)
	}

	known := make(map[string]Migration, len(r.entries))
	for _, e := range r.entries {
		known[e.Name] = e.Migration
	}

	var names []string
	for _, rec := range records {
		m, ok := known[rec.Name]
		if !ok {
			return names, fmt.Errorf("migration: rollback %s: %w", rec.Name, ErrNotRegistered)
		}

		logger.Info("migration: rolling back", "name", rec.Name, "batch", batch)

		if err := m.Down(r.db.WithContext(ctx)); err != nil {
			return names, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.WithContext(ctx).Delete(&rec).Error; err != nil {
			return names, fmt.Errorf("migration: forget %s: %w", rec.Name, err)
		}
		names = append(names, rec.Name)
	}

	return names, nil
}

// Status lists every known migration and whether it has been run.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	ran, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(r.entries))
	for _, e := range r.entries {
		rec, ok := ran[e.Name]
		out = append(out, Status{Name: e.Name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch(ctx context.Context) (int, error) {
	var maxBatch struct{ Max int }
	err := r.db.WithContext(ctx).Model(&migrationRecord{}).
		Select("COALESCE(MAX(batch), 0) as max").
		Scan(&maxBatch).Error
	if err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return maxBatch.Max, nil
}
