// Package orm is a thin query builder over *gorm.DB used by the
// repositories. Every terminal call is timed into metrics.DBQueryDuration
// and gorm's driver-specific failures are folded into two sentinels.
package orm

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/metrics"
)

var (
	// ErrNotFound is returned by First when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)

type Query struct {
	db *gorm.DB
}

// New starts a query bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

// Get loads every matching row into dest.
func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return translate(q.db.Find(dest).Error)
}

// First loads the first matching row (by primary key) into dest.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return translate(q.db.First(dest).Error)
}

// Exists reports whether any row matches.
func (q *Query) Exists() (bool, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var n int64
	if err := q.db.Limit(1).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return translate(q.db.Create(v).Error)
}

// Save writes every column of v.
func (q *Query) Save(v interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return translate(q.db.Save(v).Error)
}

// Update writes a single column on the current Model.
func (q *Query) Update(column string, value interface{}) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return translate(q.db.Update(column, value).Error)
}

// Delete removes the rows matching v and the current conditions and
// returns how many were affected.
func (q *Query) Delete(v interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())
	res := q.db.Delete(v)
	return res.RowsAffected, translate(res.Error)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicateKey
	default:
		return err
	}
}

// isUniqueViolation covers drivers without an error translator.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
