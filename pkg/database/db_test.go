package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/database"
)

func TestConnectSQLiteMemory(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	assert.NoError(t, database.Ping(context.Background(), db))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := database.Connect("oracle", "dsn")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
