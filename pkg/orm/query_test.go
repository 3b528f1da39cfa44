package orm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/database"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/orm"
)

type topping struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
	Hot  bool
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&topping{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestCreateAndFirst(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, orm.New(ctx, db).Create(&topping{Name: "basil"}))

	var got topping
	require.NoError(t, orm.New(ctx, db).Where("name = ?", "basil").First(&got))
	assert.Equal(t, "basil", got.Name)

	err := orm.New(ctx, db).Where("name = ?", "anchovy").First(&got)
	assert.ErrorIs(t, err, orm.ErrNotFound)
}

func TestCreateDuplicate(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, orm.New(ctx, db).Create(&topping{Name: "olive"}))
	err := orm.New(ctx, db).Create(&topping{Name: "olive"})
	assert.ErrorIs(t, err, orm.ErrDuplicateKey)
}

func TestGetUpdateExistsDelete(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	for _, name := range []string{"chili", "garlic"} {
		require.NoError(t, orm.New(ctx, db).Create(&topping{Name: name}))
	}

	var all []topping
	require.NoError(t, orm.New(ctx, db).Order("id asc").Get(&all))
	require.Len(t, all, 2)

	require.NoError(t, orm.New(ctx, db).Model(&all[0]).Update("hot", true))
	ok, err := orm.New(ctx, db).Model(&topping{}).Where("hot = ?", true).Exists()
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := orm.New(ctx, db).Where("name = ?", "garlic").Delete(&topping{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err = orm.New(ctx, db).Model(&topping{}).Where("name = ?", "garlic").Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}
