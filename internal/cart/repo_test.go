package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS cart_records (
  storage_key TEXT PRIMARY KEY,
  payload TEXT NOT NULL DEFAULT '[]',
  updated_at TIMESTAMP
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(setupCartTestDB(t))
	ctx := context.Background()

	lines := make([]Line, 0, 12)
	for i := 1; i <= 12; i++ {
		lines = append(lines, Line{
			ID:       i,
			Name:     fmt.Sprintf("Produit %d", i),
			Price:    1000 * i,
			Quantity: i%3 + 1,
		})
	}

	require.NoError(t, repo.Save(ctx, "dianada_cart", lines))

	loaded, err := repo.Load(ctx, "dianada_cart")
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)
}

func TestRepositoryMissingKeyIsEmpty(t *testing.T) {
	repo := NewRepository(setupCartTestDB(t))

	loaded, err := repo.Load(context.Background(), "never-written")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRepositorySaveOverwrites(t *testing.T) {
	repo := NewRepository(setupCartTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "dianada_cart", []Line{
		{ID: 1, Name: "Sac", Price: 25000, Quantity: 1},
		{ID: 2, Name: "Montre", Price: 15000, Quantity: 2},
	}))
	require.NoError(t, repo.Save(ctx, "dianada_cart", []Line{
		{ID: 2, Name: "Montre", Price: 15000, Quantity: 5},
	}))

	loaded, err := repo.Load(ctx, "dianada_cart")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 5, loaded[0].Quantity)
}

func TestRepositorySaveNilClearsCart(t *testing.T) {
	repo := NewRepository(setupCartTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "dianada_cart", []Line{{ID: 1, Name: "Sac", Price: 25000, Quantity: 1}}))
	require.NoError(t, repo.Save(ctx, "dianada_cart", nil))

	loaded, err := repo.Load(ctx, "dianada_cart")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRepositoryCorruptPayload(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Exec(
		`INSERT INTO cart_records (storage_key, payload) VALUES (?, ?)`,
		"dianada_cart", `{"not":"an array"`,
	).Error)

	_, err := repo.Load(context.Background(), "dianada_cart")
	require.ErrorIs(t, err, ErrCorruptPayload)
}

func TestRepositoryKeysAreIsolated(t *testing.T) {
	repo := NewRepository(setupCartTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "session-a", []Line{{ID: 1, Name: "Sac", Price: 25000, Quantity: 1}}))
	require.NoError(t, repo.Save(ctx, "session-b", []Line{{ID: 2, Name: "Montre", Price: 15000, Quantity: 3}}))

	a, err := repo.Load(ctx, "session-a")
	require.NoError(t, err)
	b, err := repo.Load(ctx, "session-b")
	require.NoError(t, err)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, 1, a[0].ID)
	assert.Equal(t, 2, b[0].ID)
}
