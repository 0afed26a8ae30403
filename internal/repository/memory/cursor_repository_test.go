package memory

import (
	"context"
	"testing"
	"time"

	"viewset-bot/pkg/cursor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRepositoryRoundTrip(t *testing.T) {
	repo := NewCursorRepository(time.Hour)
	ctx := context.Background()

	fresh, err := repo.Load(ctx, 7)
	require.NoError(t, err)
	assert.True(t, fresh.IsEmpty())

	fresh.Route = "cat/cr&name"
	fresh.SaveForm("category", map[string]cursor.Value{"name": cursor.String("hats")})
	require.NoError(t, repo.Save(ctx, fresh))

	loaded, err := repo.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "cat/cr&name", loaded.Route)
	assert.Equal(t, "hats", loaded.FormData("category")["name"].String())

	loaded.Route = "mutated"
	again, err := repo.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "cat/cr&name", again.Route)

	repo.Delete(7)
	gone, err := repo.Load(ctx, 7)
	require.NoError(t, err)
	assert.True(t, gone.IsEmpty())
}

func TestCursorRepositoryExpires(t *testing.T) {
	repo := NewCursorRepository(20 * time.Millisecond)
	ctx := context.Background()

	c := cursor.New(1)
	c.Route = "cat/sl"
	require.NoError(t, repo.Save(ctx, c))

	time.Sleep(40 * time.Millisecond)

	loaded, err := repo.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.Route)
}
