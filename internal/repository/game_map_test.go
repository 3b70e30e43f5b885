package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

func TestGameMapStorageSGF(t *testing.T) {
	ctx := context.Background()
	store := NewGameMapStorage(2)

	key := store.GenerateGameKey(ctx)
	require.NotEqual(t, key, store.GenerateGameKey(ctx))

	_, err := store.LoadSGF(ctx, key)
	require.ErrorIs(t, err, errs.ErrGameNotFound)

	require.NoError(t, store.SaveSGF(ctx, key, "(;SZ[9])"))
	text, err := store.LoadSGF(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "(;SZ[9])", text)
}

func TestGameMapStorageRecords(t *testing.T) {
	ctx := context.Background()
	store := NewGameMapStorage(2)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := store.GetGameByGameKey(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrGameNotFound)

	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, store.PutGame(ctx, game.Record{
			GameKey:   key,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
			Sgf:       "(;)",
		}))
	}

	got, err := store.GetGameByGameKey(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "(;)", got.Sgf)

	first, err := store.ListGames(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, "c", first[0].GameKey)
	require.Equal(t, "b", first[1].GameKey)
	require.Empty(t, first[0].Sgf, "listing leaves the sgf out")

	second, err := store.ListGames(ctx, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, "a", second[0].GameKey)

	empty, err := store.ListGames(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, empty)
}
