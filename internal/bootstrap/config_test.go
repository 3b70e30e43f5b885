package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=9090\nSTORAGE_MODE=Remote\nPAGE_LIMIT_GAMES=5\nMONGO_DATABASE=test_goban\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DEFAULT_KOMI", "7.5")

	cfg, err := Setup(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.ServerPort)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, StorageRemote, cfg.StorageMode)
	require.Equal(t, 5, cfg.PageLimitGames)
	require.Equal(t, "test_goban", cfg.MongoDatabase)
	require.Equal(t, 7.5, cfg.DefaultKomi)
	require.Equal(t, 19, cfg.DefaultBoardSize)
}

func TestSetupMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.Equal(t, StorageMemory, cfg.StorageMode)
	require.Equal(t, "goban:1.0", cfg.AppID)
	require.Equal(t, 20, cfg.PageLimitGames)
	require.Equal(t, 6.5, cfg.DefaultKomi)
}
