package repository_test

import (
	"path/filepath"
	"testing"

	"forum-app/post-service/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestKeyRepositorySeedsInitialKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.db")

	repo, err := repository.NewSQLiteKeyRepository(path)
	require.NoError(t, err)

	key, err := repo.GetCurrentKey()
	require.NoError(t, err)
	require.NotEmpty(t, key)
}

func TestKeyRepositoryKeyIsStableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.db")

	repo, err := repository.NewSQLiteKeyRepository(path)
	require.NoError(t, err)
	first, err := repo.GetCurrentKey()
	require.NoError(t, err)

	reopened, err := repository.NewSQLiteKeyRepository(path)
	require.NoError(t, err)
	second, err := reopened.GetCurrentKey()
	require.NoError(t, err)

	require.Equal(t, first, second)
}
