package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'pgcrypto');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pgcrypto extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		assert.NoError(t, Init(db.Instance))
		assert.NoError(t, Init(db.Instance))
	})
}

func TestLoadMoviesSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	require.NoError(t, Init(db.Instance))

	assertFunctionsExist := func(t *testing.T) {
		for _, funcName := range MoviesFunctions {
			var exists bool
			err := db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	}

	t.Run("Load movies SQL functions", func(t *testing.T) {
		err := LoadMoviesSql(db.Instance, false)
		assert.NoError(t, err)
		assertFunctionsExist(t)
	})

	t.Run("Load movies SQL is idempotent without force", func(t *testing.T) {
		assert.NoError(t, LoadMoviesSql(db.Instance, false))
	})

	t.Run("Load movies SQL with force reloads", func(t *testing.T) {
		assert.NoError(t, LoadMoviesSql(db.Instance, true))
		assertFunctionsExist(t)
	})
}
