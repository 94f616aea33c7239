package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/games":       "pgx5://u:p@localhost:5432/games",
		"postgresql://u:p@db/games?sslmode=disable": "pgx5://u:p@db/games?sslmode=disable",
		"pgx5://already":                            "pgx5://already",
	}

	for in, want := range tests {
		assert.Equal(t, want, migrateURL(in), in)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "migrations/000001_create_games.up.sql")
	assert.Contains(t, names, "migrations/000001_create_games.down.sql")
}
