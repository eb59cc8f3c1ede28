package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/raywall/guest-user-backend/pkg/graphql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte("type User { userId: ID! }\ntype Query { listUsers: [User] }\n"), 0o644))
	return path
}

func TestRun(t *testing.T) {
	t.Setenv("TABLENAME", "users-table")
	t.Setenv("PREVIEW_API_KEY", "da2-local")
	t.Setenv("PREVIEW_PORT", "9191")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("LOG_ENABLED", "false")

	var gotCfg *config.PreviewConfig
	original := serverStarter
	serverStarter = func(ctx context.Context, cfg *config.PreviewConfig, engine *graphql.Engine, log zerolog.Logger) error {
		gotCfg = cfg
		assert.Contains(t, engine.Schema.QueryType().Fields(), "listUsers")
		return nil
	}
	defer func() { serverStarter = original }()

	require.NoError(t, run(context.Background(), writeSchema(t)))
	require.NotNil(t, gotCfg)
	assert.Equal(t, 9191, gotCfg.Port)
	assert.Equal(t, "/graphql", gotCfg.Route)
}

func TestRun_Errors(t *testing.T) {
	original := serverStarter
	serverStarter = func(ctx context.Context, cfg *config.PreviewConfig, engine *graphql.Engine, log zerolog.Logger) error {
		t.Fatal("servidor não deveria subir")
		return nil
	}
	defer func() { serverStarter = original }()

	t.Run("Sem chave de API", func(t *testing.T) {
		t.Setenv("TABLENAME", "users-table")
		t.Setenv("PREVIEW_API_KEY", "")
		assert.Error(t, run(context.Background(), writeSchema(t)))
	})

	t.Run("Schema ausente", func(t *testing.T) {
		t.Setenv("TABLENAME", "users-table")
		t.Setenv("PREVIEW_API_KEY", "da2-local")
		t.Setenv("AWS_REGION", "us-east-1")
		assert.Error(t, run(context.Background(), filepath.Join(t.TempDir(), "none.graphql")))
	})
}
