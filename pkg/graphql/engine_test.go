package graphql

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/raywall/guest-user-backend/pkg/guest"
	"github.com/raywall/guest-user-backend/pkg/userstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSDL = `
type User {
  userId: ID!
  name: String
  createdAt: AWSDateTime
  source: String
}

type Query {
  listUsers: [User]
}

extend type Query {
  user(userId: ID!): User
}
`

func TestNewEngine_BuildsSchema(t *testing.T) {
	engine, err := NewEngine([]byte(testSDL), nil)
	require.NoError(t, err)

	require.NotNil(t, engine.Schema.Type("User"))
	fields := engine.Schema.QueryType().Fields()
	assert.Contains(t, fields, "listUsers")
	assert.Contains(t, fields, "user")
	assert.Equal(t, "[User]", fields["listUsers"].Type.String())

	res := engine.Execute(context.Background(), "{ __schema { types { name } } }", nil)
	assert.Empty(t, res.Errors)
}

func TestNewEngine_Errors(t *testing.T) {
	tests := []struct {
		name      string
		sdl       string
		resolvers Resolvers
	}{
		{name: "SDL inválido", sdl: "type {"},
		{name: "Sem Query", sdl: "type User { id: ID }"},
		{
			name:      "Resolver sem campo",
			sdl:       testSDL,
			resolvers: Resolvers{"Query.listBooks": graphql.DefaultResolveFn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine([]byte(tt.sdl), tt.resolvers)
			assert.Error(t, err)
		})
	}
}

func TestListUsers_ScanPage(t *testing.T) {
	var calls int
	store := &userstore.MockStore[guest.UserRecord]{
		ScanPageFn: func(ctx context.Context, limit int32, token string) ([]guest.UserRecord, string, error) {
			calls++
			assert.Empty(t, token)
			return []guest.UserRecord{
				{UserID: "u1", Name: "guest-aaaa", CreatedAt: "2024-01-01T00:00:00Z"},
				{UserID: "u2", Name: "guest-bbbb"},
			}, "next-page", nil
		},
	}

	engine, err := NewEngine([]byte(testSDL), Resolvers{"Query.listUsers": ListUsers(store, nil)})
	require.NoError(t, err)

	res := engine.Execute(context.Background(), "{ listUsers { userId name createdAt } }", nil)
	require.Empty(t, res.Errors)

	// uma única página, mesmo havendo continuação
	assert.Equal(t, 1, calls)

	data := res.Data.(map[string]interface{})
	users := data["listUsers"].([]interface{})
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].(map[string]interface{})["userId"])
	assert.Equal(t, "2024-01-01T00:00:00Z", users[0].(map[string]interface{})["createdAt"])
	assert.Equal(t, "", users[1].(map[string]interface{})["createdAt"])
}

func TestListUsers_EmptyAndError(t *testing.T) {
	t.Run("Tabela vazia", func(t *testing.T) {
		store := &userstore.MockStore[guest.UserRecord]{
			ScanPageFn: func(ctx context.Context, limit int32, token string) ([]guest.UserRecord, string, error) {
				return []guest.UserRecord{}, "", nil
			},
		}
		engine, err := NewEngine([]byte(testSDL), Resolvers{"Query.listUsers": ListUsers(store, nil)})
		require.NoError(t, err)

		res := engine.Execute(context.Background(), "{ listUsers { userId } }", nil)
		require.Empty(t, res.Errors)
		assert.Equal(t, []interface{}{}, res.Data.(map[string]interface{})["listUsers"])
	})

	t.Run("Falha no scan", func(t *testing.T) {
		store := &userstore.MockStore[guest.UserRecord]{
			ScanPageFn: func(ctx context.Context, limit int32, token string) ([]guest.UserRecord, string, error) {
				return nil, "", errors.New("AccessDenied")
			},
		}
		engine, err := NewEngine([]byte(testSDL), Resolvers{"Query.listUsers": ListUsers(store, nil)})
		require.NoError(t, err)

		res := engine.Execute(context.Background(), "{ listUsers { userId } }", nil)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "AccessDenied")
	})
}

func TestNewEngineFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte(testSDL), 0o644))

	_, err := NewEngineFromFile(path, nil)
	assert.NoError(t, err)

	_, err = NewEngineFromFile(filepath.Join(t.TempDir(), "none.graphql"), nil)
	assert.Error(t, err)
}
