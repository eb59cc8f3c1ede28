package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/raywall/guest-user-backend/pkg/guest"
	"github.com/raywall/guest-user-backend/pkg/metrics"
	"github.com/raywall/guest-user-backend/pkg/userstore"
	"github.com/rs/zerolog"
)

// ListUsers resolve Query.listUsers com uma única página de Scan, a mesma
// operação do template de requisição; o resultado são os itens lidos.
func ListUsers(store userstore.Store[guest.UserRecord], provider metrics.Provider) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		_ = metrics.Emit(provider, metrics.ListUsersCalls, 1)

		items, next, err := store.ScanPage(p.Context, 0, "")
		if err != nil {
			zerolog.Ctx(p.Context).Error().Err(err).Msg("scan da tabela de usuários falhou")
			return nil, err
		}

		_ = metrics.Emit(provider, metrics.ListUsersSize, float64(len(items)))
		zerolog.Ctx(p.Context).Debug().
			Int("items", len(items)).
			Bool("truncated", next != "").
			Msg("listUsers resolvido")

		return items, nil
	}
}
