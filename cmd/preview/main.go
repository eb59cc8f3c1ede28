// Comando preview sobe localmente a consulta Query.listUsers da API,
// resolvida com um Scan direto na tabela (DynamoDB real ou Local).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/raywall/guest-user-backend/pkg/awsclient"
	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/raywall/guest-user-backend/pkg/config/injector"
	"github.com/raywall/guest-user-backend/pkg/graphql"
	"github.com/raywall/guest-user-backend/pkg/guest"
	"github.com/raywall/guest-user-backend/pkg/logger"
	"github.com/raywall/guest-user-backend/pkg/observability"
	"github.com/raywall/guest-user-backend/pkg/transport"
	"github.com/raywall/guest-user-backend/pkg/userstore"
)

// Variável injetável para mocking
var serverStarter = transport.StartPreviewServer

func main() {
	schema := flag.String("schema", config.DefaultSchemaPath, "Caminho do schema GraphQL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *schema); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run(ctx context.Context, schemaPath string) error {
	cfg := &config.PreviewConfig{Logging: config.LoggingConf{Enabled: true, Format: "console"}}
	if err := config.LoadEnv(cfg); err != nil {
		return err
	}
	// PREVIEW_API_KEY pode apontar para ${secret.id} ou ${ssm./path}
	if err := injector.New().Inject(ctx, cfg); err != nil {
		return err
	}
	if err := config.NewValidator().ValidateStruct(cfg); err != nil {
		return err
	}

	zlog := logger.Configure(cfg.Logging)

	client, err := awsclient.NewDynamoDB(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return err
	}
	store, err := userstore.New[guest.UserRecord](client, userstore.TableConfig{
		TableName: cfg.TableName,
		HashKey:   config.DefaultPartitionKey,
	})
	if err != nil {
		return err
	}

	provider, _ := observability.SetupMetrics(config.MetricsConf{})
	engine, err := graphql.NewEngineFromFile(schemaPath, graphql.Resolvers{
		config.DefaultResolverType + "." + config.DefaultResolverField: graphql.ListUsers(store, provider),
	})
	if err != nil {
		return err
	}

	return serverStarter(ctx, cfg, engine, zlog)
}
