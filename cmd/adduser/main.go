// Comando adduser é a função agendada que grava um convidado por execução
// (runtime "go" da stack: provided.al2023, handler bootstrap).
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/raywall/guest-user-backend/pkg/awsclient"
	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/raywall/guest-user-backend/pkg/guest"
	"github.com/raywall/guest-user-backend/pkg/logger"
	"github.com/raywall/guest-user-backend/pkg/observability"
	"github.com/raywall/guest-user-backend/pkg/transport"
	"github.com/raywall/guest-user-backend/pkg/userstore"
)

// Variável injetável para mocking
var lambdaStarter = lambda.Start

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run monta as dependências no cold start e entrega o handler ao runtime.
func run(ctx context.Context) error {
	cfg, err := config.NewWriterConfig()
	if err != nil {
		return err
	}

	zlog := logger.Configure(cfg.Logging)

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		return err
	}

	client, err := awsclient.NewDynamoDB(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("cliente dynamodb: %w", err)
	}

	store, err := userstore.New[guest.UserRecord](client, userstore.TableConfig{
		TableName: cfg.TableName,
		HashKey:   config.DefaultPartitionKey,
	})
	if err != nil {
		return err
	}

	writer := guest.NewWriter(store, guest.NewGenerator(), provider)
	handler := transport.NewScheduledHandler(writer, zlog, provider, cfg.Timeout)

	zlog.Info().Str("table", cfg.TableName).Msg("função agendada pronta")
	lambdaStarter(handler.Handle)
	return nil
}
