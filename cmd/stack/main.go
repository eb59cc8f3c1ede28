// Comando stack é o app CDK (cdk.json: "go run ./cmd/stack").
package main

import (
	"context"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/raywall/guest-user-backend/pkg/loader"
	"github.com/raywall/guest-user-backend/pkg/logger"
	"github.com/raywall/guest-user-backend/pkg/stack"
)

func main() {
	defer jsii.Close()

	app, err := buildApp(context.Background(), os.Getenv("GUEST_STACK_CONFIG"))
	if err != nil {
		// stdout é do CDK; erros vão para stderr
		log := logger.ConfigureTo(config.LoggingConf{Enabled: true, Format: "console"}, os.Stderr)
		log.Fatal().Err(err).Msg("falha ao montar a stack")
	}
	app.Synth(nil)
}

// buildApp carrega a configuração (vazia = padrões) e declara a stack.
func buildApp(ctx context.Context, source string) (awscdk.App, error) {
	cfg, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	log := logger.ConfigureTo(cfg.Logging, os.Stderr)

	app := awscdk.NewApp(nil)
	s, err := stack.NewGuestUserBackendStack(app, cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("stack", *s.StackName()).
		Str("runtime", cfg.Function.Runtime).
		Str("auth", cfg.API.Authorization.Type).
		Msg("stack declarada")

	return app, nil
}
