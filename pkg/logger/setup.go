package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger global baseando-se na configuração.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return ConfigureTo(cfg, os.Stdout)
}

// ConfigureTo é Configure com destino explícito (stderr na CLI, buffer nos testes).
func ConfigureTo(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para a Lambda, Console "bonito" para uso local
	output := out
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Str("service", "guest-user-backend").
		Logger()
}

// WithCorrelation deriva um logger com o id de correlação e o anexa ao contexto.
func WithCorrelation(ctx context.Context, base zerolog.Logger, correlationID string) (context.Context, zerolog.Logger) {
	l := base.With().Str("correlation_id", correlationID).Logger()
	return l.WithContext(ctx), l
}

// FromContext devolve o logger do contexto (ou um logger desabilitado).
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
