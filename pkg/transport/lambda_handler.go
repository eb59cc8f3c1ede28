package transport

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/guest-user-backend/pkg/guest"
	"github.com/raywall/guest-user-backend/pkg/logger"
	"github.com/raywall/guest-user-backend/pkg/metrics"
	"github.com/raywall/guest-user-backend/pkg/observability"
	"github.com/rs/zerolog"
)

// UserWriter é o contrato do serviço que grava um convidado.
type UserWriter interface {
	Write(ctx context.Context, source string) (guest.UserRecord, error)
}

// ScheduledResult é o retorno da invocação (visível no console da Lambda).
type ScheduledResult struct {
	UserID string `json:"userId"`
}

// ScheduledHandler adapta eventos agendados do EventBridge para o UserWriter.
// O conteúdo do evento é ignorado; apenas o id é usado para correlação.
type ScheduledHandler struct {
	writer  UserWriter
	log     zerolog.Logger
	metrics metrics.Provider
	timeout time.Duration
}

// NewScheduledHandler cria uma nova instância do adaptador
func NewScheduledHandler(writer UserWriter, log zerolog.Logger, provider metrics.Provider, timeout time.Duration) *ScheduledHandler {
	return &ScheduledHandler{writer: writer, log: log, metrics: provider, timeout: timeout}
}

// Handle processa uma invocação agendada.
func (h *ScheduledHandler) Handle(ctx context.Context, event events.CloudWatchEvent) (ScheduledResult, error) {
	start := time.Now()

	corrID := event.ID
	if corrID == "" {
		corrID = uuid.NewString()
	}
	ctx, log := logger.WithCorrelation(ctx, h.log, corrID)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	defer func() {
		if err := observability.Flush(h.metrics); err != nil {
			log.Warn().Err(err).Msg("falha ao enviar métricas")
		}
	}()

	rec, err := h.writer.Write(ctx, event.ID)

	entry := log.Info()
	if err != nil {
		entry = log.Error().Err(err)
	}
	entry.
		Str("detail_type", event.DetailType).
		Strs("resources", event.Resources).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("scheduled invocation completed")

	if err != nil {
		return ScheduledResult{}, err
	}
	return ScheduledResult{UserID: rec.UserID}, nil
}
