package guest

import (
	"context"
	"errors"
	"time"

	"github.com/raywall/guest-user-backend/pkg/metrics"
	"github.com/raywall/guest-user-backend/pkg/userstore"
	"github.com/rs/zerolog"
)

// Writer grava um convidado por execução. Só escreve: nunca lê a tabela.
type Writer struct {
	store   userstore.Store[UserRecord]
	gen     *Generator
	metrics metrics.Provider
}

func NewWriter(store userstore.Store[UserRecord], gen *Generator, provider metrics.Provider) *Writer {
	if gen == nil {
		gen = NewGenerator()
	}
	return &Writer{store: store, gen: gen, metrics: provider}
}

// Write grava um novo convidado. Uma colisão de id gera uma segunda
// tentativa com id novo; a segunda colisão é devolvida como ErrDuplicateUser.
func (w *Writer) Write(ctx context.Context, source string) (UserRecord, error) {
	log := zerolog.Ctx(ctx)

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		rec := w.gen.Next(source)

		start := time.Now()
		err := w.create(ctx, rec)
		elapsed := float64(time.Since(start).Microseconds()) / 1000

		switch {
		case err == nil:
			_ = metrics.Emit(w.metrics, metrics.WriteLatency, elapsed, "outcome:ok")
			_ = metrics.Emit(w.metrics, metrics.UsersWritten, 1)
			log.Info().Str("userId", rec.UserID).Int("attempt", attempt).Msg("convidado gravado")
			return rec, nil

		case errors.Is(err, ErrDuplicateUser):
			_ = metrics.Emit(w.metrics, metrics.WriteLatency, elapsed, "outcome:conflict")
			_ = metrics.Emit(w.metrics, metrics.WriteConflicts, 1)
			log.Warn().Str("userId", rec.UserID).Int("attempt", attempt).Msg("userId duplicado, gerando outro")
			lastErr = err

		default:
			_ = metrics.Emit(w.metrics, metrics.WriteLatency, elapsed, "outcome:error")
			_ = metrics.Emit(w.metrics, metrics.WriteFailures, 1)
			return UserRecord{}, err
		}
	}
	return UserRecord{}, lastErr
}

func (w *Writer) create(ctx context.Context, rec UserRecord) error {
	err := w.store.Create(ctx, rec)
	if errors.Is(err, userstore.ErrConditionFailed) {
		return ErrDuplicateUser
	}
	return err
}
