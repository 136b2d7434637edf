package events

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"tidyhome/models"
	"tidyhome/utils"
)

// Emitter publishes domain events for the invoicing, notification, and
// calendar-sync collaborators. Emission is fire-and-forget: a slow or failing
// downstream consumer never blocks or fails an allocation decision, so Emit
// returns nothing and implementations log their own failures.
type Emitter interface {
	Emit(ctx context.Context, ev models.BookingEvent)
}

// AsynqEmitter enqueues each event as an asynq task typed by the event name,
// consumed by the worker in the cron package.
type AsynqEmitter struct {
	client *asynq.Client
}

func NewAsynqEmitter(opt asynq.RedisClientOpt) *AsynqEmitter {
	return &AsynqEmitter{client: asynq.NewClient(opt)}
}

func (e *AsynqEmitter) Emit(ctx context.Context, ev models.BookingEvent) {
	logger := utils.GetLogger()
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("event marshal failed", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	if _, err := e.client.EnqueueContext(ctx, asynq.NewTask(ev.Type, payload)); err != nil {
		logger.Warn("event enqueue failed, dropping",
			zap.String("type", ev.Type),
			zap.String("bookingID", ev.BookingID),
			zap.Error(err))
	}
}

func (e *AsynqEmitter) Close() error {
	return e.client.Close()
}

// NoopEmitter discards all events.
type NoopEmitter struct{}

func (NoopEmitter) Emit(context.Context, models.BookingEvent) {}
