package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tidyhome/config"
	"tidyhome/models"
	"tidyhome/services/booking"
	"tidyhome/utils"
)

// InitEventWorker runs the async worker that consumes booking domain events
// in the background. Each handler stands in for an external collaborator:
// invoicing, notification, calendar sync. Delivery is decoupled from the
// allocation path; a failing handler is retried by asynq, never by the core.
func InitEventWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventsDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(models.EventBookingConfirmed, handleBookingEvent)
	mux.HandleFunc(models.EventBookingCancelled, handleBookingEvent)
	mux.HandleFunc(models.EventBookingUnassigned, handleBookingEvent)
	mux.HandleFunc(models.EventBookingCompleted, handleBookingCompleted)

	// Start async worker with retry logic
	go func() {
		log.Println("[EventWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EventWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EventWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleBookingEvent(ctx context.Context, task *asynq.Task) error {
	ev, err := decodeEvent(task)
	if err != nil {
		return err
	}
	utils.GetLogger().Info("booking event",
		zap.String("type", ev.Type),
		zap.String("bookingID", ev.BookingID),
		zap.String("status", string(ev.Status)),
		zap.Bool("assigned", ev.Assignment.Assigned),
		zap.String("slot", ev.Slot.String()))
	return nil
}

// handleBookingCompleted hands the invoice data to the invoicing collaborator.
func handleBookingCompleted(ctx context.Context, task *asynq.Task) error {
	ev, err := decodeEvent(task)
	if err != nil {
		return err
	}
	logger := utils.GetLogger()
	if ev.Invoice == nil {
		logger.Warn("completed event without invoice data", zap.String("bookingID", ev.BookingID))
		return nil
	}
	logger.Info("invoice data emitted",
		zap.String("bookingID", ev.BookingID),
		zap.String("invoiceNumber", ev.Invoice.Number),
		zap.Float64("total", ev.Invoice.Total),
		zap.Int("lines", len(ev.Invoice.Lines)))
	return nil
}

func decodeEvent(task *asynq.Task) (models.BookingEvent, error) {
	var ev models.BookingEvent
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		log.Printf("[EventWorker] invalid payload for %s: %v", task.Type(), err)
		return ev, err
	}
	return ev, nil
}

// InitRescanJob schedules the periodic re-allocation pass over pending
// unassigned bookings. Returns the started scheduler so main can stop it on
// shutdown.
func InitRescanJob(svc booking.BookingService) *cron.Cron {
	logger := utils.GetLogger()
	c := cron.New()

	spec := config.AppConfig.RescanSpec
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		n, err := svc.RescanUnassigned(ctx)
		if err != nil {
			logger.Warn("unassigned re-scan failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("unassigned re-scan confirmed bookings", zap.Int("count", n))
		}
	}); err != nil {
		logger.Sugar().Fatalf("invalid re-scan schedule %q: %v", spec, err)
	}

	c.Start()
	return c
}
