package worker

// retry_cron.go
// Background goroutine that periodically re-drives dead-lettered jobs back
// onto their original queues. Entries that have already been re-driven
// maxDLQRequeues times are parked for manual inspection instead of looping
// forever.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10
	maxDLQRequeues    = 2

	parkedPrefix = "dlq:parked:"
)

// StartRetryCron launches a background goroutine that ticks every minute and
// re-enqueues a small batch of dead-lettered jobs per queue. It respects the
// context for graceful shutdown.
func StartRetryCron(ctx context.Context, rdb *redis.Client) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				for _, queue := range []string{QueueAlertas, QueueEmail} {
					redriveQueue(ctx, rdb, queue)
				}
			}
		}
	}()
}

func redriveQueue(ctx context.Context, rdb *redis.Client, queue string) {
	dlqKey := DLQPrefix + queue

	for i := 0; i < retryBatchSize; i++ {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // empty DLQ or redis unavailable
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: corrupt DLQ entry dropped")
			continue
		}

		// Attempts accumulates handler retries across re-drives; one DLQ
		// round adds maxJobAttempts. Past the requeue budget, park it.
		if entry.Attempts >= maxJobAttempts*(maxDLQRequeues+1) {
			if err := rdb.LPush(ctx, parkedPrefix+queue, raw).Err(); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to park entry")
			} else {
				log.Warn().
					Str("queue", queue).
					Str("job_type", entry.JobType).
					Int("attempts", entry.Attempts).
					Msg("retry_cron: entry parked after exhausting requeues")
			}
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: entry.Attempts}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: marshal job")
			continue
		}
		if err := rdb.LPush(ctx, queue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: requeue failed")
			continue
		}
		log.Info().
			Str("queue", queue).
			Str("job_type", entry.JobType).
			Int("attempts", entry.Attempts).
			Msg("retry_cron: job re-driven from DLQ")
	}
}
