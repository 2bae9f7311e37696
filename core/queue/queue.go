package queue

import (
	"time"

	"hireflow-api/core/config"
	"hireflow-api/core/constants"

	"github.com/hibiken/asynq"
)

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient returns an asynq client for enqueueing tasks.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer returns an asynq worker server. Mail tasks retry once after a
// fixed delay, regardless of the error.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			constants.QueueMailer: 1,
		},
		RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
			return constants.MailRetryDelay
		},
	})
}
