package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database defaults
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Mail delivery. One asynq retry means two delivery attempts per task;
// enqueues are staggered so the provider is not hit for every participant
// at once.
const (
	QueueMailer        = "mailer"
	MailMaxRetry       = 1
	MailRetryDelay     = 30 * time.Second
	MailEnqueueStagger = 2 * time.Second
)

// Cache
const (
	VotingPageCacheTTL = 10 * time.Minute
)
