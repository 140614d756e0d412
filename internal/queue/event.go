// Package queue defines message payloads exchanged over the message broker
// plus the publisher and background consumer that move them.
package queue

// Queue names.  Durable queues on the default exchange; routing key equals
// the queue name.
const (
	SearchPerformedQueue       = "search.performed"
	VerificationRequestedQueue = "sms.verification"
)

// SearchPerformedEvent is published after a service search wrote its audit
// row.  It contains enough information for downstream consumers to log or
// feed analytics without querying the primary database.
type SearchPerformedEvent struct {
	UserID       string `json:"user_id"`
	ServiceType  string `json:"service_type"`
	Location     string `json:"location"`
	ResultsCount int    `json:"results_count"`
	PerformedAt  string `json:"performed_at"`
}

// VerificationRequestedEvent asks the out-of-process SMS gateway to deliver
// a verification code.  The code itself never travels on the queue.
type VerificationRequestedEvent struct {
	Phone       string `json:"phone"`
	RequestedAt string `json:"requested_at"`
}
