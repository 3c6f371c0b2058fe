package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "JOB_FAILED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Job lifecycle event codes consumed by operator tooling.
const (
	TypeJobCompleted = "JOB_COMPLETED"
	TypeJobRetried   = "JOB_RETRIED"
	TypeJobFailed    = "JOB_FAILED"
)

// NewJobEvent builds a job lifecycle event.
func NewJobEvent(eventType, jobID, productID, stage string, attempts int, errText string) Event {
	data := map[string]interface{}{
		"job_id":     jobID,
		"product_id": productID,
		"stage":      stage,
		"attempts":   attempts,
	}
	if errText != "" {
		data["error"] = errText
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
