package services

// Events published after a mutation commits.
const (
	EventSessionStarted   = "session_started"
	EventConsumptionAdded = "consumption_added"
	EventSessionEnded     = "session_ended"
	EventTableCreated     = "table_created"
)

// EventPublisher receives committed state changes of a tenant, e.g. to
// refresh dashboards. Publish must not block.
type EventPublisher interface {
	Publish(tenantID uint, event string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(uint, string, interface{}) {}
