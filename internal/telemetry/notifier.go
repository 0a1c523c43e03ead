// Package telemetry carries the planner's best-effort event side channel.
// Notifications are fire-and-forget: the engine calls Notify and never
// waits on or observes the outcome. A notifier that fails must do so
// silently from the caller's perspective.
package telemetry

// Notifier receives plan lifecycle events.
type Notifier interface {
	Notify(event string, fields map[string]interface{})
}

// Event names emitted by the orchestration loop.
const (
	EventPlanProposed = "plan.proposed"
	EventPlanRefined  = "plan.refined"
	EventPlanRejected = "plan.rejected"
)

// NoopNotifier discards every event.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that does nothing.
func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

// Notify implements Notifier.
func (*NoopNotifier) Notify(string, map[string]interface{}) {}
