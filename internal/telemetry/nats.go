// NATS-backed event notifier.
package telemetry

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/vinayprograms/agentkit/logging"
)

// NATSNotifier publishes plan lifecycle events to a NATS subject tree.
// Publish failures are logged and dropped; they never reach the planner.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	logger  *logging.Logger
}

// NewNATSNotifier connects to the given NATS URL and publishes events under
// subject (e.g. "planner.events" yields "planner.events.plan.proposed").
func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return &NATSNotifier{
		conn:    conn,
		subject: subject,
		logger:  logging.New().WithComponent("events"),
	}, nil
}

// Notify implements Notifier.
func (n *NATSNotifier) Notify(event string, fields map[string]interface{}) {
	data, err := json.Marshal(fields)
	if err != nil {
		n.logger.Warn("dropping unencodable event", map[string]interface{}{
			"event": event,
			"error": err.Error(),
		})
		return
	}
	if err := n.conn.Publish(n.subject+"."+event, data); err != nil {
		n.logger.Warn("event publish failed", map[string]interface{}{
			"event": event,
			"error": err.Error(),
		})
	}
}

// Close drains and closes the connection.
func (n *NATSNotifier) Close() {
	if err := n.conn.Drain(); err != nil {
		n.logger.Warn("NATS drain failed", map[string]interface{}{"error": err.Error()})
		n.conn.Close()
	}
}
