package app

import (
	"context"
)

// publishEvent publishes fire-and-forget. Event delivery never fails the
// originating request; broker errors are logged and dropped.
func (app *Application) publishEvent(ctx context.Context, routingKey string, payload any) {
	if app.publisher == nil {
		return
	}

	err := app.publisher.Publish(ctx, routingKey, payload)
	if err != nil {
		app.logger.Error("failed to publish event", "routing_key", routingKey, "error", err)
	}
}
