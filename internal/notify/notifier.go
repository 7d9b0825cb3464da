package notify

import (
	"context"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// Notifier executes the notification intents a lifecycle transition
// produced. Dispatch is fire-and-forget: delivery failures are logged by
// the implementation and never roll back the transition they follow.
type Notifier interface {
	Dispatch(ctx context.Context, booking model.Booking, intents []engine.Intent)
}
