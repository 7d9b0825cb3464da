package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// LogNotifier records intents instead of delivering them. Used in
// development and whenever no Telegram token is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Dispatch(ctx context.Context, booking model.Booking, intents []engine.Intent) {
	for _, intent := range intents {
		n.logger.Info("Notification intent",
			zap.String("kind", string(intent.Kind)),
			zap.Int64("booking_id", intent.BookingID),
			zap.Int64("tutor_id", intent.TutorID),
			zap.Int64("parent_id", intent.ParentID),
			zap.String("note", intent.Note),
		)
	}
}
