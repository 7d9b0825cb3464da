package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// TelegramNotifier delivers every intent to the operations channel. The
// admins relay parent- and tutor-facing messages by phone or email from
// there; the message text says who the recipient is.
type TelegramNotifier struct {
	bot         *bot.Bot
	adminChatID int64
	logger      *zap.Logger
}

func NewTelegramNotifier(botInstance *bot.Bot, adminChatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:         botInstance,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

func (n *TelegramNotifier) Dispatch(ctx context.Context, booking model.Booking, intents []engine.Intent) {
	for _, intent := range intents {
		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: n.adminChatID,
			Text:   formatIntent(booking, intent),
		})
		if err != nil {
			n.logger.Error("Failed to deliver notification",
				zap.Int64("booking_id", intent.BookingID),
				zap.String("kind", string(intent.Kind)),
				zap.Error(err),
			)
		}
	}
}

func formatIntent(booking model.Booking, intent engine.Intent) string {
	slot := fmt.Sprintf("%s %s (ref %s)", booking.ExamDate.Format("Mon 02 Jan 2006"), booking.StartTime, booking.Reference)

	switch intent.Kind {
	case engine.IntentNotifyParent:
		return fmt.Sprintf("📣 Contact parent #%d re booking %s: %s", intent.ParentID, slot, intent.Note)
	case engine.IntentNotifyTutor:
		return fmt.Sprintf("📣 Contact tutor #%d re booking %s: %s", intent.TutorID, slot, intent.Note)
	case engine.IntentNotifyAdmin:
		return fmt.Sprintf("⚠️ Booking %s needs attention: %s", slot, intent.Note)
	}
	return fmt.Sprintf("Booking %s: %s", slot, intent.Note)
}
