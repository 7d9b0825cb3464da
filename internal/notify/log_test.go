package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

func TestLogNotifierDispatch(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	intents := []engine.Intent{
		{Kind: engine.IntentNotifyTutor, BookingID: 4, TutorID: 2, Note: "new assignment"},
		{Kind: engine.IntentNotifyAdmin, BookingID: 4, Note: "tutor declined"},
	}

	n.Dispatch(context.Background(), model.Booking{ID: 4}, intents)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "Notification intent", entries[0].Message)
	require.Equal(t, string(engine.IntentNotifyAdmin), entries[1].ContextMap()["kind"])
}
