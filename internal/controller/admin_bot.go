package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/engine"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/repository"
	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/service"
)

// AdminBot is the operations surface: a command bot in the admin channel
// that drives assignments, confirmations and reports. Parent- and
// tutor-facing pages live elsewhere and call the same services.
type AdminBot struct {
	bot             *bot.Bot
	adminChatID     int64
	bookingService  *service.BookingService
	matchingService *service.MatchingService
	tutorService    *service.TutorService
	billingService  *service.BillingService
	parentRepo      *repository.ParentRepository
	logger          *zap.Logger
}

func NewAdminBot(
	botInstance *bot.Bot,
	adminChatID int64,
	bookingService *service.BookingService,
	matchingService *service.MatchingService,
	tutorService *service.TutorService,
	billingService *service.BillingService,
	parentRepo *repository.ParentRepository,
	logger *zap.Logger,
) *AdminBot {
	return &AdminBot{
		bot:             botInstance,
		adminChatID:     adminChatID,
		bookingService:  bookingService,
		matchingService: matchingService,
		tutorService:    tutorService,
		billingService:  billingService,
		parentRepo:      parentRepo,
		logger:          logger,
	}
}

// Register attaches the command handler and starts the bot.
func (a *AdminBot) Register() {
	a.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && update.Message.Chat.ID == a.adminChatID
	}, a.handleCommand)
}

func (a *AdminBot) Start(ctx context.Context) {
	a.Register()
	go a.bot.Start(ctx)
}

func (a *AdminBot) handleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	fields := strings.Fields(update.Message.Text)
	if len(fields) == 0 {
		return
	}

	var reply string
	var err error

	switch fields[0] {
	case "/pending":
		reply, err = a.handlePending(ctx)
	case "/candidates":
		reply, err = a.handleCandidates(ctx, fields[1:])
	case "/assign":
		reply, err = a.handleAssign(ctx, fields[1:])
	case "/reassign":
		reply, err = a.handleReassign(ctx, fields[1:])
	case "/accept":
		reply, err = a.handleRespond(ctx, fields[1:], true)
	case "/decline":
		reply, err = a.handleRespond(ctx, fields[1:], false)
	case "/finalize":
		reply, err = a.handleFinalize(ctx, fields[1:])
	case "/hardconfirm":
		reply, err = a.handleHardConfirm(ctx, fields[1:])
	case "/cancel":
		reply, err = a.handleCancel(ctx, fields[1:])
	case "/approve":
		reply, err = a.handleApprove(ctx, fields[1:], true)
	case "/deny":
		reply, err = a.handleApprove(ctx, fields[1:], false)
	case "/unavail":
		reply, err = a.handleUnavail(ctx, fields[1:])
	case "/report":
		reply, err = a.handleReport(ctx)
	default:
		return
	}

	if err != nil {
		a.logger.Warn("Admin command failed",
			zap.String("command", fields[0]),
			zap.Error(err))
		reply = "❌ " + err.Error()
	}

	_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   reply,
	})
	if sendErr != nil {
		a.logger.Error("Failed to send reply", zap.Error(sendErr))
	}
}

func (a *AdminBot) handlePending(ctx context.Context) (string, error) {
	bookings, err := a.bookingService.ListByStatus(ctx, model.BookingStatusPending)
	if err != nil {
		return "", err
	}
	if len(bookings) == 0 {
		return "No pending bookings.", nil
	}

	var sb strings.Builder
	sb.WriteString("Pending bookings:\n")
	for _, b := range bookings {
		fmt.Fprintf(&sb, "#%d %s — %s %s, %s, %d min\n",
			b.ID, b.ChildName, b.ExamDate.Format("2006-01-02"), b.StartTime,
			b.RequiredRole, b.DurationMinutes)
	}
	return sb.String(), nil
}

func (a *AdminBot) handleCandidates(ctx context.Context, args []string) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}

	booking, err := a.bookingService.GetByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if booking == nil {
		return "", fmt.Errorf("booking not found")
	}

	candidates, err := a.matchingService.CandidatesFor(ctx, *booking)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "No suitable tutor for this booking.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidates for booking #%d:\n", bookingID)
	for _, t := range candidates {
		fmt.Fprintf(&sb, "#%d %s %s (%s, %s)\n", t.ID, t.Name, t.Surname, t.Role, t.Town)
	}
	return sb.String(), nil
}

func (a *AdminBot) handleAssign(ctx context.Context, args []string) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}
	tutorID, err := parseID(args, 1, "tutor id")
	if err != nil {
		return "", err
	}

	booking, err := a.bookingService.AssignTutor(ctx, bookingID, tutorID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Booking #%d assigned to tutor #%d.", booking.ID, tutorID), nil
}

func (a *AdminBot) handleReassign(ctx context.Context, args []string) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}
	tutorID, err := parseID(args, 1, "tutor id")
	if err != nil {
		return "", err
	}

	booking, err := a.bookingService.ReassignTutor(ctx, bookingID, tutorID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Booking #%d reassigned to tutor #%d.", booking.ID, tutorID), nil
}

func (a *AdminBot) handleRespond(ctx context.Context, args []string, accept bool) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}
	tutorID, err := parseID(args, 1, "tutor id")
	if err != nil {
		return "", err
	}

	booking, err := a.bookingService.TutorRespond(ctx, bookingID, tutorID, accept)
	if err != nil {
		return "", err
	}
	if accept {
		return fmt.Sprintf("✅ Tutor accepted booking #%d, finalize when ready.", booking.ID), nil
	}
	return fmt.Sprintf("⚠️ Tutor declined booking #%d, re-assignment needed.", booking.ID), nil
}

func (a *AdminBot) handleFinalize(ctx context.Context, args []string) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}

	booking, err := a.bookingService.Finalize(ctx, bookingID)
	if err != nil {
		return "", err
	}

	parent, err := a.parentRepo.GetByID(ctx, booking.ParentID)
	if err != nil || parent == nil {
		return fmt.Sprintf("✅ Booking #%d confirmed.", booking.ID), nil
	}
	return fmt.Sprintf("✅ Booking #%d confirmed. Parent: %s %s (%s).",
		booking.ID, parent.Name, parent.Surname, parent.Phone), nil
}

func (a *AdminBot) handleHardConfirm(ctx context.Context, args []string) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}
	tutorID, err := parseID(args, 1, "tutor id")
	if err != nil {
		return "", err
	}

	booking, err := a.bookingService.HardConfirm(ctx, bookingID, tutorID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Booking #%d hard-confirmed with tutor #%d.", booking.ID, tutorID), nil
}

func (a *AdminBot) handleCancel(ctx context.Context, args []string) (string, error) {
	bookingID, err := parseID(args, 0, "booking id")
	if err != nil {
		return "", err
	}

	actor := engine.CancelActorAdmin
	if len(args) > 1 {
		switch args[1] {
		case "parent":
			actor = engine.CancelActorParent
		case "tutor":
			actor = engine.CancelActorTutor
		case "admin":
		default:
			return "", fmt.Errorf("unknown actor %q", args[1])
		}
	}

	booking, penalty, err := a.bookingService.Cancel(ctx, bookingID, actor)
	if err != nil {
		return "", err
	}
	if penalty {
		return fmt.Sprintf("⚠️ Booking #%d cancelled, penalty applies.", booking.ID), nil
	}
	return fmt.Sprintf("✅ Booking #%d cancelled, no penalty.", booking.ID), nil
}

func (a *AdminBot) handleApprove(ctx context.Context, args []string, approved bool) (string, error) {
	tutorID, err := parseID(args, 0, "tutor id")
	if err != nil {
		return "", err
	}

	err = a.tutorService.SetApproval(ctx, tutorID, approved)
	if err != nil {
		return "", err
	}
	if approved {
		return fmt.Sprintf("✅ Tutor #%d approved.", tutorID), nil
	}
	return fmt.Sprintf("✅ Tutor #%d approval withdrawn.", tutorID), nil
}

// handleUnavail records an unavailability window on a tutor's behalf:
// /unavail <tutor_id> <start_date> <end_date> [<start_time> <end_time>]
func (a *AdminBot) handleUnavail(ctx context.Context, args []string) (string, error) {
	tutorID, err := parseID(args, 0, "tutor id")
	if err != nil {
		return "", err
	}
	if len(args) < 3 {
		return "", fmt.Errorf("usage: /unavail <tutor_id> <start_date> <end_date> [<start_time> <end_time>]")
	}

	startDate, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return "", fmt.Errorf("bad start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", args[2])
	if err != nil {
		return "", fmt.Errorf("bad end date: %w", err)
	}

	window := model.UnavailabilityWindow{
		TutorID:   tutorID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    "recorded by admin",
	}
	if len(args) >= 5 {
		window.StartTime = &args[3]
		window.EndTime = &args[4]
	}

	stored, err := a.tutorService.AddUnavailability(ctx, window)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Window #%d recorded for tutor #%d.", stored.ID, tutorID), nil
}

func (a *AdminBot) handleReport(ctx context.Context) (string, error) {
	report, err := a.billingService.ReportFor(ctx, time.Now())
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Billing period %s – %s: %d confirmed bookings, %d minutes.",
		report.PeriodStart.Format("2006-01-02"),
		report.PeriodEnd.Format("2006-01-02"),
		len(report.Bookings),
		report.TotalMinutes), nil
}

func parseID(args []string, idx int, name string) (int64, error) {
	if len(args) <= idx {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(args[idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, args[idx])
	}
	return id, nil
}
