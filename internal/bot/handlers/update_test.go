package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/vladimiradmaev/health-mate/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-mate/internal/bot/state"
	"github.com/vladimiradmaev/health-mate/internal/config"
	"github.com/vladimiradmaev/health-mate/internal/database"
	"github.com/vladimiradmaev/health-mate/internal/logger"
	"github.com/vladimiradmaev/health-mate/internal/repository"
	"github.com/vladimiradmaev/health-mate/internal/services"
)

const chatID int64 = 4242

// recorder collects everything the handlers send
type recorder struct {
	texts    []string
	requests int
}

func (r *recorder) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		r.texts = append(r.texts, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (r *recorder) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	r.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (r *recorder) last() string {
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

func (r *recorder) saw(substr string) bool {
	for _, t := range r.texts {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

type fixture struct {
	svc     *services.Services
	sender  *recorder
	states  *state.Manager
	handler *UpdateHandler
}

func newFixture(t *testing.T, issue func(uuid.UUID) (string, error)) *fixture {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", Path: ":memory:"}, logger.Discard())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	svc := services.New(repository.New(db), config.HealthConfig{DefaultWaterGoalMl: 2000, DefaultTimezone: "UTC"}, logger.Discard())
	svc.Calendar.SetClock(func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) })

	sender := &recorder{}
	states := state.NewManager()
	deps := Dependencies{
		Users:      svc.Users,
		Progress:   svc.Progress,
		Water:      svc.Water,
		Moods:      svc.Moods,
		Weight:     svc.Weight,
		IssueToken: issue,
	}
	return &fixture{
		svc:     svc,
		sender:  sender,
		states:  states,
		handler: NewUpdateHandler(sender, deps, states, logger.Discard()),
	}
}

func (f *fixture) text(t *testing.T, text string) {
	t.Helper()
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: chatID, FirstName: "Sam"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	if strings.HasPrefix(text, "/") {
		cmd := strings.SplitN(text, " ", 2)[0]
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}
	if err := f.handler.Handle(context.Background(), tgbotapi.Update{Message: msg}); err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
}

func (f *fixture) press(t *testing.T, data string) {
	t.Helper()
	query := &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID, FirstName: "Sam"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
	if err := f.handler.Handle(context.Background(), tgbotapi.Update{CallbackQuery: query}); err != nil {
		t.Fatalf("press %q: %v", data, err)
	}
}

func (f *fixture) userID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := f.svc.Users.UserByTelegramID(context.Background(), chatID)
	if err != nil {
		t.Fatalf("UserByTelegramID: %v", err)
	}
	return id
}

func TestStartWelcomesNewUserOnce(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "/start")
	if !f.sender.saw("Welcome, Sam") {
		t.Fatalf("no welcome in %q", f.sender.texts)
	}
	if !strings.Contains(f.sender.last(), "Choose an action") {
		t.Errorf("last message = %q, want main menu", f.sender.last())
	}

	f.sender.texts = nil
	f.text(t, "/start")
	if f.sender.saw("Welcome") {
		t.Errorf("returning user welcomed again: %q", f.sender.texts)
	}
}

func TestWaterCommandReachesGoal(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "/water 1500")
	if !strings.Contains(f.sender.last(), "1500/2000 ml (75%)") {
		t.Errorf("reply = %q", f.sender.last())
	}

	f.text(t, "/water 500")
	if !strings.Contains(f.sender.last(), "Daily goal reached") {
		t.Errorf("reply = %q", f.sender.last())
	}

	f.text(t, "/streaks")
	if !strings.Contains(f.sender.last(), "Water: 1 day") {
		t.Errorf("streaks = %q", f.sender.last())
	}
}

func TestWaterCommandRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "/water lots")
	if !strings.Contains(f.sender.last(), "whole number") {
		t.Errorf("reply = %q", f.sender.last())
	}

	f.text(t, "/water 0")
	if !strings.HasPrefix(f.sender.last(), "⚠️") {
		t.Errorf("reply = %q, want a validation message", f.sender.last())
	}
}

func TestCustomWaterButtonWaitsForAmount(t *testing.T) {
	f := newFixture(t, nil)

	f.press(t, keyboards.WaterCustom)
	if f.sender.requests != 1 {
		t.Errorf("callback answered %d times, want 1", f.sender.requests)
	}
	if got := f.states.GetUserState(chatID); got != state.WaitingForWaterAmount {
		t.Fatalf("state = %q", got)
	}

	f.text(t, "330")
	if !strings.Contains(f.sender.last(), "Logged 330 ml") {
		t.Errorf("reply = %q", f.sender.last())
	}
	if got := f.states.GetUserState(chatID); got != state.None {
		t.Errorf("state after log = %q, want none", got)
	}
}

func TestMoodConversation(t *testing.T) {
	f := newFixture(t, nil)

	f.press(t, keyboards.Mood)
	f.text(t, "11")
	if !strings.Contains(f.sender.last(), "from 1 to 10") {
		t.Errorf("reply = %q", f.sender.last())
	}
	if got := f.states.GetUserState(chatID); got != state.WaitingForMood {
		t.Fatalf("state after bad level = %q", got)
	}

	f.text(t, "7")
	f.text(t, "6")
	f.text(t, "3")
	if !strings.Contains(f.sender.last(), "mood 7, energy 6, stress 3") {
		t.Fatalf("reply = %q", f.sender.last())
	}

	m, err := f.svc.Moods.Today(context.Background(), f.userID(t))
	if err != nil || m == nil {
		t.Fatalf("Today: %v, %v", m, err)
	}
	if m.Date != "2024-03-10" || m.MoodLevel != 7 || m.StressLevel != 3 {
		t.Errorf("mood = %+v", m)
	}
	if _, ok := f.states.GetTempData(chatID, "mood"); ok {
		t.Error("temp data not cleared")
	}
}

func TestWeightCommandAcceptsComma(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "/weight 72,5")
	if !strings.Contains(f.sender.last(), "Weight 72.5 kg saved") {
		t.Errorf("reply = %q", f.sender.last())
	}
}

func TestScoreCommand(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "/water 2000")
	f.text(t, "/score")
	if !strings.Contains(f.sender.last(), "25/100") || !strings.Contains(f.sender.last(), "Water: 25/25") {
		t.Errorf("score = %q", f.sender.last())
	}
}

func TestTokenCommand(t *testing.T) {
	f := newFixture(t, nil)
	f.text(t, "/token")
	if !strings.Contains(f.sender.last(), "not enabled") {
		t.Errorf("reply = %q", f.sender.last())
	}

	var issuedFor uuid.UUID
	f = newFixture(t, func(id uuid.UUID) (string, error) {
		issuedFor = id
		return "signed.jwt.value", nil
	})
	f.text(t, "/token")
	if !strings.Contains(f.sender.last(), "signed.jwt.value") {
		t.Errorf("reply = %q", f.sender.last())
	}
	if issuedFor != f.userID(t) {
		t.Errorf("token issued for %s", issuedFor)
	}
}

func TestPlainTextWithoutConversation(t *testing.T) {
	f := newFixture(t, nil)

	f.text(t, "hello")
	if !f.sender.saw("Please use the menu") {
		t.Errorf("texts = %q", f.sender.texts)
	}
	if !strings.Contains(f.sender.last(), "Choose an action") {
		t.Errorf("last = %q, want main menu", f.sender.last())
	}
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t, nil)
	f.text(t, "/dance")
	if !strings.Contains(f.sender.last(), "Unknown command") {
		t.Errorf("reply = %q", f.sender.last())
	}
}
