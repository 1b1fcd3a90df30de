package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"rps_game/internal/game"
	"rps_game/internal/mail"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []mail.Message
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, m mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[m.To] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, m)
	return nil
}

func TestSendRemindersTargetsUsersWithActiveGames(t *testing.T) {
	env := newTestEnv(t, throws(game.Scissors))
	env.mustUser(t, "alice", "alice@example.com") // active game
	env.mustUser(t, "bob", "bob@example.com")     // no games
	env.mustUser(t, "carol", "")                  // active game, no email
	env.mustUser(t, "dave", "dave@example.com")   // finished game only
	env.mustUser(t, "erin", "erin@example.com")   // two active games

	env.mustGame(t, "alice", 3)
	env.mustGame(t, "carol", 3)
	done := env.mustGame(t, "dave", 1)
	env.mustMove(t, done.ID, "rock")
	env.mustGame(t, "erin", 3)
	env.mustGame(t, "erin", 5)

	sender := &fakeSender{}
	svc := NewReminderService(env.store.Users(), sender, "noreply@rps.local", env.audit)

	report, err := svc.SendReminders(context.Background())
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if report.Sent != 2 || report.Failed != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	var to []string
	for _, m := range sender.sent {
		to = append(to, m.To)
		if m.Subject != ReminderSubject || m.From != "noreply@rps.local" {
			t.Fatalf("unexpected message %+v", m)
		}
	}
	sort.Strings(to)
	if len(to) != 2 || to[0] != "alice@example.com" || to[1] != "erin@example.com" {
		t.Fatalf("unexpected recipients %v", to)
	}
	for _, m := range sender.sent {
		if m.To == "alice@example.com" && m.Body != "Hello alice, try out Rock, Paper, Scissors!" {
			t.Fatalf("unexpected body %q", m.Body)
		}
	}
}

func TestSendRemindersContinuesAfterFailure(t *testing.T) {
	env := newTestEnv(t, throws(game.Rock))
	env.mustUser(t, "alice", "alice@example.com")
	env.mustUser(t, "bob", "bob@example.com")
	env.mustGame(t, "alice", 3)
	env.mustGame(t, "bob", 3)

	sender := &fakeSender{fail: map[string]bool{"alice@example.com": true}}
	svc := NewReminderService(env.store.Users(), sender, "noreply@rps.local", env.audit)

	report, err := svc.SendReminders(context.Background())
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if report.Sent != 1 || report.Failed != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "bob@example.com" {
		t.Fatalf("unexpected deliveries %+v", sender.sent)
	}

	logs, _ := env.users.Activity(context.Background(), "bob", 1)
	if len(logs) != 1 || logs[0].Action != "reminder_sent" {
		t.Fatalf("expected reminder audit entry, got %+v", logs)
	}
}

func TestSendRemindersNoTargets(t *testing.T) {
	env := newTestEnv(t, throws(game.Rock))
	sender := &fakeSender{}
	svc := NewReminderService(env.store.Users(), sender, "noreply@rps.local", nil)

	report, err := svc.SendReminders(context.Background())
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}
	if report.Sent != 0 || report.Failed != 0 || len(sender.sent) != 0 {
		t.Fatalf("expected nothing sent, got %+v", report)
	}
}
