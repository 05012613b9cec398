package notifier_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/notifier"
)

type capturingMailer struct {
	mu    sync.Mutex
	sent  []sentMail
	errTo map[string]error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *capturingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errTo[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *capturingMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func TestNotifyJoined(t *testing.T) {
	t.Run("delivers the confirmation mail", func(t *testing.T) {
		m := &capturingMailer{}
		n := notifier.New(m, zap.NewNop())
		n.Start()

		participant := domain.Participant{Username: "alice", Email: "alice@example.com"}
		event := domain.Event{
			Title:    "GopherCon",
			Date:     time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			Location: "Berlin",
		}

		n.NotifyJoined(participant, event)
		n.Stop()

		sent := m.all()
		assert.Len(t, sent, 1)
		assert.Equal(t, "alice@example.com", sent[0].to)
		assert.Equal(t, "Registration Confirmed: GopherCon", sent[0].subject)
		assert.Equal(t,
			"Hello alice,\n\nYou have successfully registered for 'GopherCon' happening on 2026-09-12 at Berlin.",
			sent[0].body)
	})

	t.Run("skips participants without an email address", func(t *testing.T) {
		m := &capturingMailer{}
		n := notifier.New(m, zap.NewNop())
		n.Start()

		n.NotifyJoined(domain.Participant{Username: "ghost"}, domain.Event{Title: "GopherCon"})
		n.Stop()

		assert.Empty(t, m.all())
	})

	t.Run("a failing transport does not stop the worker", func(t *testing.T) {
		m := &capturingMailer{errTo: map[string]error{"bad@example.com": assert.AnError}}
		n := notifier.New(m, zap.NewNop())
		n.Start()

		n.NotifyJoined(domain.Participant{Username: "bad", Email: "bad@example.com"}, domain.Event{Title: "A"})
		n.NotifyJoined(domain.Participant{Username: "good", Email: "good@example.com"}, domain.Event{Title: "B"})
		n.Stop()

		sent := m.all()
		assert.Len(t, sent, 1)
		assert.Equal(t, "good@example.com", sent[0].to)
	})
}
