// Package notifier dispatches join-confirmation mail after the
// participation row is durably committed. A slow or failing mail
// transport can therefore never block or fault the join response.
package notifier

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gatherly/gatherly-api/internal/domain"
	"github.com/gatherly/gatherly-api/internal/mailer"
)

const queueSize = 64

// Confirmation is one pending join-confirmation mail.
type Confirmation struct {
	Recipient     string
	Username      string
	EventTitle    string
	EventDate     time.Time
	EventLocation string
}

type Notifier struct {
	mailer mailer.Mailer
	logger *zap.Logger

	jobs chan Confirmation
	wg   sync.WaitGroup
	once sync.Once
}

func New(m mailer.Mailer, logger *zap.Logger) *Notifier {
	return &Notifier{
		mailer: m,
		logger: logger,
		jobs:   make(chan Confirmation, queueSize),
	}
}

// Start launches the worker goroutine that drains the queue.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for job := range n.jobs {
			n.deliver(job)
		}
	}()
}

// Stop closes the queue and waits for in-flight deliveries.
func (n *Notifier) Stop() {
	n.once.Do(func() {
		close(n.jobs)
	})
	n.wg.Wait()
}

// NotifyJoined enqueues a confirmation without blocking. Participants
// without an email address are skipped; a full queue drops the job
// with a log line rather than stalling the request.
func (n *Notifier) NotifyJoined(participant domain.Participant, event domain.Event) {
	if participant.Email == "" {
		return
	}

	job := Confirmation{
		Recipient:     participant.Email,
		Username:      participant.Username,
		EventTitle:    event.Title,
		EventDate:     event.Date,
		EventLocation: event.Location,
	}

	select {
	case n.jobs <- job:
	default:
		n.logger.Warn("notification queue full, dropping confirmation",
			zap.String("to", job.Recipient),
			zap.String("event", job.EventTitle))
	}
}

func (n *Notifier) deliver(job Confirmation) {
	subject := fmt.Sprintf("Registration Confirmed: %v", job.EventTitle)
	body := fmt.Sprintf(
		"Hello %v,\n\nYou have successfully registered for '%v' happening on %v at %v.",
		job.Username, job.EventTitle, job.EventDate.Format("2006-01-02"), job.EventLocation)

	if err := n.mailer.Send(job.Recipient, subject, body); err != nil {
		n.logger.Error("failed to send confirmation mail",
			zap.String("to", job.Recipient),
			zap.String("event", job.EventTitle),
			zap.Error(err))
		return
	}

	n.logger.Info("confirmation mail sent",
		zap.String("to", job.Recipient),
		zap.String("event", job.EventTitle))
}
