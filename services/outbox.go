// services/outbox.go - In-process task outbox for fire-and-forget side effects
package services

import (
	"log"
	"sync"
	"time"

	"hackreg/models"

	"github.com/google/uuid"
)

// Outbox runs side-effect jobs asynchronously with bounded retry. Failures are
// logged and swallowed; nothing here can fail a registration or confirmation.
type Outbox struct {
	wg          sync.WaitGroup
	maxAttempts int
	baseDelay   time.Duration
}

func NewOutbox(maxAttempts int, baseDelay time.Duration) *Outbox {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Outbox{maxAttempts: maxAttempts, baseDelay: baseDelay}
}

// Enqueue schedules a job and returns immediately.
func (o *Outbox) Enqueue(kind string, send func() error) {
	id := uuid.New().String()[:8]
	o.wg.Add(1)
	go o.run(id, kind, send)
}

func (o *Outbox) run(id, kind string, send func() error) {
	defer o.wg.Done()

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		err := send()
		if err == nil {
			log.Printf("📬 outbox job %s (%s) delivered on attempt %d", id, kind, attempt)
			return
		}
		if IsAuthError(err) {
			log.Printf("❌ outbox job %s (%s) failed with auth error, not retrying: %v", id, kind, err)
			return
		}
		log.Printf("⚠️  outbox job %s (%s) attempt %d/%d failed: %v", id, kind, attempt, o.maxAttempts, err)
		if attempt < o.maxAttempts {
			time.Sleep(o.baseDelay * time.Duration(attempt))
		}
	}

	log.Printf("❌ outbox job %s (%s) gave up after %d attempts", id, kind, o.maxAttempts)
}

// Stop waits for in-flight jobs to finish. Called during shutdown so queued
// mail is not silently dropped.
func (o *Outbox) Stop() {
	o.wg.Wait()
	log.Println("Outbox drained")
}

// EmailNotifier bridges lifecycle events onto the outbox.
type EmailNotifier struct {
	outbox *Outbox
	mailer *Mailer
}

func NewEmailNotifier(outbox *Outbox, mailer *Mailer) *EmailNotifier {
	return &EmailNotifier{outbox: outbox, mailer: mailer}
}

func (n *EmailNotifier) RegistrationReceived(team *models.Team) {
	n.outbox.Enqueue("registration-received", func() error {
		return n.mailer.SendRegistrationReceived(team)
	})
}

func (n *EmailNotifier) PaymentConfirmed(team *models.Team) {
	n.outbox.Enqueue("payment-confirmed", func() error {
		return n.mailer.SendPaymentConfirmed(team)
	})
}
