// services/mailer.go - Outbound e-mail
package services

import (
	"fmt"
	"log"
	"strings"

	"hackreg/config"
	"hackreg/models"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	host    string
	port    int
	user    string
	pass    string
	from    string
	enabled bool
}

// NewMailer builds the SMTP mailer. Without credentials it runs in mock mode
// and logs messages instead of sending, so local registration flows work
// without an SMTP server.
func NewMailer(cfg config.Config) *Mailer {
	m := &Mailer{
		host:    cfg.SMTP.Host,
		port:    cfg.SMTP.Port,
		user:    cfg.SMTP.User,
		pass:    cfg.SMTP.Pass,
		from:    cfg.SMTP.From,
		enabled: cfg.SMTP.Configured(),
	}
	if !m.enabled {
		log.Println("📧 SMTP credentials not configured, mailer running in mock mode")
	}
	return m
}

// Enabled reports whether real delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

// Ping dials the SMTP server for the e-mail health probe.
func (m *Mailer) Ping() error {
	if !m.enabled {
		return fmt.Errorf("smtp credentials not configured")
	}
	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	conn, err := d.Dial()
	if err != nil {
		return err
	}
	return conn.Close()
}

// SendRegistrationReceived informs the leader the registration was recorded
// and payment is pending.
func (m *Mailer) SendRegistrationReceived(team *models.Team) error {
	subject := fmt.Sprintf("Hackathon Registration Received - ID: %s", team.RegistrationID)
	body := teamMailBody(team,
		"Registration Received",
		"Thank you for registering for the College Hackathon. Your registration is recorded and will be confirmed once your payment is verified.")
	return m.send(team.LeaderEmail, subject, body)
}

// SendPaymentConfirmed informs the leader the team is confirmed.
func (m *Mailer) SendPaymentConfirmed(team *models.Team) error {
	subject := fmt.Sprintf("Hackathon Registration Confirmed - ID: %s", team.RegistrationID)
	body := teamMailBody(team,
		"Registration Confirmed! 🎉",
		"Your payment has been verified and your team is confirmed for the College Hackathon.")
	return m.send(team.LeaderEmail, subject, body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.enabled {
		log.Printf("[EMAIL MOCK] to=%s subject=%q", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

func teamMailBody(team *models.Team, heading, intro string) string {
	var members strings.Builder
	for _, p := range team.Participants.Data() {
		fmt.Fprintf(&members, "<li>%s</li>", p.FullName)
	}

	return fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>%s</h1>
  <p>%s</p>
  <div style="background: #e7f3ff; padding: 15px; border-left: 4px solid #2196F3;">
    <p><strong>Your Registration ID:</strong></p>
    <p style="font-size: 24px; font-weight: bold; color: #2196F3;">%s</p>
  </div>
  <h2>Team Details</h2>
  <p><strong>Team Name:</strong> %s</p>
  <p><strong>Team Members (%d):</strong></p>
  <ul>%s</ul>
  <p style="color: #666;">Please keep your Registration ID safe. You'll need it to verify your team on the day of the hackathon.</p>
  <p style="color: #999; font-size: 12px;">For any queries, contact the organizers.</p>
</div>
</body></html>`,
		heading, intro, team.RegistrationID, team.TeamName, len(team.Participants.Data()), members.String())
}

// IsAuthError reports whether an SMTP failure is an authentication problem.
// Retrying those just re-fails and risks a provider lockout.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "535") ||
		strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "username and password not accepted")
}
