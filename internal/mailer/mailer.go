// Package mailer sends match notification emails through an SMTP relay.
// Failures are logged and reported as false, never surfaced as errors; a
// broken relay must not fail a found-item submission.
package mailer

import (
	"fmt"
	"html"
	"log"
	"math"
	"time"

	"github.com/prnvgithub28/Foundry/models"

	"gopkg.in/gomail.v2"
)

// MatchNotifier is the boundary to the email collaborator.
type MatchNotifier interface {
	SendMatchNotification(lost, found *models.Item, score float64) bool
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

// SendMatchNotification composes and sends two informational emails, one per
// party, each with the counterpart's details and contact info.
func (m *SMTPMailer) SendMatchNotification(lost, found *models.Item, score float64) bool {
	if err := m.send(lost.ContactInfo,
		fmt.Sprintf("Good News! We found a match for your lost %s", lost.ItemType),
		renderLostPartyBody(lost, found, score)); err != nil {
		log.Printf("Failed to send match notification to lost party: %v", err)
		return false
	}

	if err := m.send(found.ContactInfo,
		fmt.Sprintf("Potential Match Found for the %s You Found", found.ItemType),
		renderFoundPartyBody(lost, found, score)); err != nil {
		log.Printf("Failed to send match notification to found party: %v", err)
		return false
	}

	log.Println("Match notifications sent successfully")
	return true
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

func renderLostPartyBody(lost, found *models.Item, score float64) string {
	imageBlock := ""
	if found.ImageURL != "" {
		imageBlock = fmt.Sprintf(`<img src="%s" alt="Found item" style="max-width: 100%%; height: auto; border-radius: 4px;">`, found.ImageURL)
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4CAF50;">🎉 Great News! We Found a Match!</h2>
  <p>Dear User,</p>
  <p>We have found a potential match for your lost <strong>%s</strong> that you reported on %s.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3>Match Details:</h3>
    <p><strong>Match Confidence:</strong> %d%%</p>
    <p><strong>Found Item Description:</strong> %s</p>
    <p><strong>Location Found:</strong> %s</p>
    <p><strong>Date Found:</strong> %s</p>
    %s
  </div>
  <div style="background-color: #e3f2fd; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h4>Next Steps:</h4>
    <p>Please contact the person who found this item to verify if it belongs to you.</p>
    <p><strong>Contact Information:</strong> %s</p>
  </div>
  <p style="color: #666; font-size: 14px;">
    Note: Please verify the item carefully before making any claims. The platform is not responsible for the accuracy of the matches.
  </p>
  <hr style="border: 1px solid #eee; margin: 30px 0;">
  <p style="color: #666; font-size: 12px;">
    This is an automated message from Foundry Lost &amp; Found System.<br>
    If you didn't report a lost item, please ignore this email.
  </p>
</div>`,
		html.EscapeString(lost.ItemType), formatDate(lost.DateLost), scorePercent(score),
		html.EscapeString(found.Description), html.EscapeString(found.Location), formatDate(found.DateFound),
		imageBlock, html.EscapeString(found.ContactInfo))
}

func renderFoundPartyBody(lost, found *models.Item, score float64) string {
	imageBlock := ""
	if lost.ImageURL != "" {
		imageBlock = fmt.Sprintf(`<img src="%s" alt="Lost item" style="max-width: 100%%; height: auto; border-radius: 4px;">`, lost.ImageURL)
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2196F3;">🔍 Potential Match Found!</h2>
  <p>Dear User,</p>
  <p>We have found a potential match for the <strong>%s</strong> you found on %s.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3>Match Details:</h3>
    <p><strong>Match Confidence:</strong> %d%%</p>
    <p><strong>Lost Item Description:</strong> %s</p>
    <p><strong>Location Lost:</strong> %s</p>
    <p><strong>Date Lost:</strong> %s</p>
    %s
  </div>
  <div style="background-color: #fff3e0; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h4>Next Steps:</h4>
    <p>Someone who lost this item may contact you soon. Please be prepared to:</p>
    <ul>
      <li>Verify the description matches the item you found</li>
      <li>Ask for specific details to confirm ownership</li>
      <li>Arrange a safe meeting place for item return</li>
    </ul>
    <p><strong>Contact Information of Lost Item Owner:</strong> %s</p>
  </div>
  <p style="color: #666; font-size: 14px;">
    Please exercise caution when sharing personal information and meeting strangers. Choose public places for item exchanges.
  </p>
  <hr style="border: 1px solid #eee; margin: 30px 0;">
  <p style="color: #666; font-size: 12px;">
    This is an automated message from Foundry Lost &amp; Found System.<br>
    If you didn't report a found item, please ignore this email.
  </p>
</div>`,
		html.EscapeString(found.ItemType), formatDate(found.DateFound), scorePercent(score),
		html.EscapeString(lost.Description), html.EscapeString(lost.Location), formatDate(lost.DateLost),
		imageBlock, html.EscapeString(lost.ContactInfo))
}

func scorePercent(score float64) int {
	return int(math.Round(score * 100))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "an unknown date"
	}
	return t.Format("Jan 2, 2006")
}
