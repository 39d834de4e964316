package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"resultdesk/app/config"

	"github.com/wneessen/go-mail"
)

// ErrChannelUnavailable means the mail channel is not configured or could not
// be built. Callers degrade to manual code disclosure, they do not fail.
var ErrChannelUnavailable = errors.New("mail channel unavailable")

var (
	mailClient *mail.Client
	mailFrom   string
)

// InitMailer builds the SMTP client when every required setting is present.
// An unconfigured channel is not an error, the service runs without it.
func InitMailer(cfg config.SMTPConfig) {
	if !cfg.Configured() {
		return
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(15*time.Second),
	)
	if err != nil {
		log.Printf("Failed to build SMTP client, continuing without email delivery: %v", err)
		return
	}

	mailClient = client
	mailFrom = cfg.From
	log.Printf("OTP email delivery enabled via %s:%d", cfg.Host, cfg.Port)
}

func MailerReady() bool {
	return mailClient != nil
}

// SendOTP delivers a one-time code to the given address.
func SendOTP(to, code string) error {
	if mailClient == nil || to == "" {
		return ErrChannelUnavailable
	}

	msg := mail.NewMsg()
	if err := msg.From(mailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Your admin OTP")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Your OTP for admin login is: %s\nThis OTP is valid for 5 minutes.", code))

	if err := mailClient.DialAndSend(msg); err != nil {
		log.Printf("OTP email send failed: %v", err)
		return err
	}
	return nil
}
