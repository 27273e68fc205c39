package mailing

import (
	"bytes"
	"html/template"
	"strconv"

	"preben-prepper/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}

	nopMailer struct{}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailer returns an SMTP mailer, or one that drops every message when no
// SMTP host is configured.
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		return nopMailer{}
	}
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (nopMailer) SendMail(string, string, string) error { return nil }

var accessGrantedTemplate = template.Must(template.New("access_granted").Parse(
	`<p>Hi {{.GranteeName}},</p>
<p>{{.GrantedBy}} has given you {{.Role}} access to the home <strong>{{.HomeName}}</strong>.</p>
<p><a href="{{.AppURL}}/homes/{{.HomeID}}">Open it in Preben Prepper</a></p>`))

type AccessGrantedMail struct {
	GranteeName string
	GrantedBy   string
	HomeName    string
	HomeID      uint
	Role        string
	AppURL      string
}

func AccessGrantedBody(data AccessGrantedMail) (string, error) {
	var buf bytes.Buffer
	if err := accessGrantedTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
