package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/abuabdirohman4/better-habit/internal/config"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/domain/icon"
	"github.com/abuabdirohman4/better-habit/internal/domain/service"

	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Client struct {
	cfg       *config.SMTPConfig
	dialer    sender
	templates map[string]*template.Template
}

var _ service.ReminderNotifier = (*Client)(nil)

// NewClient creates a new SMTP client. Templates missing from templatesPath fall back to the built-in ones.
func NewClient(cfg *config.SMTPConfig, templatesPath string) (*Client, error) {
	client := &Client{
		cfg:       cfg,
		dialer:    newDialer(cfg),
		templates: make(map[string]*template.Template),
	}

	if err := client.loadTemplates(templatesPath); err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return client, nil
}

func newDialer(cfg *config.SMTPConfig) *gomail.Dialer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	// UseTLS means STARTTLS on 587, otherwise implicit TLS on 465
	d.SSL = !cfg.UseTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d
}

func (c *Client) loadTemplates(templatesPath string) error {
	reminderTemplate, err := template.ParseFiles(filepath.Join(templatesPath, "reminder.html"))
	if err != nil {
		reminderTemplate, err = template.New("reminder").Parse(defaultReminderTemplate)
		if err != nil {
			return fmt.Errorf("failed to parse default reminder template: %w", err)
		}
	}
	c.templates["reminder"] = reminderTemplate
	return nil
}

// SendReminder e-mails a reminder for a habit not yet completed on date
func (c *Client) SendReminder(ctx context.Context, to string, habit entity.Habit, date string) error {
	ic, _ := icon.Lookup(habit.IconName)

	data := map[string]interface{}{
		"Name":         habit.DisplayName,
		"Emoji":        ic.Emoji,
		"ReminderTime": habit.ReminderTime,
		"GoalValue":    habit.GoalValue,
		"GoalUnit":     habit.GoalUnit,
		"Date":         date,
	}

	body, err := c.renderTemplate("reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	subject := fmt.Sprintf("Reminder: %s - Better Habit", habit.DisplayName)
	return c.send(to, subject, body)
}

// send sends an email using gomail
func (c *Client) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// renderTemplate renders an email template with the provided data
func (c *Client) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := c.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

const defaultReminderTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Habit Reminder</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4CAF50;">{{.Emoji}} Time for {{.Name}}</h2>
        <p>Your reminder for {{.ReminderTime}} on {{.Date}}.</p>
        {{if .GoalValue}}<p>Today's goal: <strong>{{.GoalValue}} {{.GoalUnit}}</strong></p>{{end}}
        <p>Mark it done in Better Habit to keep your streak going.</p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email, please do not reply.</p>
    </div>
</body>
</html>
`
