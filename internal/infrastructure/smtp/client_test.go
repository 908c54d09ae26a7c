package smtp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abuabdirohman4/better-habit/internal/config"
	"github.com/abuabdirohman4/better-habit/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return c.err
}

func testConfig() *config.SMTPConfig {
	return &config.SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "noreply@example.com", FromName: "Better Habit", UseTLS: true}
}

func TestNewDialer_TLSMode(t *testing.T) {
	cfg := testConfig()
	assert.False(t, newDialer(cfg).SSL)

	cfg.UseTLS = false
	d := newDialer(cfg)
	assert.True(t, d.SSL)
	assert.Equal(t, "smtp.example.com", d.TLSConfig.ServerName)
}

func TestSendReminder_DefaultTemplate(t *testing.T) {
	client, err := NewClient(testConfig(), t.TempDir())
	require.NoError(t, err)
	capture := &captureSender{}
	client.dialer = capture

	habit := entity.Habit{DisplayName: "Morning Run", IconName: "run_icon", ReminderTime: "07:00", GoalValue: 5, GoalUnit: "km"}
	require.NoError(t, client.SendReminder(context.Background(), "me@example.com", habit, "2024-02-01"))

	require.Len(t, capture.messages, 1)
	msg := capture.messages[0]
	assert.Equal(t, []string{"me@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Reminder: Morning Run - Better Habit"}, msg.GetHeader("Subject"))

	body, err := client.renderTemplate("reminder", map[string]interface{}{
		"Name": "Morning Run", "Emoji": "🏃", "ReminderTime": "07:00", "GoalValue": 5, "GoalUnit": "km", "Date": "2024-02-01",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Time for Morning Run")
	assert.Contains(t, body, "5 km")
	assert.Contains(t, body, "2024-02-01")
}

func TestSendReminder_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reminder.html"), []byte("custom {{.Name}}"), 0o600))

	client, err := NewClient(testConfig(), dir)
	require.NoError(t, err)

	body, err := client.renderTemplate("reminder", map[string]interface{}{"Name": "Read"})
	require.NoError(t, err)
	assert.Equal(t, "custom Read", body)
}

func TestSendReminder_SendError(t *testing.T) {
	client, err := NewClient(testConfig(), "")
	require.NoError(t, err)
	client.dialer = &captureSender{err: errors.New("connection refused")}

	err = client.SendReminder(context.Background(), "me@example.com", entity.Habit{DisplayName: "Run"}, "2024-02-01")
	assert.ErrorContains(t, err, "failed to send email")
}
