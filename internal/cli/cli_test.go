package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abuabdirohman4/better-habit/internal/domain/entity"
	"github.com/abuabdirohman4/better-habit/internal/handler"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/memory"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/spreadsheet"
	habitservice "github.com/abuabdirohman4/better-habit/internal/service"
	"github.com/abuabdirohman4/better-habit/pkg/jwt"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gw := memory.NewGateway()
	gw.CreateSheet("sheet-1", spreadsheet.DefaultHabitsSheet, spreadsheet.HabitHeader())
	gw.CreateSheet("sheet-1", spreadsheet.DefaultLogsSheet, spreadsheet.LogHeader())

	log := zaptest.NewLogger(t)
	opts := spreadsheet.Options{
		SpreadsheetID: "sheet-1",
		RetryBackoff:  time.Millisecond,
		IDs:           entity.NewIDGenerator(func() time.Time { return time.UnixMilli(0) }),
		Logger:        log,
	}
	habits := spreadsheet.NewHabitRepository(gw, opts)
	logs := spreadsheet.NewHabitLogRepository(gw, habits, opts)
	svc := habitservice.NewHabitService(habits, logs, nil, time.UTC, log)

	srv := httptest.NewServer(handler.NewRouter(svc, log, handler.RouterOptions{}).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	var root Root
	parser, err := kong.New(&root, kong.Name("habitctl"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	kctx, err := parser.Parse(append([]string{"--server", server}, args...))
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = root.Execute(context.Background(), kctx, &out)
	return out.String(), err
}

func TestCLI_HabitLifecycle(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Equal(t, "No habits found\n", out)

	out, err = run(t, srv.URL, "add", "--name", "Morning Run", "--icon", "run_icon", "--reminder", "06:30")
	require.NoError(t, err)
	assert.Equal(t, "Created habit #1 Morning Run\n", out)

	out, err = run(t, srv.URL, "add", "-n", "Gym", "-i", "dumbbell_icon", "-f", "weekly", "-d", "mon,wed,5")
	require.NoError(t, err)
	assert.Contains(t, out, "#2")

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 [active]")
	assert.Contains(t, out, "Morning Run (Health, All Day, daily)")
	assert.Contains(t, out, "Reminder: 06:30")
	assert.Contains(t, out, "Gym (Health, All Day, weekly 1,3,5)")

	out, err = run(t, srv.URL, "archive", "1")
	require.NoError(t, err)
	assert.Equal(t, "Archived habit #1 Morning Run\n", out)

	out, err = run(t, srv.URL, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Morning Run")

	out, err = run(t, srv.URL, "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 [archived]")

	out, err = run(t, srv.URL, "remove", "2")
	require.NoError(t, err)
	assert.Equal(t, "Removed habit #2\n", out)

	_, err = run(t, srv.URL, "remove", "2")
	assert.ErrorContains(t, err, "Habit not found")
}

func TestCLI_ToggleLogsStats(t *testing.T) {
	srv := newServer(t)
	_, err := run(t, srv.URL, "add", "-n", "Run", "-i", "run_icon")
	require.NoError(t, err)

	out, err := run(t, srv.URL, "toggle", "1", "--date", "2024-02-01", "--value", "5")
	require.NoError(t, err)
	assert.Equal(t, "Habit #1 completed for 2024-02-01\n", out)

	_, err = run(t, srv.URL, "toggle", "1", "--date", "2024-02-02")
	require.NoError(t, err)

	out, err = run(t, srv.URL, "logs", "1")
	require.NoError(t, err)
	assert.Equal(t, "Logs of habit #1:\n  2024-02-01  5\n  2024-02-02\n", out)

	out, err = run(t, srv.URL, "stats", "1", "--month", "2024-02")
	require.NoError(t, err)
	assert.Contains(t, out, "Habit #1, 2024-02")
	assert.Contains(t, out, "Longest streak:  2")
	assert.Contains(t, out, "Success rate:    7% (2/29 days)")

	out, err = run(t, srv.URL, "toggle", "1", "--date", "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, "Habit #1 no longer completed for 2024-02-02\n", out)

	_, err = run(t, srv.URL, "toggle", "1", "--date", "02/02/2024")
	assert.Error(t, err)

	_, err = run(t, srv.URL, "logs", "abc")
	assert.ErrorContains(t, err, "invalid habit id")
}

func TestCLI_Token(t *testing.T) {
	out, err := run(t, "http://localhost:1", "token", "--secret", "s3cret", "--ttl", "1h")
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 2)
	claims, err := jwt.NewTokenManager("s3cret", time.Hour, "better-habit").Validate(string(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, "habitctl", claims.Client)
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("Fri, mon,3")
	require.NoError(t, err)
	assert.Equal(t, "1,3,5", days.String())

	_, err = parseWeekdays("funday")
	assert.Error(t, err)
	_, err = parseWeekdays("8")
	assert.Error(t, err)
}
