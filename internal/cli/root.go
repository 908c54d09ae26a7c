package cli

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"

	"github.com/abuabdirohman4/better-habit/internal/habitsync"
)

// Root is the habitctl command grammar
type Root struct {
	Server      string        `help:"API base URL." default:"http://localhost:8080" env:"HABIT_SERVER"`
	BearerToken string        `name:"token" help:"Bearer token." env:"HABIT_TOKEN"`
	Timeout     time.Duration `help:"Request timeout." default:"15s"`

	List    ListCmd    `cmd:"" help:"List habits." default:"1"`
	Add     AddCmd     `cmd:"" help:"Add a habit."`
	Archive ArchiveCmd `cmd:"" help:"Archive a habit."`
	Remove  RemoveCmd  `cmd:"" help:"Delete a habit and keep its logs."`
	Toggle  ToggleCmd  `cmd:"" help:"Toggle completion for a day."`
	Logs    LogsCmd    `cmd:"" help:"Show a habit's logs."`
	Stats   StatsCmd   `cmd:"" help:"Show a habit's monthly statistics."`
	Token   TokenCmd   `cmd:"" help:"Mint a bearer token."`
}

// Execute runs the parsed command against the configured server
func (r *Root) Execute(ctx context.Context, kctx *kong.Context, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	client, err := habitsync.New(habitsync.Options{
		BaseURL:            r.Server,
		Token:              r.BearerToken,
		RevalidateInterval: -1,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	return kctx.Run(&Context{Ctx: ctx, Client: client, Out: out})
}
