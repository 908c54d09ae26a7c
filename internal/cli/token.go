package cli

import (
	"time"

	"github.com/abuabdirohman4/better-habit/pkg/jwt"
)

// TokenCmd mints a bearer token signed with the server's secret
type TokenCmd struct {
	Secret string        `help:"JWT signing secret." env:"JWT_SECRET" required:""`
	Issuer string        `help:"Token issuer." default:"better-habit"`
	TTL    time.Duration `name:"ttl" help:"Token lifetime." default:"720h"`
	Name   string        `help:"Client name carried in the token." default:"habitctl"`
}

func (c *TokenCmd) Run(ctx *Context) error {
	token, expiresAt, err := jwt.NewTokenManager(c.Secret, c.TTL, c.Issuer).Generate(c.Name)
	if err != nil {
		return err
	}
	ctx.printf("%s\n", token)
	ctx.printf("expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
