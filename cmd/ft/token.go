package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Arshia-r-m/Financial-tracker/internal/utils"
	"github.com/google/subcommands"
)

type tokenCmd struct {
	app     *app
	subject string
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a bearer token for the HTTP API" }
func (*tokenCmd) Usage() string {
	return `ft token [-subject <name>]

  Prints an HS256 token signed with JWT_SECRET, valid for JWT_EXPIRY_DURATION.
`
}

func (c *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subject, "subject", "ft-cli", "Subject recorded in the token.")
}

func (c *tokenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.app.config()
	if err != nil {
		return c.app.fail(err)
	}
	if cfg.JWTSecret == "" {
		return c.app.fail(fmt.Errorf("JWT_SECRET is not set"))
	}

	token, err := utils.GenerateJWT(c.subject, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	if err != nil {
		return c.app.fail(err)
	}

	fmt.Fprintln(c.app.out, token)
	return subcommands.ExitSuccess
}
