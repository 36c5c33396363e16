package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Arshia-r-m/Financial-tracker/internal/utils"
	"github.com/google/subcommands"
)

// accountCmd is a container for account subcommands
type accountCmd struct {
	app *app
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "create, list, show and remove accounts" }
func (*accountCmd) Usage() string {
	return `ft account <subcommand> [args]

Commands:
  add    - Create an account.
  list   - List every account with its balance.
  show   - Show one account's balance.
  remove - Remove an account and all of its transactions.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {}
func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := c.app.newCommander(f, "account")
	commander.Register(&accountAddCmd{app: c.app}, "")
	commander.Register(&accountListCmd{app: c.app}, "")
	commander.Register(&accountShowCmd{app: c.app}, "")
	commander.Register(&accountRemoveCmd{app: c.app}, "")
	return commander.Execute(ctx, args...)
}

type accountAddCmd struct {
	app     *app
	name    string
	balance int64
}

func (*accountAddCmd) Name() string     { return "add" }
func (*accountAddCmd) Synopsis() string { return "create an account" }
func (*accountAddCmd) Usage() string {
	return `ft account add -name <name> [-balance <minor units>]

  Creates an account. The opening balance defaults to 0 and may be negative.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Unique account name.")
	f.Int64Var(&c.balance, "balance", 0, "Opening balance in minor units (cents).")
}

func (c *accountAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		return c.app.usage("-name is required")
	}
	if f.NArg() > 0 {
		return c.app.usage("unexpected arguments: %v", f.Args())
	}

	var initial *int64
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "balance" {
			initial = &c.balance
		}
	})

	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	acc, err := ledger.CreateAccount(c.app.Context(ctx), c.name, initial)
	if err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(fmt.Sprintf("Created account **%s** (id %d) with balance %s.\n",
		mdCell(acc.Name), acc.ID, utils.FormatMinorUnits(acc.Balance, c.app.currency())))
	return subcommands.ExitSuccess
}

type accountListCmd struct {
	app *app
}

func (*accountListCmd) Name() string     { return "list" }
func (*accountListCmd) Synopsis() string { return "list every account with its balance" }
func (*accountListCmd) Usage() string {
	return `ft account list

  Lists accounts in creation order.
`
}

func (c *accountListCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	accounts, err := ledger.ListAccounts(c.app.Context(ctx))
	if err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(accountsMarkdown(accounts, c.app.currency()))
	return subcommands.ExitSuccess
}

type accountShowCmd struct {
	app *app
}

func (*accountShowCmd) Name() string     { return "show" }
func (*accountShowCmd) Synopsis() string { return "show one account's balance" }
func (*accountShowCmd) Usage() string {
	return `ft account show <name>
`
}

func (c *accountShowCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("account show takes exactly one account name")
	}

	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	acc, err := ledger.GetAccount(c.app.Context(ctx), f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(fmt.Sprintf("**%s** (id %d): %s\n",
		mdCell(acc.Name), acc.ID, utils.FormatMinorUnits(acc.Balance, c.app.currency())))
	return subcommands.ExitSuccess
}

type accountRemoveCmd struct {
	app *app
	id  string
}

func (*accountRemoveCmd) Name() string     { return "remove" }
func (*accountRemoveCmd) Synopsis() string { return "remove an account and its transactions" }
func (*accountRemoveCmd) Usage() string {
	return `ft account remove -id <id>

  Removes the account. Its expenses and incomes are removed with it.
`
}

func (c *accountRemoveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the account to remove.")
}

func (c *accountRemoveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := strconv.ParseInt(c.id, 10, 64)
	if err != nil {
		return c.app.usage("-id must be an integer, got %q", c.id)
	}

	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := ledger.DeleteAccount(c.app.Context(ctx), id); err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(fmt.Sprintf("Removed account %d.\n", id))
	return subcommands.ExitSuccess
}
