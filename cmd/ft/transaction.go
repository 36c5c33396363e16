package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils"
	"github.com/google/subcommands"
)

// transactionCmd is a container for the subcommands of one transaction kind. The
// "expense" and "income" commands are two instances of it.
type transactionCmd struct {
	app  *app
	kind domain.Kind
}

func (c *transactionCmd) Name() string { return string(c.kind) }
func (c *transactionCmd) Synopsis() string {
	return fmt.Sprintf("add, list and remove %s", c.kind.Plural())
}
func (c *transactionCmd) Usage() string {
	return fmt.Sprintf(`ft %[1]s <subcommand> [args]

Commands:
  add    - Record an %[1]s and apply it to the account balance.
  list   - List every %[1]s.
  remove - Remove an %[1]s and reverse its effect on the balance.
`, c.kind)
}

func (c *transactionCmd) SetFlags(f *flag.FlagSet) {}
func (c *transactionCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := c.app.newCommander(f, string(c.kind))
	commander.Register(&transactionAddCmd{app: c.app, kind: c.kind}, "")
	commander.Register(&transactionListCmd{app: c.app, kind: c.kind}, "")
	commander.Register(&transactionRemoveCmd{app: c.app, kind: c.kind}, "")
	return commander.Execute(ctx, args...)
}

type transactionAddCmd struct {
	app         *app
	kind        domain.Kind
	account     string
	amount      int64
	date        string
	description string
}

func (*transactionAddCmd) Name() string { return "add" }
func (c *transactionAddCmd) Synopsis() string {
	return fmt.Sprintf("record an %s", c.kind)
}
func (c *transactionAddCmd) Usage() string {
	return fmt.Sprintf(`ft %s add -account <name> -amount <minor units> -date <date> [-description <text>]
`, c.kind)
}

func (c *transactionAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Name of an existing account.")
	f.Int64Var(&c.amount, "amount", -1, "Non-negative amount in minor units (cents).")
	f.StringVar(&c.date, "date", "", "Date of the transaction, stored as given.")
	f.StringVar(&c.description, "description", "", "Optional free text.")
}

func (c *transactionAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amountSet := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == "amount" {
			amountSet = true
		}
	})
	switch {
	case c.account == "":
		return c.app.usage("-account is required")
	case !amountSet:
		return c.app.usage("-amount is required")
	case c.date == "":
		return c.app.usage("-date is required")
	}

	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	txn, err := ledger.PostTransaction(c.app.Context(ctx), c.kind, portssvc.PostTransactionInput{
		AccountName: c.account,
		Amount:      c.amount,
		Date:        c.date,
		Description: c.description,
	})
	if err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(fmt.Sprintf("Recorded %s %d: %s on **%s** (%s).\n",
		txn.Kind, txn.ID, utils.FormatMinorUnits(txn.Amount, c.app.currency()), mdCell(txn.AccountName), mdCell(txn.Date)))
	return subcommands.ExitSuccess
}

type transactionListCmd struct {
	app  *app
	kind domain.Kind
}

func (*transactionListCmd) Name() string { return "list" }
func (c *transactionListCmd) Synopsis() string {
	return fmt.Sprintf("list every %s", c.kind)
}
func (c *transactionListCmd) Usage() string {
	return fmt.Sprintf("ft %s list\n", c.kind)
}

func (c *transactionListCmd) SetFlags(f *flag.FlagSet) {}

func (c *transactionListCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	txns, err := ledger.ListTransactions(c.app.Context(ctx), c.kind)
	if err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(transactionsMarkdown(c.kind, txns, c.app.currency()))
	return subcommands.ExitSuccess
}

type transactionRemoveCmd struct {
	app  *app
	kind domain.Kind
	id   string
}

func (*transactionRemoveCmd) Name() string { return "remove" }
func (c *transactionRemoveCmd) Synopsis() string {
	return fmt.Sprintf("remove an %s and reverse its balance effect", c.kind)
}
func (c *transactionRemoveCmd) Usage() string {
	return fmt.Sprintf("ft %s remove -id <id>\n", c.kind)
}

func (c *transactionRemoveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the transaction to remove.")
}

func (c *transactionRemoveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, err := strconv.ParseInt(c.id, 10, 64)
	if err != nil {
		return c.app.usage("-id must be an integer, got %q", c.id)
	}

	ledger, err := c.app.Ledger(ctx)
	if err != nil {
		return c.app.fail(err)
	}
	if err := ledger.DeleteTransaction(c.app.Context(ctx), c.kind, id); err != nil {
		return c.app.fail(err)
	}

	c.app.printMarkdown(fmt.Sprintf("Removed %s %d.\n", c.kind, id))
	return subcommands.ExitSuccess
}
