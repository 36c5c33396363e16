// Command ft is a personal finance ledger: accounts, expenses and incomes whose
// balances are kept consistent by every write.
package main

import (
	"context"
	"flag"
	"os"
)

func main() {
	os.Exit(run(context.Background(), flag.CommandLine, os.Args[1:], newApp(os.Stdout, os.Stderr)))
}
