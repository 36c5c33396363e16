package main

import (
	"fmt"
	"strings"

	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	"github.com/Arshia-r-m/Financial-tracker/internal/utils"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", " ")

func mdCell(s string) string {
	return cellEscaper.Replace(s)
}

// accountsMarkdown renders accounts as a markdown table.
func accountsMarkdown(accounts []domain.Account, currency string) string {
	if len(accounts) == 0 {
		return "No accounts.\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Name | Balance |\n")
	b.WriteString("|---:|:-----|--------:|\n")
	var total int64
	for _, acc := range accounts {
		total += acc.Balance
		fmt.Fprintf(&b, "| %d | %s | %s |\n", acc.ID, mdCell(acc.Name), utils.FormatMinorUnits(acc.Balance, currency))
	}
	fmt.Fprintf(&b, "| | **Total** | **%s** |\n", utils.FormatMinorUnits(total, currency))
	return b.String()
}

// transactionsMarkdown renders transactions of one kind as a markdown table.
func transactionsMarkdown(kind domain.Kind, txns []domain.Transaction, currency string) string {
	if len(txns) == 0 {
		return fmt.Sprintf("No %s.\n", kind.Plural())
	}
	var b strings.Builder
	b.WriteString("| ID | Account | Amount | Date | Description |\n")
	b.WriteString("|---:|:--------|-------:|:-----|:------------|\n")
	for _, t := range txns {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			t.ID, mdCell(t.AccountName), utils.FormatMinorUnits(t.Amount, currency), mdCell(t.Date), mdCell(t.Description))
	}
	return b.String()
}
