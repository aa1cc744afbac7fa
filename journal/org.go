package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatTransactionOrg renders a TransactionRecord as an Org-mode block with
// the structured facts in a PROPERTIES drawer.
func FormatTransactionOrg(t TransactionRecord) string {
	verb := "Bought"
	if t.Action == ActionSell {
		verb = "Sold"
	}
	heading := fmt.Sprintf("** %s %d %s @ %s (%s)", verb, t.Quantity, t.Commodity, t.Location, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TX_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":LOCATION: %s\n", t.Location))
	b.WriteString(fmt.Sprintf(":COMMODITY: %s\n", t.Commodity))
	b.WriteString(fmt.Sprintf(":ACTION: %s\n", t.Action))
	b.WriteString(fmt.Sprintf(":QUANTITY: %d\n", t.Quantity))
	b.WriteString(fmt.Sprintf(":UNIT_PRICE: %s CR\n", humanize.Comma(int64(t.UnitPrice))))
	b.WriteString(fmt.Sprintf(":TOTAL: %s CR\n", humanize.Comma(int64(t.Total))))
	b.WriteString(":END:\n")

	return b.String()
}

// FormatTransactionsOrg renders multiple transactions separated by blank lines.
func FormatTransactionsOrg(txs []TransactionRecord) string {
	var b strings.Builder
	for i, t := range txs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTransactionOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
