// Package export writes ingested transactions to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shraddhagadale/SpendSense/internal/pipeline"
)

var header = []string{"date", "description", "amount", "category", "merchant"}

// WriteTransactions writes the transactions as CSV with a header row.
// Credits are written with a negative amount so the file round-trips the
// statement's own sign convention.
func WriteTransactions(w io.Writer, txns []*pipeline.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, tx := range txns {
		amount := tx.Amount
		if tx.Credit {
			amount = -amount
		}
		record := []string{
			tx.PostedDate.Format("2006-01-02"),
			tx.Description,
			strconv.FormatFloat(amount, 'f', 2, 64),
			tx.Category,
			tx.Merchant,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}
