// Package backup serializes the full ledger row set to timestamped CSV
// files. Backups are copies: the ledger itself is never touched, and no
// retention or rotation is applied.
package backup

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bahtbot/internal/core"
)

var header = []string{"timestamp", "type", "item", "amount", "balance", "category"}

// Write dumps the rows to <dir>/Expense_Backup_<YYYYMMDD>_<HHMMSS>.csv
// and returns the file name. The header row is always written, matching
// the sheet layout.
func Write(dir string, rows []core.Transaction, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("Expense_Backup_%s.csv", at.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		ts := ""
		if !row.Timestamp.IsZero() {
			ts = row.Timestamp.Format(core.TimestampLayout)
		}
		record := []string{
			ts,
			string(row.Type),
			row.Item,
			strconv.FormatInt(row.Amount, 10),
			strconv.FormatInt(row.Balance, 10),
			row.CategoryOrDefault(),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush backup: %w", err)
	}
	return name, nil
}
