package core

import "time"

// Summary aggregates ledger rows over an inclusive date range.
// Balance is always the running balance of the newest row, independent
// of the range.
type Summary struct {
	Start   time.Time
	End     time.Time
	Income  int64
	Expense int64
	Balance int64
}

// Summarize computes income and expense totals for rows dated within
// [start, end], comparing dates only (times of day are ignored). Rows with
// a zero timestamp are malformed legacy data and are silently excluded
// from the sums; they still count for the final-row balance.
func Summarize(rows []Transaction, start, end time.Time) Summary {
	s := Summary{Start: dateOnly(start), End: dateOnly(end)}
	for _, row := range rows {
		if row.Timestamp.IsZero() {
			continue
		}
		d := dateOnly(row.Timestamp)
		if d.Before(s.Start) || d.After(s.End) {
			continue
		}
		switch row.Type {
		case Income:
			s.Income += row.Amount
		case Expense:
			s.Expense += row.Amount
		}
	}
	if len(rows) > 0 {
		s.Balance = rows[len(rows)-1].Balance
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
