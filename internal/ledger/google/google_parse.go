package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bahtbot/internal/core"
)

// parseRow converts one values row (as returned by the Sheets API) into a
// Transaction. Fields that fail to parse come back zero-valued instead of
// dropping the row, so callers see the true row count; a zero timestamp
// marks the row as malformed legacy data for the summary logic.
func parseRow(row []any) core.Transaction {
	cols := toStrings(row)
	var t core.Transaction

	if ts, err := time.ParseInLocation(core.TimestampLayout, col(cols, 0), time.Local); err == nil {
		t.Timestamp = ts
	} else if d, err := time.ParseInLocation(core.DateLayout, col(cols, 0), time.Local); err == nil {
		// Some legacy rows carry a bare date without a time of day.
		t.Timestamp = d
	}

	switch col(cols, 1) {
	case core.KeywordIncome:
		t.Type = core.Income
	case core.KeywordExpense:
		t.Type = core.Expense
	}

	t.Item = col(cols, 2)
	if v, ok := parseInt(col(cols, 3)); ok {
		t.Amount = v
	}
	if v, ok := parseInt(col(cols, 4)); ok {
		t.Balance = v
	}
	t.Category = col(cols, 5)
	return t
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func col(cols []string, idx int) string {
	if idx < 0 || idx >= len(cols) {
		return ""
	}
	return cols[idx]
}

// parseInt parses an integer cell value, tolerating the float rendering
// the Sheets API sometimes uses for plain numbers ("50" vs "50.0").
func parseInt(v any) (int64, bool) {
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return 0, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}
