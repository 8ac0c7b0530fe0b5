package core

import (
	"errors"
	"strings"
	"time"
)

// Thai command keywords understood by the bot. They double as the wire
// labels written to the type column of the ledger.
const (
	KeywordIncome  = "รับ"
	KeywordExpense = "จ่าย"
	KeywordBalance = "ยอดคงเหลือ"
	KeywordSummary = "สรุป"
)

// DefaultCategory is the placeholder stored when a transaction line
// carries no category token.
const DefaultCategory = "-"

// Ledger timestamp layouts. The sheet stores full timestamps; summaries
// compare on the date part only.
const (
	TimestampLayout = "02/01/2006 15:04:05"
	DateLayout      = "02/01/2006"
)

type (
	// TransactionType is the Income/Expense enum, stored under its Thai label.
	TransactionType string

	// Transaction is one ledger row. Balance is the running balance after
	// this transaction was applied; rows are append-only and immutable.
	Transaction struct {
		Timestamp time.Time
		Type      TransactionType
		Item      string
		Amount    int64
		Balance   int64
		Category  string
	}
)

const (
	Income  TransactionType = TransactionType(KeywordIncome)
	Expense TransactionType = TransactionType(KeywordExpense)
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyItem     = errors.New("empty item")
)

// Signed returns the amount with the sign implied by the transaction type:
// positive for income, negative for expense.
func (t Transaction) Signed() int64 {
	if t.Type == Expense {
		return -t.Amount
	}
	return t.Amount
}

func (t Transaction) Validate() error {
	switch t.Type {
	case Income, Expense:
	default:
		return ErrInvalidType
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Item) == "" {
		return ErrEmptyItem
	}
	return nil
}

// CategoryOrDefault returns the category, or the placeholder when the
// field was left empty.
func (t Transaction) CategoryOrDefault() string {
	if strings.TrimSpace(t.Category) == "" {
		return DefaultCategory
	}
	return t.Category
}
