package core

import (
	"strconv"
	"strings"
)

type (
	// IntentKind classifies what one input line asks the bot to do.
	IntentKind string

	// InvalidReason explains why a line could not be parsed. The reason is
	// always echoed back to the sender so input can be corrected.
	InvalidReason string

	// Intent is the parsed form of a single input line. It is transient:
	// only successfully processed Deposit/Withdrawal intents ever reach
	// the ledger, as Transaction rows.
	Intent struct {
		Kind     IntentKind
		Item     string
		Amount   int64
		Category string

		// Reason and Line are set only for KindInvalid.
		Reason InvalidReason
		Line   string
	}
)

const (
	KindDeposit      IntentKind = "deposit"
	KindWithdrawal   IntentKind = "withdrawal"
	KindBalanceQuery IntentKind = "balance_query"
	KindSummaryQuery IntentKind = "summary_query"
	KindInvalid      IntentKind = "invalid"
)

const (
	ReasonBadAmount InvalidReason = "amount not a number"
	ReasonBadFormat InvalidReason = "bad format"
)

// SplitLines splits an inbound message into its individual command lines.
// Blank lines are dropped; each remaining line is parsed independently.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ParseLine turns one line of free text into exactly one Intent.
//
// Recognized forms, tokens separated by runs of whitespace:
//
//	รับ <item> <amount> [<category>]   -> deposit
//	จ่าย <item> <amount> [<category>]  -> withdrawal
//	ยอดคงเหลือ                          -> balance query
//	สรุป                                -> summary query
//
// Item and category are free text and never validated semantically; they
// may contain digits or even keyword strings. A missing category gets the
// placeholder value. Tokens past the fourth are ignored.
func ParseLine(line string) Intent {
	switch strings.TrimSpace(line) {
	case KeywordBalance:
		return Intent{Kind: KindBalanceQuery}
	case KeywordSummary:
		return Intent{Kind: KindSummaryQuery}
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Intent{Kind: KindInvalid, Reason: ReasonBadFormat, Line: line}
	}

	keyword, item, amountTok := fields[0], fields[1], fields[2]

	// The amount is checked before the keyword so that a malformed number
	// is reported as such even alongside an unknown keyword.
	amount, err := strconv.ParseInt(amountTok, 10, 64)
	if err != nil || amount < 0 {
		return Intent{Kind: KindInvalid, Reason: ReasonBadAmount, Line: line}
	}

	category := DefaultCategory
	if len(fields) >= 4 {
		category = fields[3]
	}

	switch keyword {
	case KeywordIncome:
		return Intent{Kind: KindDeposit, Item: item, Amount: amount, Category: category}
	case KeywordExpense:
		return Intent{Kind: KindWithdrawal, Item: item, Amount: amount, Category: category}
	}
	return Intent{Kind: KindInvalid, Reason: ReasonBadFormat, Line: line}
}

// TransactionType maps a deposit/withdrawal intent to its ledger type.
// Other kinds have no transaction type.
func (i Intent) TransactionType() (TransactionType, bool) {
	switch i.Kind {
	case KindDeposit:
		return Income, true
	case KindWithdrawal:
		return Expense, true
	}
	return "", false
}
