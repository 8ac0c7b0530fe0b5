package core

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 30, 0, 0, time.UTC)
}

func TestSummarizeDaily(t *testing.T) {
	today := day(2024, time.March, 15)
	rows := []Transaction{
		{Timestamp: today, Type: Income, Item: "เงินเดือน", Amount: 1000, Balance: 1000},
		{Timestamp: today, Type: Expense, Item: "ข้าว", Amount: 300, Balance: 700},
	}

	s := Summarize(rows, today, today)
	if s.Income != 1000 {
		t.Errorf("income = %d, want 1000", s.Income)
	}
	if s.Expense != 300 {
		t.Errorf("expense = %d, want 300", s.Expense)
	}
	if s.Balance != 700 {
		t.Errorf("balance = %d, want 700", s.Balance)
	}
}

func TestSummarizeRangeIsInclusiveByDate(t *testing.T) {
	rows := []Transaction{
		{Timestamp: day(2024, time.March, 9), Type: Expense, Amount: 10, Balance: 990},
		{Timestamp: time.Date(2024, time.March, 10, 0, 0, 1, 0, time.UTC), Type: Expense, Amount: 20, Balance: 970},
		{Timestamp: time.Date(2024, time.March, 16, 23, 59, 59, 0, time.UTC), Type: Expense, Amount: 30, Balance: 940},
		{Timestamp: day(2024, time.March, 17), Type: Expense, Amount: 40, Balance: 900},
	}

	s := Summarize(rows, day(2024, time.March, 10), day(2024, time.March, 16))
	if s.Expense != 50 {
		t.Errorf("expense = %d, want 50 (boundary days included, outside days not)", s.Expense)
	}
	// Balance comes from the newest row even though it is outside the range.
	if s.Balance != 900 {
		t.Errorf("balance = %d, want 900", s.Balance)
	}
}

func TestSummarizeSkipsMalformedDates(t *testing.T) {
	today := day(2024, time.March, 15)
	rows := []Transaction{
		{Timestamp: time.Time{}, Type: Income, Amount: 9999, Balance: 9999},
		{Timestamp: today, Type: Income, Amount: 100, Balance: 10099},
	}

	s := Summarize(rows, today, today)
	if s.Income != 100 {
		t.Errorf("income = %d, want 100 (zero-timestamp row excluded)", s.Income)
	}
	if s.Balance != 10099 {
		t.Errorf("balance = %d, want 10099", s.Balance)
	}
}

func TestSummarizeEmptyLedger(t *testing.T) {
	s := Summarize(nil, day(2024, time.March, 15), day(2024, time.March, 15))
	if s.Income != 0 || s.Expense != 0 || s.Balance != 0 {
		t.Fatalf("empty ledger summary should be all zero, got %+v", s)
	}
}
