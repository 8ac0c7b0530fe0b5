package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"bahtbot/internal/core"
	"bahtbot/internal/ledger"
)

func TestAppendReadRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	rows := []core.Transaction{
		{Timestamp: time.Now(), Type: core.Income, Item: "เงินเดือน", Amount: 10000, Balance: 10000, Category: "-"},
		{Timestamp: time.Now(), Type: core.Expense, Item: "ข้าว", Amount: 50, Balance: 9950, Category: "อาหาร"},
		{Timestamp: time.Now(), Type: core.Expense, Item: "กาแฟ", Amount: 40, Balance: 9910, Category: "-"},
	}
	for _, r := range rows {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i].Item != rows[i].Item || got[i].Balance != rows[i].Balance {
			t.Errorf("row %d out of order or mangled: %+v", i, got[i])
		}
	}
}

func TestReadAllIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Append(ctx, core.Transaction{Timestamp: time.Now(), Type: core.Income, Item: "x", Amount: 1, Balance: 1})

	first, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("reads differ: %+v vs %+v", first, second)
	}
}

func TestLastBalance(t *testing.T) {
	s := New()
	ctx := context.Background()

	b, err := s.LastBalance(ctx)
	if err != nil || b != 0 {
		t.Fatalf("empty ledger balance = %d err=%v, want 0", b, err)
	}

	_ = s.Append(ctx, core.Transaction{Timestamp: time.Now(), Type: core.Income, Item: "x", Amount: 700, Balance: 700})
	_ = s.Append(ctx, core.Transaction{Timestamp: time.Now(), Type: core.Expense, Item: "y", Amount: 100, Balance: 600})

	b, err = s.LastBalance(ctx)
	if err != nil || b != 600 {
		t.Fatalf("balance = %d err=%v, want 600", b, err)
	}
}

func TestAppendValidates(t *testing.T) {
	s := New()
	err := s.Append(context.Background(), core.Transaction{Type: "โอน", Item: "x", Amount: 1})
	if !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	rows, _ := s.ReadAll(context.Background())
	if len(rows) != 0 {
		t.Fatalf("invalid append must not persist, got %d rows", len(rows))
	}
}

func TestFailNext(t *testing.T) {
	s := New()
	s.FailNext = true
	if err := s.Append(context.Background(), core.Transaction{Timestamp: time.Now(), Type: core.Income, Item: "x", Amount: 1, Balance: 1}); !errors.Is(err, ledger.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	// Store recovers after the injected failure.
	if err := s.Append(context.Background(), core.Transaction{Timestamp: time.Now(), Type: core.Income, Item: "x", Amount: 1, Balance: 1}); err != nil {
		t.Fatalf("append after failure: %v", err)
	}
}
