package services

import (
	"context"
	"errors"
	"testing"

	"bahtbot/internal/core"
	"bahtbot/internal/ledger"
	"bahtbot/internal/ledger/memory"
)

type fakePublisher struct {
	recorded    []core.Transaction
	lowBalances []int64
	fail        bool
}

func (f *fakePublisher) PublishTransactionRecorded(_ context.Context, t core.Transaction) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.recorded = append(f.recorded, t)
	return nil
}

func (f *fakePublisher) PublishLowBalance(_ context.Context, balance, _ int64) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.lowBalances = append(f.lowBalances, balance)
	return nil
}

func deposit(item string, amount int64) core.Intent {
	return core.Intent{Kind: core.KindDeposit, Item: item, Amount: amount, Category: core.DefaultCategory}
}

func withdrawal(item string, amount int64) core.Intent {
	return core.Intent{Kind: core.KindWithdrawal, Item: item, Amount: amount, Category: core.DefaultCategory}
}

func TestRecordSignedSumProperty(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, nil, 500, nil)
	ctx := context.Background()

	intents := []core.Intent{
		deposit("เงินเดือน", 10000),
		withdrawal("ข้าว", 50),
		withdrawal("ค่าเช่า", 4000),
		deposit("โบนัส", 1500),
		withdrawal("กาแฟ", 40),
	}
	var want int64
	for _, in := range intents {
		res, err := svc.Record(ctx, in)
		if err != nil {
			t.Fatalf("record %v: %v", in, err)
		}
		if in.Kind == core.KindDeposit {
			want += in.Amount
		} else {
			want -= in.Amount
		}
		if res.Transaction.Balance != want {
			t.Fatalf("balance after %q = %d, want %d", in.Item, res.Transaction.Balance, want)
		}
	}

	b, err := svc.Balance(ctx)
	if err != nil || b != want {
		t.Fatalf("final balance = %d err=%v, want %d", b, err, want)
	}
}

func TestRecordAllowsNegativeBalance(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil, 500, nil)
	res, err := svc.Record(context.Background(), withdrawal("ค่าเช่า", 4000))
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.Transaction.Balance != -4000 {
		t.Fatalf("balance = %d, want -4000 (no floor at zero)", res.Transaction.Balance)
	}
	if !res.LowBalance {
		t.Error("negative balance must flag low balance")
	}
}

func TestRecordLowBalanceScenario(t *testing.T) {
	store := memory.New()
	events := &fakePublisher{}
	svc := NewTransactionService(store, events, 500, nil)
	ctx := context.Background()

	if _, err := svc.Record(ctx, deposit("ตั้งต้น", 1000)); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	res, err := svc.Record(ctx, withdrawal("ของใช้", 600))
	if err != nil {
		t.Fatalf("withdrawal: %v", err)
	}
	if res.Transaction.Balance != 400 {
		t.Errorf("balance = %d, want 400", res.Transaction.Balance)
	}
	if !res.LowBalance {
		t.Error("balance 400 under threshold 500 must flag low balance")
	}

	res, err = svc.Record(ctx, deposit("รายได้เสริม", 200))
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if res.Transaction.Balance != 600 {
		t.Errorf("balance = %d, want 600", res.Transaction.Balance)
	}
	if res.LowBalance {
		t.Error("balance 600 over threshold must not flag low balance")
	}

	if len(events.lowBalances) != 1 || events.lowBalances[0] != 400 {
		t.Errorf("low balance events = %v, want exactly [400]", events.lowBalances)
	}
	if len(events.recorded) != 3 {
		t.Errorf("recorded events = %d, want 3", len(events.recorded))
	}
}

func TestRecordRepeatedLowBalanceNotifiesEachTime(t *testing.T) {
	events := &fakePublisher{}
	svc := NewTransactionService(memory.New(), events, 500, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := svc.Record(ctx, withdrawal("ข้าว", 50))
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if !res.LowBalance {
			t.Fatalf("record %d should flag low balance", i)
		}
	}
	if len(events.lowBalances) != 3 {
		t.Errorf("low balance events = %d, want 3 (no de-duplication)", len(events.lowBalances))
	}
}

func TestRecordStoreFailureCommitsNothing(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, nil, 500, nil)
	ctx := context.Background()

	store.FailNext = true
	_, err := svc.Record(ctx, deposit("เงินเดือน", 1000))
	if !errors.Is(err, ledger.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	rows, _ := store.ReadAll(ctx)
	if len(rows) != 0 {
		t.Fatalf("failed record must leave no rows, got %d", len(rows))
	}
}

func TestRecordPublishFailureDoesNotFailTransaction(t *testing.T) {
	events := &fakePublisher{fail: true}
	svc := NewTransactionService(memory.New(), events, 500, nil)

	res, err := svc.Record(context.Background(), withdrawal("ข้าว", 50))
	if err != nil {
		t.Fatalf("record must survive publish failure, got %v", err)
	}
	if res.Transaction.Balance != -50 {
		t.Errorf("balance = %d, want -50", res.Transaction.Balance)
	}
}

func TestRecordRejectsNonTransactionIntent(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil, 500, nil)
	if _, err := svc.Record(context.Background(), core.Intent{Kind: core.KindBalanceQuery}); err == nil {
		t.Fatal("expected error for non-transaction intent")
	}
}
