package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bahtbot/internal/core"
	"bahtbot/internal/ledger"
	applog "bahtbot/internal/log"
)

// EventPublisher is the optional outbound event port, satisfied by the
// AMQP client. Publish failures never fail a transaction.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, t core.Transaction) error
	PublishLowBalance(ctx context.Context, balance, threshold int64) error
}

// RecordResult is the outcome of one committed transaction line.
type RecordResult struct {
	Transaction core.Transaction
	// LowBalance is set whenever the resulting balance is below the
	// threshold. Every qualifying transaction sets it again; repeated
	// low-balance states are not de-duplicated.
	LowBalance bool
}

// TransactionService validates intents against the current balance and
// appends the resulting rows to the ledger.
type TransactionService struct {
	// Guards the read-balance/append pair. The backing stores offer no
	// transactional guarantee, so concurrent webhook handlers would
	// otherwise race on the shared running balance.
	mu sync.Mutex

	store     ledger.Store
	events    EventPublisher // may be nil
	threshold int64
	logger    *applog.Logger
	now       func() time.Time
}

func NewTransactionService(store ledger.Store, events EventPublisher, threshold int64, logger *applog.Logger) *TransactionService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &TransactionService{
		store:     store,
		events:    events,
		threshold: threshold,
		logger:    logger.WithComponent(applog.ComponentLedger),
		now:       time.Now,
	}
}

// Record applies one deposit or withdrawal intent: read the current
// balance, compute the new one, append the row, return the committed
// result. Withdrawals may drive the balance negative. The caller must
// not promise success to the user before this returns nil.
func (s *TransactionService) Record(ctx context.Context, intent core.Intent) (RecordResult, error) {
	txType, ok := intent.TransactionType()
	if !ok {
		return RecordResult{}, fmt.Errorf("intent kind %q is not a transaction", intent.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.store.LastBalance(ctx)
	if err != nil {
		return RecordResult{}, fmt.Errorf("read balance: %w", err)
	}

	t := core.Transaction{
		Timestamp: s.now(),
		Type:      txType,
		Item:      intent.Item,
		Amount:    intent.Amount,
		Category:  intent.Category,
	}
	t.Balance = balance + t.Signed()

	// Append is not idempotent; a failure here is reported once and
	// never retried, to avoid duplicating rows.
	if err := s.store.Append(ctx, t); err != nil {
		return RecordResult{}, fmt.Errorf("append row: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction recorded",
		applog.FieldTxType, string(t.Type),
		applog.FieldItem, t.Item,
		applog.FieldAmount, t.Amount,
		applog.FieldBalance, t.Balance)

	if s.events != nil {
		if err := s.events.PublishTransactionRecorded(ctx, t); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish transaction event", applog.FieldError, err)
		}
	}

	result := RecordResult{Transaction: t, LowBalance: t.Balance < s.threshold}
	if result.LowBalance {
		s.logger.WarnContext(ctx, "Balance below threshold",
			applog.FieldBalance, t.Balance,
			"threshold", s.threshold)
		if s.events != nil {
			if err := s.events.PublishLowBalance(ctx, t.Balance, s.threshold); err != nil {
				s.logger.WarnContext(ctx, "Failed to publish low balance event", applog.FieldError, err)
			}
		}
	}
	return result, nil
}

// Balance returns the running balance of the newest row, 0 for an empty
// ledger.
func (s *TransactionService) Balance(ctx context.Context) (int64, error) {
	return s.store.LastBalance(ctx)
}

// Summary aggregates the full row set over [start, end].
func (s *TransactionService) Summary(ctx context.Context, start, end time.Time) (core.Summary, error) {
	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("read rows: %w", err)
	}
	return core.Summarize(rows, start, end), nil
}

// Threshold returns the configured low-balance threshold.
func (s *TransactionService) Threshold() int64 {
	return s.threshold
}
