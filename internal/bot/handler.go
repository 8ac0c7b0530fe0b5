package bot

import (
	"context"
	"strings"
	"time"

	"bahtbot/internal/core"
	applog "bahtbot/internal/log"
	"bahtbot/internal/services"
)

// Notifier sends messages back to the messaging platform. Satisfied by
// the LINE client and by test fakes.
type Notifier interface {
	// Reply sends one message to the inbound conversation; the token is
	// single-use.
	Reply(ctx context.Context, replyToken, text string) error
	// Push sends a message to a recipient outside any conversation.
	Push(ctx context.Context, to, text string) error
}

// Handler turns one inbound text message into ledger updates and a reply.
type Handler struct {
	svc       *services.TransactionService
	notifier  Notifier
	recipient string // push recipient for low-balance alerts; empty disables pushes
	logger    *applog.Logger
	now       func() time.Time
}

func NewHandler(svc *services.TransactionService, notifier Notifier, recipient string, logger *applog.Logger) *Handler {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Handler{
		svc:       svc,
		notifier:  notifier,
		recipient: recipient,
		logger:    logger.WithComponent(applog.ComponentBot),
		now:       time.Now,
	}
}

// HandleTextMessage processes an inbound message end to end: parse every
// line, apply transactions in order, reply once, then push any
// low-balance alerts. Delivery failures are logged, never propagated;
// the reply is sent before any push so a failed alert cannot block it.
func (h *Handler) HandleTextMessage(ctx context.Context, replyToken, text string) {
	reply, lowBalances := h.ProcessText(ctx, text)
	if reply == "" {
		return
	}

	if err := h.notifier.Reply(ctx, replyToken, reply); err != nil {
		h.logger.ErrorContext(ctx, "Failed to send reply",
			applog.FieldOperation, applog.OpReply,
			applog.FieldError, err)
	}

	if h.recipient == "" {
		return
	}
	for _, balance := range lowBalances {
		if err := h.notifier.Push(ctx, h.recipient, LowBalanceText(balance, h.svc.Threshold())); err != nil {
			h.logger.ErrorContext(ctx, "Failed to push low balance alert",
				applog.FieldOperation, applog.OpPush,
				applog.FieldRecipient, h.recipient,
				applog.FieldError, err)
		}
	}
}

// ProcessText parses and applies each line of the message independently,
// in textual order, and returns the combined reply plus the balances that
// triggered a low-balance alert. Transaction lines are applied
// sequentially, so each sees the previous line's committed balance.
func (h *Handler) ProcessText(ctx context.Context, text string) (string, []int64) {
	var sections []string
	var lowBalances []int64

	for _, line := range core.SplitLines(text) {
		intent := core.ParseLine(line)

		var section string
		switch intent.Kind {
		case core.KindBalanceQuery:
			balance, err := h.svc.Balance(ctx)
			if err != nil {
				h.logger.ErrorContext(ctx, "Balance read failed", applog.FieldError, err)
				section = StoreFailureText
				break
			}
			section = BalanceText(balance)

		case core.KindSummaryQuery:
			today := h.now()
			summary, err := h.svc.Summary(ctx, today, today)
			if err != nil {
				h.logger.ErrorContext(ctx, "Summary read failed", applog.FieldError, err)
				section = StoreFailureText
				break
			}
			section = DailySummaryText(summary)

		case core.KindInvalid:
			if intent.Reason == core.ReasonBadAmount {
				section = BadAmountText(intent.Line)
			} else {
				section = BadFormatText(intent.Line)
			}

		default:
			res, err := h.svc.Record(ctx, intent)
			if err != nil {
				h.logger.ErrorContext(ctx, "Transaction failed", applog.FieldError, err)
				section = StoreFailureText
				break
			}
			section = RecordedText(res.Transaction)
			if res.LowBalance {
				lowBalances = append(lowBalances, res.Transaction.Balance)
			}
		}

		sections = append(sections, section)
	}

	return strings.Join(sections, "\n\n"), lowBalances
}
