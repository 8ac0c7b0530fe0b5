package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bahtbot/internal/ledger/memory"
	"bahtbot/internal/services"
)

type fakeNotifier struct {
	replies   []string
	pushes    []string
	pushTo    []string
	failReply bool
	failPush  bool
}

func (f *fakeNotifier) Reply(_ context.Context, _, text string) error {
	if f.failReply {
		return errors.New("delivery failed")
	}
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeNotifier) Push(_ context.Context, to, text string) error {
	if f.failPush {
		return errors.New("delivery failed")
	}
	f.pushTo = append(f.pushTo, to)
	f.pushes = append(f.pushes, text)
	return nil
}

func newTestHandler(store *memory.Store, notifier Notifier, recipient string) *Handler {
	svc := services.NewTransactionService(store, nil, 500, nil)
	return NewHandler(svc, notifier, recipient, nil)
}

func TestMultiLineMessage(t *testing.T) {
	store := memory.New()
	notifier := &fakeNotifier{}
	h := newTestHandler(store, notifier, "")

	reply, _ := h.ProcessText(context.Background(), "รับ เงินเดือน 10000\nจ่าย ข้าว อร่อยมาก\nจ่าย กาแฟ 40")

	sections := strings.Split(reply, "\n\n")
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3:\n%s", len(sections), reply)
	}
	// Sections come back in original line order.
	if !strings.Contains(sections[0], "เงินเดือน") {
		t.Errorf("section 0 should cover the deposit: %q", sections[0])
	}
	if !strings.Contains(sections[1], "จำนวนเงินไม่ถูกต้อง") {
		t.Errorf("section 1 should report the bad amount: %q", sections[1])
	}
	if !strings.Contains(sections[2], "กาแฟ") {
		t.Errorf("section 2 should cover the coffee: %q", sections[2])
	}

	rows, _ := store.ReadAll(context.Background())
	if len(rows) != 2 {
		t.Fatalf("invalid line must append nothing: got %d rows, want 2", len(rows))
	}
	// The second valid line saw the first line's committed balance.
	if rows[1].Balance != 10000-40 {
		t.Errorf("second row balance = %d, want 9960", rows[1].Balance)
	}
}

func TestBalanceQuery(t *testing.T) {
	store := memory.New()
	h := newTestHandler(store, &fakeNotifier{}, "")
	ctx := context.Background()

	reply, _ := h.ProcessText(ctx, "ยอดคงเหลือ")
	if !strings.Contains(reply, "0 บาท") {
		t.Errorf("empty ledger balance reply: %q", reply)
	}

	_, _ = h.ProcessText(ctx, "รับ เงินเดือน 10000")
	reply, _ = h.ProcessText(ctx, "ยอดคงเหลือ")
	if !strings.Contains(reply, "10000 บาท") {
		t.Errorf("balance reply after deposit: %q", reply)
	}
}

func TestSummaryQuery(t *testing.T) {
	store := memory.New()
	h := newTestHandler(store, &fakeNotifier{}, "")
	ctx := context.Background()

	_, _ = h.ProcessText(ctx, "รับ เงินเดือน 1000\nจ่าย ข้าว 300")
	reply, _ := h.ProcessText(ctx, "สรุป")
	if !strings.Contains(reply, "รับ: 1000 บาท") || !strings.Contains(reply, "จ่าย: 300 บาท") {
		t.Errorf("summary reply: %q", reply)
	}
	if !strings.Contains(reply, "คงเหลือ: 700 บาท") {
		t.Errorf("summary reply balance: %q", reply)
	}
}

func TestBadFormatFallsThroughToHelp(t *testing.T) {
	h := newTestHandler(memory.New(), &fakeNotifier{}, "")
	reply, _ := h.ProcessText(context.Background(), "สวัสดี")
	if !strings.Contains(reply, "รูปแบบไม่ถูกต้อง") || !strings.Contains(reply, "ตัวอย่าง") {
		t.Errorf("bad format reply should echo help text: %q", reply)
	}
	if !strings.Contains(reply, "สวัสดี") {
		t.Errorf("bad format reply should echo the original line: %q", reply)
	}
}

func TestLowBalancePushAfterReply(t *testing.T) {
	store := memory.New()
	notifier := &fakeNotifier{}
	h := newTestHandler(store, notifier, "U1234")
	ctx := context.Background()

	h.HandleTextMessage(ctx, "reply-token", "รับ ตั้งต้น 1000")
	h.HandleTextMessage(ctx, "reply-token-2", "จ่าย ของใช้ 600")

	if len(notifier.replies) != 2 {
		t.Fatalf("replies = %d, want 2", len(notifier.replies))
	}
	if len(notifier.pushes) != 1 {
		t.Fatalf("pushes = %d, want 1", len(notifier.pushes))
	}
	if notifier.pushTo[0] != "U1234" {
		t.Errorf("push recipient = %q, want U1234", notifier.pushTo[0])
	}
	if !strings.Contains(notifier.pushes[0], "400") {
		t.Errorf("low balance push should name the balance: %q", notifier.pushes[0])
	}
}

func TestNoPushWithoutRecipient(t *testing.T) {
	notifier := &fakeNotifier{}
	h := newTestHandler(memory.New(), notifier, "")

	h.HandleTextMessage(context.Background(), "tok", "จ่าย ของใช้ 600")
	if len(notifier.pushes) != 0 {
		t.Fatalf("pushes = %d, want 0 when no recipient configured", len(notifier.pushes))
	}
}

func TestPushFailureDoesNotPanic(t *testing.T) {
	notifier := &fakeNotifier{failPush: true}
	h := newTestHandler(memory.New(), notifier, "U1234")
	// The reply was already sent; a failed push is only logged.
	h.HandleTextMessage(context.Background(), "tok", "จ่าย ของใช้ 600")
	if len(notifier.replies) != 1 {
		t.Fatalf("reply must still be delivered, got %d", len(notifier.replies))
	}
}

func TestStoreFailureReportsGenericText(t *testing.T) {
	store := memory.New()
	h := newTestHandler(store, &fakeNotifier{}, "")

	store.FailNext = true
	reply, _ := h.ProcessText(context.Background(), "จ่าย ข้าว 50")
	if reply != StoreFailureText {
		t.Errorf("store failure reply = %q, want generic failure text", reply)
	}
}
