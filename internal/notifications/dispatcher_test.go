package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	notices []PriceChange
	failFor map[string]error
}

func (f *fakeMailer) SendPriceChange(ctx context.Context, recipient string, notice PriceChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[recipient]; ok {
		return err
	}
	f.sent = append(f.sent, recipient)
	f.notices = append(f.notices, notice)
	return nil
}

func newTestDispatcher(t *testing.T, mailer Mailer) *Dispatcher {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test"})
	d, err := NewDispatcher(DispatcherParams{Mailer: mailer, Logger: logg})
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return d
}

func testNotice() PriceChange {
	return PriceChange{
		PropertyName: "Sunny Loft",
		Address:      "12 Harbor St",
		OldPrice:     decimal.NewFromInt(1200),
		NewPrice:     decimal.NewFromInt(1100),
		Currency:     "USD",
	}
}

func TestDispatchPriceChangeSendsToEveryRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	d := newTestDispatcher(t, mailer)

	recipients := []string{"a@example.com", "b@example.com", "c@example.com"}
	if err := d.DispatchPriceChange(context.Background(), recipients, testNotice()); err != nil {
		t.Fatalf("DispatchPriceChange: %v", err)
	}

	if len(mailer.sent) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(mailer.sent))
	}
	for _, notice := range mailer.notices {
		if notice.OldPrice.String() != "1200" || notice.NewPrice.String() != "1100" {
			t.Fatalf("unexpected notice prices %s -> %s", notice.OldPrice, notice.NewPrice)
		}
	}
}

func TestDispatchPriceChangeToleratesPartialFailure(t *testing.T) {
	mailer := &fakeMailer{
		failFor: map[string]error{"b@example.com": errors.New("provider rejected")},
	}
	d := newTestDispatcher(t, mailer)

	recipients := []string{"a@example.com", "b@example.com", "c@example.com"}
	err := d.DispatchPriceChange(context.Background(), recipients, testNotice())
	if err == nil {
		t.Fatal("expected combined error for failed send")
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 successful sends, got %d", len(mailer.sent))
	}
	for _, recipient := range mailer.sent {
		if recipient == "b@example.com" {
			t.Fatal("failed recipient recorded as sent")
		}
	}
}

func TestDispatchPriceChangeNoRecipients(t *testing.T) {
	mailer := &fakeMailer{}
	d := newTestDispatcher(t, mailer)

	if err := d.DispatchPriceChange(context.Background(), nil, testNotice()); err != nil {
		t.Fatalf("DispatchPriceChange: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no sends, got %d", len(mailer.sent))
	}
}

func TestNewDispatcherValidation(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})

	if _, err := NewDispatcher(DispatcherParams{Logger: logg}); err == nil {
		t.Fatal("expected error for missing mailer")
	}
	if _, err := NewDispatcher(DispatcherParams{Mailer: &fakeMailer{}}); err == nil {
		t.Fatal("expected error for missing logger")
	}
}
