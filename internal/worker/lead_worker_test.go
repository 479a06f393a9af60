package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"showroom/internal/core"
	"showroom/internal/sheets/memory"
)

type failingSink struct {
	calls int
}

func (f *failingSink) AppendLead(context.Context, core.Lead) (string, error) {
	f.calls++
	return "", errors.New("quota exceeded")
}

func testLead() core.Lead {
	l := core.NewLead(core.LeadTestDrive, "visitor-1", time.Now())
	l.Name = "Mia Toretto"
	l.Email = "mia@example.com"
	l.Vehicle = "Ferrari SF90 Stradale"
	return l
}

func TestHandleLead_RecordsOnce(t *testing.T) {
	sink := memory.New(nil)
	w := NewLeadWorker(sink)
	lead := testLead()

	for i := 0; i < 3; i++ {
		if err := w.HandleLead(context.Background(), lead); err != nil {
			t.Fatalf("delivery %d: %v", i, err)
		}
	}
	if got := len(sink.Leads()); got != 1 {
		t.Fatalf("recorded %d leads, want 1", got)
	}

	other := testLead()
	if err := w.HandleLead(context.Background(), other); err != nil {
		t.Fatal(err)
	}
	if got := len(sink.Leads()); got != 2 {
		t.Fatalf("recorded %d leads, want 2", got)
	}
}

func TestHandleLead_SinkFailureIsRetried(t *testing.T) {
	sink := &failingSink{}
	w := NewLeadWorker(sink)
	lead := testLead()

	if err := w.HandleLead(context.Background(), lead); err == nil {
		t.Fatal("expected error")
	}
	if err := w.HandleLead(context.Background(), lead); err == nil {
		t.Fatal("expected error on redelivery")
	}
	if sink.calls != 2 {
		t.Fatalf("sink called %d times, want 2", sink.calls)
	}
	if w.Seen().Size() != 0 {
		t.Fatal("failed lead must not be remembered")
	}
}
