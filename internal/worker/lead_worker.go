package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"showroom/internal/cache"
	"showroom/internal/core"
	"showroom/internal/sheets"
)

const (
	seenLeadsSize = 1000
	seenLeadsTTL  = 24 * time.Hour
)

// LeadWorker copies leads consumed from the queue into the sales sheet.
// Redelivered leads are skipped while their id is still remembered.
type LeadWorker struct {
	sink sheets.LeadWriter
	seen *cache.LRUCache[string]
}

func NewLeadWorker(sink sheets.LeadWriter) *LeadWorker {
	return &LeadWorker{
		sink: sink,
		seen: cache.NewLRUCache[string](seenLeadsSize, seenLeadsTTL),
	}
}

// Seen exposes the dedupe cache so it can be swept by a cache.Manager.
func (w *LeadWorker) Seen() *cache.LRUCache[string] {
	return w.seen
}

// HandleLead has the amqp.LeadHandler signature. A returned error requeues
// the message.
func (w *LeadWorker) HandleLead(ctx context.Context, lead core.Lead) error {
	if ref, ok := w.seen.Get(lead.ID); ok {
		slog.InfoContext(ctx, "Lead already recorded, skipping",
			"lead_id", lead.ID,
			"sheets_ref", ref)
		return nil
	}

	slog.InfoContext(ctx, "Processing lead",
		"lead_id", lead.ID,
		"kind", lead.Kind)

	ref, err := w.sink.AppendLead(ctx, lead)
	if err != nil {
		return fmt.Errorf("append lead to sheets: %w", err)
	}
	w.seen.Set(lead.ID, ref)

	slog.InfoContext(ctx, "Successfully recorded lead",
		"lead_id", lead.ID,
		"kind", lead.Kind,
		"sheets_ref", ref,
		"vehicle", lead.Vehicle)
	return nil
}
