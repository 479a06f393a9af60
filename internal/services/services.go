// Package services orchestrates the showroom features over the repositories,
// the catalog and the lead queue. State is saved first; lead publishing is
// best effort and never fails a request.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"showroom/internal/core"
)

var (
	// ErrInvalidInput wraps every error caused by what the visitor sent.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound wraps lookups of things that do not exist.
	ErrNotFound = errors.New("not found")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func notFound(err error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, err)
}

// LeadPublisher hands leads to the sales team. *amqp.Client implements it.
type LeadPublisher interface {
	PublishLead(ctx context.Context, lead core.Lead) error
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func publishLead(ctx context.Context, pub LeadPublisher, lead core.Lead) {
	if pub == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping lead",
			"lead_id", lead.ID, "kind", lead.Kind)
		return
	}
	if err := pub.PublishLead(ctx, lead); err != nil {
		slog.ErrorContext(ctx, "Failed to publish lead",
			"lead_id", lead.ID, "kind", lead.Kind, "error", err)
		return
	}
	slog.InfoContext(ctx, "Lead published", "lead_id", lead.ID, "kind", lead.Kind)
}
