// Package memory is a LeadWriter that keeps leads in process and logs them.
// It stands in for Google Sheets in development and tests.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"showroom/internal/core"
	"showroom/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	leads  []core.Lead
	logger *slog.Logger
}

var _ sheets.LeadWriter = (*Store)(nil)

func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

// AppendLead stores the lead and returns a synthetic row reference.
func (s *Store) AppendLead(ctx context.Context, lead core.Lead) (string, error) {
	if err := lead.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.leads = append(s.leads, lead)
	n := len(s.leads)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Lead recorded",
		"lead_id", lead.ID,
		"kind", lead.Kind,
		"name", lead.Name,
		"vehicle", lead.Vehicle)
	return fmt.Sprintf("mem:%d", n), nil
}

// Leads returns a copy of what was recorded, oldest first.
func (s *Store) Leads() []core.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Lead(nil), s.leads...)
}
