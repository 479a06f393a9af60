package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LeadKind says which form produced a lead.
type LeadKind string

const (
	LeadTestDrive    LeadKind = "test_drive"
	LeadContact      LeadKind = "contact"
	LeadRegistration LeadKind = "registration"
)

func (k LeadKind) IsValid() bool {
	switch k {
	case LeadTestDrive, LeadContact, LeadRegistration:
		return true
	}
	return false
}

var (
	ErrEmptyLeadID     = errors.New("lead id is required")
	ErrInvalidLeadKind = errors.New("lead kind must be test_drive, contact or registration")
)

// Lead is a sales contact handed to the sales team. It is published when a
// visitor books a test drive, sends the contact form, or registers.
type Lead struct {
	ID        string    `json:"id"`
	Kind      LeadKind  `json:"kind"`
	Visitor   string    `json:"visitor"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Vehicle   string    `json:"vehicle,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLead stamps a lead with a fresh id.
func NewLead(kind LeadKind, visitor string, now time.Time) Lead {
	return Lead{
		ID:        uuid.NewString(),
		Kind:      kind,
		Visitor:   visitor,
		CreatedAt: now.UTC(),
	}
}

func (l Lead) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return ErrEmptyLeadID
	}
	if !l.Kind.IsValid() {
		return ErrInvalidLeadKind
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if !ValidEmail(l.Email) {
		return ErrInvalidEmail
	}
	return nil
}
