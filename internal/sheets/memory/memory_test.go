package memory

import (
	"context"
	"testing"
	"time"

	"showroom/internal/core"
)

func TestStoreAppendLead(t *testing.T) {
	s := New(nil)

	lead := core.NewLead(core.LeadRegistration, "v1", time.Now())
	lead.Name = "Han Lue"
	lead.Email = "han@example.com"

	ref, err := s.AppendLead(context.Background(), lead)
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	if _, err := s.AppendLead(context.Background(), core.Lead{}); err == nil {
		t.Fatal("expected validation error")
	}

	got := s.Leads()
	if len(got) != 1 || got[0].ID != lead.ID {
		t.Fatalf("leads = %+v", got)
	}
	got[0].Name = "changed"
	if s.Leads()[0].Name != "Han Lue" {
		t.Fatal("Leads leaked internal slice")
	}
}
