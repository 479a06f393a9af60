// Package sheets defines where leads are exported for the sales team.
package sheets

import (
	"context"

	"showroom/internal/core"
)

// LeadWriter appends one lead and returns a reference to where it landed.
type LeadWriter interface {
	AppendLead(ctx context.Context, lead core.Lead) (rowRef string, err error)
}

// LeadHeader is the column layout of the leads sheet.
var LeadHeader = []string{"Created At", "Kind", "Name", "Email", "Phone", "Vehicle", "Detail", "Visitor", "Lead ID"}
