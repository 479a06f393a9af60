package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"showroom/internal/core"
)

// LeadMessage is the wire envelope for a lead. The lead is carried in full
// because the worker has no access to the visitor store.
type LeadMessage struct {
	Lead      core.Lead `json:"lead"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLeadMessage(lead core.Lead) *LeadMessage {
	return &LeadMessage{Lead: lead, Timestamp: time.Now()}
}

func (m *LeadMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LeadMessageFromJSON decodes a message and rejects leads that could never
// be processed.
func LeadMessageFromJSON(data []byte) (*LeadMessage, error) {
	var msg LeadMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Lead.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lead: %w", err)
	}
	return &msg, nil
}
