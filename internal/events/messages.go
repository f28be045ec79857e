package events

import (
	"encoding/json"
	"time"
)

// MutationMessage is the lightweight notification published after every
// successful store mutation. Consumers re-read the collection from the slot
// themselves; the message only says that something changed and where.
type MutationMessage struct {
	TripID    string    `json:"tripId"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMutationMessage(tripID, kind string) *MutationMessage {
	return &MutationMessage{
		TripID:    tripID,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
