package events

import (
	"testing"
	"time"
)

func TestMutationMessageJSONRoundTrip(t *testing.T) {
	msg := NewMutationMessage("trip-42", "expense_added")

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := MutationMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.TripID != "trip-42" || back.Kind != "expense_added" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Timestamp.IsZero() {
		t.Fatalf("timestamp lost in round trip")
	}
	if time.Since(back.Timestamp) > time.Minute {
		t.Fatalf("timestamp not stamped at creation: %v", back.Timestamp)
	}
}

func TestMutationMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := MutationMessageFromJSON([]byte("{nope")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
