package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripledger/internal/log"
)

func TestDisabledClientItinerary(t *testing.T) {
	c, err := New(context.Background(), "", "gemini-2.5-flash", log.New(log.DefaultConfig()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, genErr := c.GenerateItinerary(context.Background(), "Jaipur", 3, 10000)
	if !errors.Is(genErr, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", genErr)
	}
	if got := FallbackText(genErr); !strings.Contains(got, "GEMINI_API_KEY") {
		t.Fatalf("fallback text = %q, should mention the missing credential", got)
	}
}

func TestFallbackTextGenericFailure(t *testing.T) {
	got := FallbackText(errors.New("upstream timeout"))
	if !strings.Contains(got, "try again later") {
		t.Fatalf("fallback text = %q", got)
	}
}

func TestDisabledClientPredictionError(t *testing.T) {
	c, err := New(context.Background(), "", "gemini-2.5-flash", log.New(log.DefaultConfig()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = c.PredictBudget(context.Background(), "Jaipur", 3, 4)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestItineraryPromptMentionsInputs(t *testing.T) {
	p := itineraryPrompt("Alleppey, Kerala", 6, 20000)
	for _, want := range []string{"Alleppey, Kerala", "6 days", "INR 20000"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestPredictionPromptDemandsJSONOnly(t *testing.T) {
	p := predictionPrompt("Goa", 4, 3)
	for _, want := range []string{"Goa", "4 days", "3 people", "predictedBudgetPerPerson", "ONLY as a valid JSON object"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}
