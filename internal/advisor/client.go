// Package advisor calls the Gemini generative API for itinerary suggestions
// and budget predictions. Both paths return errors; the presentation layer
// decides how to degrade. For the itinerary that is a fixed human-readable
// fallback string (see FallbackText), for the structured budget prediction
// the error itself, since a made-up number would be misleading.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tripledger/internal/log"
)

// ErrMissingAPIKey is returned by the prediction path when no credential is
// configured. The check short-circuits before any network call.
var ErrMissingAPIKey = errors.New("Gemini API key is not configured")

const (
	fallbackNoKey = "API key is not configured. Set the GEMINI_API_KEY environment variable to use this feature."
	fallbackError = "Sorry, I couldn't generate an itinerary at the moment. Please try again later."
)

// FallbackText maps an itinerary generation failure onto the message shown
// in place of an itinerary. The text is stable so callers must not cache it
// as if it were a generated result.
func FallbackText(err error) string {
	if errors.Is(err, ErrMissingAPIKey) {
		return fallbackNoKey
	}
	return fallbackError
}

// BudgetPrediction is the structured response contract for the prediction
// path. The remote model is instructed to return exactly this JSON shape.
type BudgetPrediction struct {
	PredictedBudgetPerPerson float64 `json:"predictedBudgetPerPerson"`
	Breakdown                string  `json:"breakdown"`
	Currency                 string  `json:"currency"`
}

type Client struct {
	genai  *genai.Client
	model  string
	logger *log.Logger
}

// New builds an advisory client. An empty API key yields a disabled client
// rather than an error: the rest of the application stays usable and the
// advisory endpoints report the missing credential per their own contracts.
func New(ctx context.Context, apiKey, model string, logger *log.Logger) (*Client, error) {
	c := &Client{
		model:  model,
		logger: logger.WithComponent(log.ComponentAdvisor),
	}
	if apiKey == "" {
		c.logger.Warn("GEMINI_API_KEY not set, AI advisory features are disabled")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.genai = gc
	return c, nil
}

func (c *Client) Close() error {
	if c.genai != nil {
		return c.genai.Close()
	}
	return nil
}

// GenerateItinerary returns free-form descriptive text. A missing credential
// surfaces as ErrMissingAPIKey; callers render failures via FallbackText
// instead of showing the error itself.
func (c *Client) GenerateItinerary(ctx context.Context, destination string, durationInDays int, budgetPerPerson float64) (string, error) {
	if c.genai == nil {
		return "", ErrMissingAPIKey
	}

	prompt := itineraryPrompt(destination, durationInDays, budgetPerPerson)
	model := c.genai.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.ErrorContext(ctx, "Itinerary generation failed",
			log.FieldModel, c.model,
			log.FieldError, err)
		return "", fmt.Errorf("itinerary request: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		c.logger.WarnContext(ctx, "Itinerary response contained no text",
			log.FieldModel, c.model)
		return "", fmt.Errorf("itinerary response contained no text")
	}
	return text, nil
}

// PredictBudget asks the model for a structured per-person budget estimate.
// Unlike the itinerary path, all failures surface as errors for the caller
// to present to the user.
func (c *Client) PredictBudget(ctx context.Context, destination string, durationInDays, numberOfMembers int) (BudgetPrediction, error) {
	if c.genai == nil {
		return BudgetPrediction{}, ErrMissingAPIKey
	}

	model := c.genai.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(predictionPrompt(destination, durationInDays, numberOfMembers)))
	if err != nil {
		return BudgetPrediction{}, fmt.Errorf("budget prediction request: %w", err)
	}

	prediction, err := ParsePrediction(responseText(resp))
	if err != nil {
		c.logger.ErrorContext(ctx, "Budget prediction parse failed",
			log.FieldModel, c.model,
			log.FieldError, err)
		return BudgetPrediction{}, err
	}
	return prediction, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}
