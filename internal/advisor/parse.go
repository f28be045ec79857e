package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParsePrediction decodes the model's budget response. Models occasionally
// wrap the JSON object in markdown code fences despite the prompt, so fence
// markers are stripped before parsing.
func ParsePrediction(raw string) (BudgetPrediction, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return BudgetPrediction{}, fmt.Errorf("budget prediction response was empty")
	}

	var p BudgetPrediction
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return BudgetPrediction{}, fmt.Errorf("the model returned an invalid budget format: %w", err)
	}
	if p.Currency == "" {
		p.Currency = "INR"
	}
	return p, nil
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
