package advisor

import (
	"strings"
	"testing"
)

func TestParsePrediction(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    BudgetPrediction
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"predictedBudgetPerPerson": 18500, "breakdown": "hotels and food", "currency": "INR"}`,
			want: BudgetPrediction{PredictedBudgetPerPerson: 18500, Breakdown: "hotels and food", Currency: "INR"},
		},
		{
			name: "json fenced",
			raw:  "```json\n{\"predictedBudgetPerPerson\": 9000, \"breakdown\": \"b\", \"currency\": \"INR\"}\n```",
			want: BudgetPrediction{PredictedBudgetPerPerson: 9000, Breakdown: "b", Currency: "INR"},
		},
		{
			name: "bare fences with whitespace",
			raw:  "  ```\n{\"predictedBudgetPerPerson\": 100, \"breakdown\": \"x\", \"currency\": \"INR\"}\n```  ",
			want: BudgetPrediction{PredictedBudgetPerPerson: 100, Breakdown: "x", Currency: "INR"},
		},
		{
			name: "missing currency defaults to INR",
			raw:  `{"predictedBudgetPerPerson": 5, "breakdown": "y"}`,
			want: BudgetPrediction{PredictedBudgetPerPerson: 5, Breakdown: "y", Currency: "INR"},
		},
		{name: "empty response", raw: "", wantErr: true},
		{name: "only fences", raw: "```json\n```", wantErr: true},
		{name: "prose instead of json", raw: "I estimate about 10000 rupees per person.", wantErr: true},
		{name: "truncated json", raw: `{"predictedBudgetPerPerson": 5,`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePrediction(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParsePredictionErrorIsDescriptive(t *testing.T) {
	_, err := ParsePrediction("not json at all")
	if err == nil || !strings.Contains(err.Error(), "invalid budget format") {
		t.Fatalf("error %v should explain the malformed response", err)
	}
}
