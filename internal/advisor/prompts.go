package advisor

import "fmt"

func itineraryPrompt(destination string, durationInDays int, budgetPerPerson float64) string {
	return fmt.Sprintf(`Create a detailed, day-by-day travel itinerary for a trip to %s for %d days.
The budget is around INR %.0f per person for activities and food.
Please suggest a mix of popular attractions and local experiences.
For each day, provide:
1. A theme for the day (e.g., "Historical Exploration", "Culinary Adventure").
2. Morning, Afternoon, and Evening activities.
3. Suggestions for budget-friendly meals (breakfast, lunch, dinner).
4. Estimated costs in INR for activities where applicable.

Format the response as clear, readable text. Use headings for each day.`,
		destination, durationInDays, budgetPerPerson)
}

func predictionPrompt(destination string, durationInDays, numberOfMembers int) string {
	return fmt.Sprintf(`Based on recent travel data, predict the per-person budget for a trip to %s for %d days for %d people. This should be a mid-range budget.
Provide a brief breakdown explaining the estimate (e.g., accommodation, food, local travel, activities).
The currency must be in Indian Rupees (INR).
Return the response ONLY as a valid JSON object with the following structure:
{
  "predictedBudgetPerPerson": number,
  "breakdown": string,
  "currency": "INR"
}
Do not include any other text or markdown formatting outside of the JSON object.`,
		destination, durationInDays, numberOfMembers)
}
