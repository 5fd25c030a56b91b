// Package review builds the prompt payload for the AI habit review,
// calls the external generator, and substitutes a deterministic local
// review when the generator cannot be used.
package review

// Period selects the span a review covers.
type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

func (p Period) IsValid() bool {
	return p == PeriodDaily || p == PeriodWeekly
}

// AIReview is the structured review shape returned to clients, whether it
// came from the generator or the local fallback.
type AIReview struct {
	OverallReview   OverallReview   `json:"overallReview"`
	ThingsToImprove ThingsToImprove `json:"thingsToImprove"`
	HighlightedWins HighlightedWins `json:"highlightedWins"`
	LookingAhead    LookingAhead    `json:"lookingAhead"`
}

type OverallReview struct {
	Summary               string `json:"summary"`
	PositiveReinforcement string `json:"positiveReinforcement"`
	PatternsNoticed       string `json:"patternsNoticed"`
	MoodLinkages          string `json:"moodLinkages,omitempty"`
}

type ThingsToImprove struct {
	HabitGaps             string   `json:"habitGaps"`
	BalanceIssues         string   `json:"balanceIssues"`
	ActionableSuggestions []string `json:"actionableSuggestions"`
}

type HighlightedWins struct {
	ConsistencyStreaks string `json:"consistencyStreaks"`
	ImprovementTrends  string `json:"improvementTrends"`
}

type LookingAhead struct {
	Motivation  string `json:"motivation"`
	GoalSetting string `json:"goalSetting"`
}
