package review

import (
	"encoding/json"
	"fmt"

	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/record"
)

// RecordSummary is one record normalized for the generator prompt.
type RecordSummary struct {
	Type      string `json:"type"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Memo      string `json:"memo,omitempty"`
}

// Request is the normalized payload handed to the generator.
type Request struct {
	Period  Period          `json:"period"`
	Records []RecordSummary `json:"records"`
}

const (
	timestampLayout = "2006-01-02 15:04"
)

// BuildRequest normalizes a record collection and period selector into the
// generator payload. It performs no network call.
func BuildRequest(period Period, records []internal.Record) (*Request, error) {
	if !period.IsValid() {
		return nil, fmt.Errorf("review: unknown period %q", period)
	}
	summaries := make([]RecordSummary, 0, len(records))
	for _, r := range records {
		s := RecordSummary{
			Type:      string(r.Type),
			StartTime: r.StartTime.Format(timestampLayout),
			Memo:      r.Memo,
		}
		if r.EndTime != nil {
			s.EndTime = r.EndTime.Format(timestampLayout)
		}
		if r.Duration != nil {
			s.Duration = record.FormatDuration(*r.Duration)
		}
		summaries = append(summaries, s)
	}
	return &Request{Period: period, Records: summaries}, nil
}

// Prompt renders the user-turn prompt sent to the generator. The generator
// is instructed to answer with strict JSON matching the AIReview shape.
func (r *Request) Prompt() string {
	data, _ := json.MarshalIndent(r.Records, "", "  ")
	periodLabel := "the last day"
	if r.Period == PeriodWeekly {
		periodLabel = "the last week"
	}
	return fmt.Sprintf(`You are a health coach. Analyze the following health records covering %s and write an encouraging review.

Records:
%s

Respond with a single JSON object, no surrounding text, in exactly this shape:
{
  "overallReview": {"summary": "...", "positiveReinforcement": "...", "patternsNoticed": "...", "moodLinkages": "..."},
  "thingsToImprove": {"habitGaps": "...", "balanceIssues": "...", "actionableSuggestions": ["...", "...", "..."]},
  "highlightedWins": {"consistencyStreaks": "...", "improvementTrends": "..."},
  "lookingAhead": {"motivation": "...", "goalSetting": "..."}
}`, periodLabel, data)
}
