package review

import (
	"fmt"
	"math"

	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/record"
)

// BuildFallback assembles a review from locally computed aggregates only.
// It is served whenever the generator is unavailable or returns something
// unparsable, so every field the shape requires is always populated.
func BuildFallback(period Period, records []internal.Record) *AIReview {
	counts := map[internal.RecordType]int{}
	for _, r := range records {
		counts[r.Type]++
	}
	avgSleep := record.FormatDuration(int(math.Round(record.AverageSleepMinutes(records))))

	span := "Today"
	if period == PeriodWeekly {
		span = "This week"
	}

	summary := fmt.Sprintf("%s you logged %d activities: %d sleep, %d food and %d medication records.",
		span, len(records), counts[internal.TypeSleep], counts[internal.TypeFood], counts[internal.TypeMedication])

	reinforcement := "Take the first step toward a healthy routine by logging your next activity."
	if len(records) > 0 {
		reinforcement = "Keeping up your records is the habit that makes every other habit visible. Well done."
	}

	patterns := "Not enough records yet to spot patterns. Keep logging to reveal them."
	if counts[internal.TypeSleep] > 0 {
		patterns = fmt.Sprintf("Your average sleep duration over this period was %s.", avgSleep)
	}

	gaps := "Add more records to see where your routine has gaps."
	if len(records) > 0 {
		gaps = "Build on your current records to round out sleep, meals and medication."
	}

	return &AIReview{
		OverallReview: OverallReview{
			Summary:               summary,
			PositiveReinforcement: reinforcement,
			PatternsNoticed:       patterns,
			MoodLinkages:          "Sleep quality sets the tone for your energy through the day.",
		},
		ThingsToImprove: ThingsToImprove{
			HabitGaps:     gaps,
			BalanceIssues: "Aim for balance across sleep, nutrition and medication timing.",
			ActionableSuggestions: []string{
				"Go to bed at the same time each night",
				"Log meals within half an hour of eating",
				"Add one new healthy habit at a time",
			},
		},
		HighlightedWins: HighlightedWins{
			ConsistencyStreaks: fmt.Sprintf("You currently have %d records on file.", len(records)),
			ImprovementTrends:  "Steady logging is the start of every improvement trend.",
		},
		LookingAhead: LookingAhead{
			Motivation:  "Small changes add up. Keep going!",
			GoalSetting: "Set one concrete goal for the coming week.",
		},
	}
}
