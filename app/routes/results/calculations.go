package results

import (
	"math"

	"resultdesk/app/models"
)

// Summarize joins a student with their graded entries and computes the
// aggregate totals. The percentage is taken against the sum of every entry's
// max marks, so mixed-weight exams contribute proportionally to their own
// scale rather than being averaged per entry.
func Summarize(student *models.Student, marks []models.Mark) *models.ResultSummary {
	summary := &models.ResultSummary{
		Student: student,
		Marks:   marks,
		Count:   len(marks),
	}

	for _, m := range marks {
		summary.Total += m.Marks
		summary.TotalPossible += m.MaxMarks
	}
	if summary.TotalPossible > 0 {
		summary.Percentage = round2(summary.Total / summary.TotalPossible * 100)
	}
	summary.Total = round2(summary.Total)
	summary.TotalPossible = round2(summary.TotalPossible)
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
