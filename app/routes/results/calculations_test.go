package results

import (
	"testing"

	"resultdesk/app/models"

	"github.com/stretchr/testify/require"
)

func TestSummarizeMixedWeights(t *testing.T) {
	student := &models.Student{Roll: "S-1", Name: "Asha", Class: "10A"}
	marks := []models.Mark{
		{Subject: "Math", ExamType: "Final", Marks: 72, MaxMarks: 80},
		{Subject: "Physics", ExamType: "Final", Marks: 42, MaxMarks: 50},
	}

	summary := Summarize(student, marks)
	require.Equal(t, 2, summary.Count)
	require.Equal(t, 114.0, summary.Total)
	require.Equal(t, 130.0, summary.TotalPossible)
	require.Equal(t, 87.69, summary.Percentage)
}

func TestSummarizeNoMarks(t *testing.T) {
	student := &models.Student{Roll: "S-2", Name: "Ben", Class: "10B"}

	summary := Summarize(student, nil)
	require.Equal(t, 0, summary.Count)
	require.Equal(t, 0.0, summary.Total)
	require.Equal(t, 0.0, summary.TotalPossible)
	require.Equal(t, 0.0, summary.Percentage)
}

func TestSummarizeWeightsByScaleNotPerEntryAverage(t *testing.T) {
	// 100% on a tiny quiz plus 0% on a big exam must not average to 50%.
	student := &models.Student{Roll: "S-3"}
	marks := []models.Mark{
		{Subject: "Quiz", Marks: 10, MaxMarks: 10},
		{Subject: "Exam", Marks: 0, MaxMarks: 90},
	}

	summary := Summarize(student, marks)
	require.Equal(t, 10.0, summary.Percentage)
}

func TestSummarizeRoundsToTwoDecimals(t *testing.T) {
	student := &models.Student{Roll: "S-4"}
	marks := []models.Mark{
		{Subject: "Art", Marks: 1, MaxMarks: 3},
	}

	summary := Summarize(student, marks)
	require.Equal(t, 33.33, summary.Percentage)
}

func TestSummarizeRepeatedEntriesAccumulate(t *testing.T) {
	student := &models.Student{Roll: "S-5"}
	marks := []models.Mark{
		{Subject: "Math", ExamType: "Unit Test", Marks: 18, MaxMarks: 20},
		{Subject: "Math", ExamType: "Unit Test", Marks: 15, MaxMarks: 20},
	}

	summary := Summarize(student, marks)
	require.Equal(t, 2, summary.Count)
	require.Equal(t, 33.0, summary.Total)
	require.Equal(t, 40.0, summary.TotalPossible)
	require.Equal(t, 82.5, summary.Percentage)
}
