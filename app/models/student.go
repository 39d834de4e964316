package models

type Student struct {
	Roll  string `json:"roll"`
	Name  string `json:"name"`
	Class string `json:"class"`
	// DOB is kept as the canonical DD-MM-YYYY string; student login compares
	// it byte-for-byte, not as a calendar date.
	DOB string `json:"dob,omitempty"`
}

type Mark struct {
	ID       string  `json:"id"`
	Roll     string  `json:"roll"`
	Subject  string  `json:"subject"`
	ExamType string  `json:"exam_type"`
	Marks    float64 `json:"marks"`
	MaxMarks float64 `json:"max_marks"`
}

// ResultSummary is derived on every request and never stored.
type ResultSummary struct {
	Student       *Student `json:"student"`
	Marks         []Mark   `json:"marks"`
	Count         int      `json:"count"`
	Total         float64  `json:"total"`
	TotalPossible float64  `json:"total_possible"`
	Percentage    float64  `json:"percentage"`
}
