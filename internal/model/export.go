package model

import "time"

// ResultsExport is the top-level JSON structure for the export subcommand.
type ResultsExport struct {
	CourseID    int64          `json:"course_id"`
	CourseName  string         `json:"course_name"`
	ExportedAt  time.Time      `json:"exported_at"`
	TotalMarks  int            `json:"total_marks"`
	NumAttempts int            `json:"num_attempts"`
	Results     []ResultExport `json:"results"`
}

// ResultExport holds one exam attempt for export.
type ResultExport struct {
	Username      string    `json:"username"`
	AttemptNumber int       `json:"attempt_number"`
	Score         int       `json:"score"`
	TotalMarks    int       `json:"total_marks"`
	TakenAt       time.Time `json:"taken_at"`
}
