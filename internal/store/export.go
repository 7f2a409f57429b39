package store

import (
	"fmt"
	"time"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// ExportCourseResults builds an export-ready record of every attempt for a
// course, resolving student usernames and numbering repeat attempts.
func (s *Store) ExportCourseResults(courseID int64) (*model.ResultsExport, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", courseID, err)
	}

	results, err := s.ListResultsByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	questions, err := s.ListQuestionsByCourse(courseID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	totalMarks := 0
	for _, q := range questions {
		totalMarks += q.Marks
	}

	// Track attempt count per student for attempt_number.
	studentAttempts := make(map[int64]int)

	var exported []model.ResultExport
	for _, r := range results {
		studentAttempts[r.StudentID]++

		user, err := s.GetUserByID(r.StudentID)
		if err != nil {
			return nil, fmt.Errorf("get user %d: %w", r.StudentID, err)
		}
		var username string
		if user != nil {
			username = user.Username
		}

		exported = append(exported, model.ResultExport{
			Username:      username,
			AttemptNumber: studentAttempts[r.StudentID],
			Score:         r.Score,
			TotalMarks:    r.TotalMarks,
			TakenAt:       r.TakenAt,
		})
	}

	return &model.ResultsExport{
		CourseID:    course.ID,
		CourseName:  course.Name,
		ExportedAt:  time.Now(),
		TotalMarks:  totalMarks,
		NumAttempts: len(exported),
		Results:     exported,
	}, nil
}
