package store

import (
	"time"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// InsertResult stores one exam attempt. Result rows are never updated or
// deleted afterwards.
func (s *Store) InsertResult(r model.Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (student_id, course_id, score, total_marks, taken_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.StudentID, r.CourseID, r.Score, r.TotalMarks, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListResultsByStudent returns a student's results, most recent first.
func (s *Store) ListResultsByStudent(studentID int64) ([]model.Result, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.student_id, r.course_id, COALESCE(c.name, ''), r.score, r.total_marks, r.taken_at
		 FROM results r LEFT JOIN courses c ON c.id = r.course_id
		 WHERE r.student_id = ?
		 ORDER BY r.taken_at DESC, r.id DESC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []model.Result
	for rows.Next() {
		var r model.Result
		if err := rows.Scan(&r.ID, &r.StudentID, &r.CourseID, &r.CourseName, &r.Score, &r.TotalMarks, &r.TakenAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListResultsByCourse returns all attempts for a course, oldest first.
func (s *Store) ListResultsByCourse(courseID int64) ([]model.Result, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.student_id, r.course_id, COALESCE(c.name, ''), r.score, r.total_marks, r.taken_at
		 FROM results r LEFT JOIN courses c ON c.id = r.course_id
		 WHERE r.course_id = ?
		 ORDER BY r.taken_at, r.id`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []model.Result
	for rows.Next() {
		var r model.Result
		if err := rows.Scan(&r.ID, &r.StudentID, &r.CourseID, &r.CourseName, &r.Score, &r.TotalMarks, &r.TakenAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ResultCountByCourse returns the number of attempts recorded for a course.
func (s *Store) ResultCountByCourse(courseID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM results WHERE course_id = ?`, courseID).Scan(&count)
	return count, err
}
