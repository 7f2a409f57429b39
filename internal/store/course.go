package store

import (
	"time"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// CreateCourse stores a course.
func (s *Store) CreateCourse(c model.Course) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO courses (name, description, created_by, created_at) VALUES (?, ?, ?, ?)`,
		c.Name, c.Description, c.CreatedBy, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetCourse returns a course by ID.
func (s *Store) GetCourse(id int64) (model.Course, error) {
	var c model.Course
	err := s.db.QueryRow(
		`SELECT id, name, description, created_by, created_at FROM courses WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt)
	return c, err
}

// ListCourses returns all courses.
func (s *Store) ListCourses() ([]model.Course, error) {
	return s.queryCourses(`SELECT id, name, description, created_by, created_at FROM courses ORDER BY id`)
}

// ListCoursesByCreator returns courses created by the given user.
func (s *Store) ListCoursesByCreator(userID int64) ([]model.Course, error) {
	return s.queryCourses(
		`SELECT id, name, description, created_by, created_at FROM courses WHERE created_by = ? ORDER BY id`,
		userID,
	)
}

func (s *Store) queryCourses(query string, args ...any) ([]model.Course, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// DeleteCourse removes a course and all of its questions in one transaction.
// Result rows referencing the course are retained as immutable history.
func (s *Store) DeleteCourse(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM questions WHERE course_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM courses WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CourseCount returns the number of courses.
func (s *Store) CourseCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&count)
	return count, err
}
