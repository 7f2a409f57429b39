package store

import (
	"strings"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// InsertQuestion stores a question. The correct option is normalized to upper
// case and must name one of the four options; marks below 1 default to 1.
func (s *Store) InsertQuestion(q model.Question) (int64, error) {
	q.CorrectOption = strings.ToUpper(strings.TrimSpace(q.CorrectOption))
	switch q.CorrectOption {
	case "A", "B", "C", "D":
	default:
		return 0, ErrInvalidOption
	}
	if q.Marks < 1 {
		q.Marks = 1
	}

	res, err := s.db.Exec(
		`INSERT INTO questions (course_id, text, option_a, option_b, option_c, option_d, correct_option, marks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.CourseID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.Marks,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetQuestion returns a question by ID.
func (s *Store) GetQuestion(id int64) (model.Question, error) {
	var q model.Question
	err := s.db.QueryRow(
		`SELECT id, course_id, text, option_a, option_b, option_c, option_d, correct_option, marks
		 FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.CourseID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.Marks)
	return q, err
}

// ListQuestionsByCourse returns a course's questions in insertion order.
func (s *Store) ListQuestionsByCourse(courseID int64) ([]model.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, course_id, text, option_a, option_b, option_c, option_d, correct_option, marks
		 FROM questions WHERE course_id = ? ORDER BY id`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.CourseID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.Marks); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// DeleteQuestion removes a question.
func (s *Store) DeleteQuestion(id int64) error {
	_, err := s.db.Exec(`DELETE FROM questions WHERE id = ?`, id)
	return err
}

// QuestionCount returns the number of questions in the database.
func (s *Store) QuestionCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// QuestionCountByCourse returns the number of questions in a course.
func (s *Store) QuestionCountByCourse(courseID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions WHERE course_id = ?`, courseID).Scan(&count)
	return count, err
}
