package store

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// CreateUser inserts a new user. Returns ErrUsernameTaken when the username
// is already registered.
func (s *Store) CreateUser(u model.User) (int64, error) {
	existing, err := s.GetUserByUsername(u.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	res, err := s.db.Exec(
		`INSERT INTO users (username, password_hash, role, approved, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role, u.Approved, time.Now(),
	)
	if err != nil {
		slog.Error("failed to create user", "username", u.Username, "error", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	slog.Info("created user", "id", id, "username", u.Username, "role", u.Role)
	return id, nil
}

// GetUserByUsername returns a user by username, or nil if absent.
func (s *Store) GetUserByUsername(username string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, role, approved, created_at
		 FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Approved, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID returns a user by ID, or nil if absent.
func (s *Store) GetUserByID(id int64) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, role, approved, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Approved, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ApproveTeacher sets the approved flag on a user. Approving an already
// approved account is a no-op.
func (s *Store) ApproveTeacher(id int64) error {
	_, err := s.db.Exec(`UPDATE users SET approved = 1 WHERE id = ?`, id)
	return err
}

// ListPendingTeachers returns teacher accounts awaiting approval.
func (s *Store) ListPendingTeachers() ([]model.User, error) {
	rows, err := s.db.Query(
		`SELECT id, username, password_hash, role, approved, created_at
		 FROM users WHERE role = ? AND approved = 0 ORDER BY id`, model.RoleTeacher,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Approved, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsersByRole returns the number of users with the given role.
func (s *Store) CountUsersByRole(role model.Role) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&count)
	return count, err
}

// EnsureAdmin creates the bootstrap admin account unless a row with the admin
// role already exists. Repeated invocations never create a second admin.
func (s *Store) EnsureAdmin(username, passwordHash string) error {
	count, err := s.CountUsersByRole(model.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.CreateUser(model.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Approved:     true,
	})
	if err != nil {
		return err
	}
	slog.Info("seeded default admin user", "username", username)
	return nil
}
