package auth

import (
	"context"
	"database/sql"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// GetByNIK returns nil, nil when the user does not exist.
func (s *Store) GetByNIK(ctx context.Context, nik string) (*User, error) {
	const q = `
	SELECT user_id, nik, full_name, password_hash, role, is_active, created_at
	FROM users WHERE nik = ?`
	var u User
	err := s.db.QueryRowContext(ctx, q, nik).Scan(
		&u.UserID, &u.NIK, &u.FullName, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) Create(ctx context.Context, u *User) (uint64, error) {
	const q = `
	INSERT INTO users (nik, full_name, password_hash, role, is_active, created_at)
	VALUES (?, ?, ?, ?, 1, UTC_TIMESTAMP())`
	res, err := s.db.ExecContext(ctx, q, u.NIK, u.FullName, u.PasswordHash, u.Role)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) Deactivate(ctx context.Context, id uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET is_active = 0 WHERE user_id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
