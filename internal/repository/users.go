package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type UserStore struct {
	db *sql.DB
}

// Contact is what notifications need to reach a student.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,e164"`
}

func (s *UserStore) GetContact(ctx context.Context, userID int64) (*Contact, error) {
	var (
		c     Contact
		email sql.NullString
		phone sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone FROM users WHERE id = $1`, userID,
	).Scan(&c.ID, &c.Name, &email, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user contact: %w", err)
	}
	c.Email = email.String
	c.Phone = phone.String
	return &c, nil
}
