package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type AssessmentStore struct {
	db *sql.DB
}

// Assessment is one stored assessment_responses row.
type Assessment struct {
	ID          int64
	UserID      int64
	Type        string
	Responses   json.RawMessage
	Score       *float64
	SubmittedAt time.Time
}

// Replace deletes the user's previous assessment of the same type and stores the new one.
func (s *AssessmentStore) Replace(ctx context.Context, userID int64, assessmentType string, responses json.RawMessage, score *float64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM assessment_responses WHERE user_id = $1 AND assessment_type = $2`,
		userID, assessmentType,
	); err != nil {
		return 0, fmt.Errorf("delete previous assessment: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO assessment_responses (user_id, assessment_type, responses, score) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, assessmentType, string(responses), score,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert assessment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit assessment: %w", err)
	}
	return id, nil
}

// ListForUser returns the user's assessments, newest first.
func (s *AssessmentStore) ListForUser(ctx context.Context, userID int64) ([]Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, assessment_type, responses, score, submitted_at FROM assessment_responses WHERE user_id = $1 ORDER BY submitted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var (
			a         Assessment
			responses sql.NullString
			score     sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &responses, &score, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		if responses.Valid {
			a.Responses = json.RawMessage(responses.String)
		}
		a.Score = nullFloat(score)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}
