package repository

import (
	"context"
	"database/sql"
	"fmt"

	"career-compass/internal/recommendation"
)

type CareerStore struct {
	db *sql.DB
}

const listActiveCareersQuery = `SELECT id, title, category, stream, description, salary_range, growth, skills, match_keywords
FROM careers WHERE is_active = TRUE ORDER BY id`

// ListActive returns the active catalog in id order.
func (s *CareerStore) ListActive(ctx context.Context) ([]recommendation.CareerDefinition, error) {
	rows, err := s.db.QueryContext(ctx, listActiveCareersQuery)
	if err != nil {
		return nil, fmt.Errorf("query active careers: %w", err)
	}
	defer rows.Close()

	careers := []recommendation.CareerDefinition{}
	for rows.Next() {
		var c recommendation.CareerDefinition
		var stream, description, salary, growth, skills, kw sql.NullString
		if err := rows.Scan(&c.ID, &c.Title, &c.Category, &stream, &description, &salary, &growth, &skills, &kw); err != nil {
			return nil, fmt.Errorf("scan career: %w", err)
		}
		c.Stream = stream.String
		c.Description = description.String
		c.SalaryRange = salary.String
		c.Growth = growth.String
		c.Skills = decodeStrings(skills)
		c.MatchKeywords = decodeStrings(kw)
		careers = append(careers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate careers: %w", err)
	}
	return careers, nil
}
