// Package repository holds the Postgres access for assessments, careers, reports and users.
package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Store bundles the per-table stores over one connection pool.
type Store struct {
	Assessments *AssessmentStore
	Careers     *CareerStore
	Reports     *ReportStore
	Users       *UserStore
}

func New(db *sql.DB) *Store {
	return &Store{
		Assessments: &AssessmentStore{db: db},
		Careers:     &CareerStore{db: db},
		Reports:     &ReportStore{db: db},
		Users:       &UserStore{db: db},
	}
}

// decodeStrings reads a JSON text column holding a string list; empty, null or malformed yields an empty list.
func decodeStrings(raw sql.NullString) []string {
	out := []string{}
	if !raw.Valid || raw.String == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// decodeProfile reads a JSON text column holding a name->score object; anything else yields nil.
func decodeProfile(raw sql.NullString) map[string]float64 {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out map[string]float64
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil
	}
	return out
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
