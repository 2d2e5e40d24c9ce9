package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-compass/internal/recommendation"
)

type ReportStore struct {
	db *sql.DB
}

// Report is a full reports row with its JSON columns decoded.
type Report struct {
	ID                 int64                                `json:"id"`
	UserID             int64                                `json:"userId"`
	ReportTitle        string                               `json:"reportTitle,omitempty"`
	AptitudeScore      *float64                             `json:"aptitudeScore"`
	InterestProfile    map[string]float64                   `json:"interestProfile"`
	PersonalityProfile map[string]float64                   `json:"personalityProfile"`
	RecommendedCareers []recommendation.RecommendationEntry `json:"recommendedCareers"`
	Summary            string                               `json:"summary"`
	Strengths          []string                             `json:"strengths"`
	AreasToImprove     []string                             `json:"areasToImprove"`
	Status             string                               `json:"status"`
	GeneratedAt        time.Time                            `json:"generatedAt"`
	ReviewedAt         *time.Time                           `json:"reviewedAt,omitempty"`
	ReviewedBy         *int64                               `json:"reviewedBy,omitempty"`
	StudentName        string                               `json:"studentName,omitempty"`
	StudentEmail       string                               `json:"studentEmail,omitempty"`
}

// ReportSummary is the list view of a report.
type ReportSummary struct {
	ID            int64      `json:"id"`
	ReportTitle   string     `json:"reportTitle,omitempty"`
	AptitudeScore *float64   `json:"aptitudeScore"`
	Status        string     `json:"status"`
	GeneratedAt   time.Time  `json:"generatedAt"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	StudentName   string     `json:"studentName,omitempty"`
	StudentEmail  string     `json:"studentEmail,omitempty"`
}

// NewReport is what generate-report persists.
type NewReport struct {
	UserID             int64
	AptitudeScore      *float64
	InterestProfile    map[string]float64
	PersonalityProfile map[string]float64
	Result             recommendation.Report
}

const (
	StatusGenerated = "generated"
	StatusReviewed  = "reviewed"
)

// Create stores a report with status generated and returns its id and generation time.
func (s *ReportStore) Create(ctx context.Context, r NewReport) (int64, time.Time, error) {
	fields := []interface{}{r.InterestProfile, r.PersonalityProfile, r.Result.TopRecommendations, r.Result.Strengths, r.Result.AreasToImprove}
	encoded := make([]string, len(fields))
	for i, f := range fields {
		b, err := json.Marshal(f)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("encode report column: %w", err)
		}
		encoded[i] = string(b)
	}

	var (
		id          int64
		generatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reports (user_id, aptitude_score, interest_profile, personality_profile, recommended_careers, summary, strengths, areas_to_improve, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'generated') RETURNING id, generated_at`,
		r.UserID, r.AptitudeScore, encoded[0], encoded[1], encoded[2], r.Result.Summary, encoded[3], encoded[4],
	).Scan(&id, &generatedAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("insert report: %w", err)
	}
	return id, generatedAt, nil
}

const reportColumns = `r.id, r.user_id, r.report_title, r.aptitude_score, r.interest_profile, r.personality_profile,
r.recommended_careers, r.summary, r.strengths, r.areas_to_improve, r.status, r.generated_at, r.reviewed_at, r.reviewed_by`

// GetForStudent returns the report only when it belongs to userID.
func (s *ReportStore) GetForStudent(ctx context.Context, reportID, userID int64) (*Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports r WHERE r.id = $1 AND r.user_id = $2`,
		reportID, userID,
	)
	return scanReport(row, false)
}

// GetWithStudent returns any report joined with its student's name and email.
func (s *ReportStore) GetWithStudent(ctx context.Context, reportID int64) (*Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+`, u.name, u.email FROM reports r JOIN users u ON r.user_id = u.id WHERE r.id = $1`,
		reportID,
	)
	return scanReport(row, true)
}

func scanReport(row *sql.Row, withStudent bool) (*Report, error) {
	var (
		r                                     Report
		title, interest, personality, careers sql.NullString
		summary, strengths, areas             sql.NullString
		aptitude                              sql.NullFloat64
		reviewedAt                            sql.NullTime
		reviewedBy                            sql.NullInt64
		studentName, studentEmail             sql.NullString
	)
	dest := []interface{}{
		&r.ID, &r.UserID, &title, &aptitude, &interest, &personality,
		&careers, &summary, &strengths, &areas, &r.Status, &r.GeneratedAt, &reviewedAt, &reviewedBy,
	}
	if withStudent {
		dest = append(dest, &studentName, &studentEmail)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}

	r.ReportTitle = title.String
	r.AptitudeScore = nullFloat(aptitude)
	r.InterestProfile = decodeProfile(interest)
	r.PersonalityProfile = decodeProfile(personality)
	r.RecommendedCareers = []recommendation.RecommendationEntry{}
	if careers.Valid && careers.String != "" {
		_ = json.Unmarshal([]byte(careers.String), &r.RecommendedCareers)
	}
	r.Summary = summary.String
	r.Strengths = decodeStrings(strengths)
	r.AreasToImprove = decodeStrings(areas)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		r.ReviewedAt = &t
	}
	if reviewedBy.Valid {
		v := reviewedBy.Int64
		r.ReviewedBy = &v
	}
	r.StudentName = studentName.String
	r.StudentEmail = studentEmail.String
	return &r, nil
}

// ListForStudent returns the student's own reports, newest first.
func (s *ReportStore) ListForStudent(ctx context.Context, userID int64) ([]ReportSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, report_title, aptitude_score, status, generated_at, reviewed_at FROM reports WHERE user_id = $1 ORDER BY generated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query student reports: %w", err)
	}
	return scanSummaries(rows, false)
}

// ListAll returns every report with its student's name and email, newest first.
func (s *ReportStore) ListAll(ctx context.Context) ([]ReportSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.report_title, r.aptitude_score, r.status, r.generated_at, r.reviewed_at, u.name, u.email
FROM reports r JOIN users u ON r.user_id = u.id ORDER BY r.generated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return scanSummaries(rows, true)
}

func scanSummaries(rows *sql.Rows, withStudent bool) ([]ReportSummary, error) {
	defer rows.Close()

	out := []ReportSummary{}
	for rows.Next() {
		var (
			s                         ReportSummary
			title                     sql.NullString
			aptitude                  sql.NullFloat64
			reviewedAt                sql.NullTime
			studentName, studentEmail sql.NullString
		)
		dest := []interface{}{&s.ID, &title, &aptitude, &s.Status, &s.GeneratedAt, &reviewedAt}
		if withStudent {
			dest = append(dest, &studentName, &studentEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan report summary: %w", err)
		}
		s.ReportTitle = title.String
		s.AptitudeScore = nullFloat(aptitude)
		if reviewedAt.Valid {
			t := reviewedAt.Time
			s.ReviewedAt = &t
		}
		s.StudentName = studentName.String
		s.StudentEmail = studentEmail.String
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// MarkReviewed sets the report to reviewed by counsellorID. ErrNotFound when no row matches.
func (s *ReportStore) MarkReviewed(ctx context.Context, reportID, counsellorID int64) (time.Time, error) {
	var reviewedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`UPDATE reports SET status = 'reviewed', reviewed_by = $1, reviewed_at = NOW() WHERE id = $2 RETURNING reviewed_at`,
		counsellorID, reportID,
	).Scan(&reviewedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("mark report reviewed: %w", err)
	}
	return reviewedAt, nil
}
