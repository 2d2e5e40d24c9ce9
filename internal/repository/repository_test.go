package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"career-compass/internal/recommendation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCareerStore_ListActive(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "category", "stream", "description", "salary_range", "growth", "skills", "match_keywords"}).
		AddRow(1, "Software Engineer", "Technology", "Science", "Builds software", "6-25 LPA", "High", `["Go","SQL"]`, `["code"]`).
		AddRow(2, "Counsellor", "Education", nil, nil, nil, nil, nil, "not json")

	mock.ExpectQuery(regexp.QuoteMeta(listActiveCareersQuery)).WillReturnRows(rows)

	careers, err := store.Careers.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, careers, 2)

	assert.Equal(t, int64(1), careers[0].ID)
	assert.Equal(t, []string{"Go", "SQL"}, careers[0].Skills)
	assert.Equal(t, []string{"code"}, careers[0].MatchKeywords)
	assert.Equal(t, "6-25 LPA", careers[0].SalaryRange)

	assert.Equal(t, "", careers[1].Stream)
	assert.Equal(t, []string{}, careers[1].Skills)
	assert.Equal(t, []string{}, careers[1].MatchKeywords)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCareerStore_ListActiveError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT id, title").WillReturnError(errors.New("connection reset"))

	_, err := store.Careers.ListActive(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestAssessmentStore_Replace(t *testing.T) {
	store, mock := newMockStore(t)
	score := 72.5

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM assessment_responses WHERE user_id = $1 AND assessment_type = $2`)).
		WithArgs(7, "aptitude").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO assessment_responses`)).
		WithArgs(7, "aptitude", `{"q1":"b"}`, score).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectCommit()

	id, err := store.Assessments.Replace(context.Background(), 7, "aptitude", json.RawMessage(`{"q1":"b"}`), &score)
	require.NoError(t, err)
	assert.Equal(t, int64(31), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentStore_ReplaceRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM assessment_responses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO assessment_responses").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := store.Assessments.Replace(context.Background(), 7, "interest", json.RawMessage(`{}`), nil)
	assert.ErrorContains(t, err, "insert assessment")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentStore_ListForUser(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM assessment_responses WHERE user_id = $1 ORDER BY submitted_at DESC`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "assessment_type", "responses", "score", "submitted_at"}).
			AddRow(3, 7, "interest", `{"investigative":80}`, nil, now).
			AddRow(2, 7, "aptitude", `{}`, 64.0, now.Add(-time.Hour)))

	got, err := store.Assessments.ListForUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "interest", got[0].Type)
	assert.Nil(t, got[0].Score)
	assert.JSONEq(t, `{"investigative":80}`, string(got[0].Responses))
	require.NotNil(t, got[1].Score)
	assert.Equal(t, 64.0, *got[1].Score)
}

func TestReportStore_Create(t *testing.T) {
	store, mock := newMockStore(t)
	generatedAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	result := recommendation.Report{
		TopRecommendations: []recommendation.RecommendationEntry{{CareerID: 1, Title: "Data Scientist", Category: "Technology", MatchPercentage: 81.5}},
		Strengths:          []string{"a"},
		AreasToImprove:     []string{"b"},
		Summary:            "summary",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reports`)).
		WithArgs(
			7, 85.0,
			`{"investigative":80}`, `null`,
			`[{"career_id":1,"title":"Data Scientist","category":"Technology","stream":"","match_percentage":81.5,"salary_range":"","growth":""}]`,
			"summary", `["a"]`, `["b"]`,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "generated_at"}).AddRow(55, generatedAt))

	id, at, err := store.Reports.Create(context.Background(), NewReport{
		UserID:          7,
		AptitudeScore:   recommendation.Float64(85),
		InterestProfile: map[string]float64{"investigative": 80},
		Result:          result,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)
	assert.Equal(t, generatedAt, at)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var reportRowColumns = []string{
	"id", "user_id", "report_title", "aptitude_score", "interest_profile", "personality_profile",
	"recommended_careers", "summary", "strengths", "areas_to_improve", "status", "generated_at", "reviewed_at", "reviewed_by",
}

func TestReportStore_GetForStudent(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reports r WHERE r.id = $1 AND r.user_id = $2`)).
		WithArgs(55, 7).
		WillReturnRows(sqlmock.NewRows(reportRowColumns).AddRow(
			55, 7, nil, 85.0, `{"investigative":80}`, `null`,
			`[{"career_id":1,"title":"Data Scientist","category":"Technology","stream":"Science","match_percentage":81.5,"salary_range":"","growth":""}]`,
			"summary", `["a"]`, `["b"]`, "generated", now, nil, nil,
		))

	r, err := store.Reports.GetForStudent(context.Background(), 55, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(55), r.ID)
	assert.Equal(t, map[string]float64{"investigative": 80}, r.InterestProfile)
	assert.Nil(t, r.PersonalityProfile)
	require.Len(t, r.RecommendedCareers, 1)
	assert.Equal(t, "Data Scientist", r.RecommendedCareers[0].Title)
	assert.Equal(t, []string{"a"}, r.Strengths)
	assert.Nil(t, r.ReviewedAt)
	assert.Empty(t, r.StudentName)
}

func TestReportStore_GetWithStudent(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	cols := append(append([]string{}, reportRowColumns...), "name", "email")
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users u ON r.user_id = u.id WHERE r.id = $1`)).
		WithArgs(55).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			55, 7, "Career Report", nil, nil, nil, nil, "s", nil, nil, "reviewed", now, now, 3, "Asha", "asha@example.com",
		))

	r, err := store.Reports.GetWithStudent(context.Background(), 55)
	require.NoError(t, err)
	assert.Equal(t, "Asha", r.StudentName)
	assert.Equal(t, "asha@example.com", r.StudentEmail)
	assert.Nil(t, r.AptitudeScore)
	assert.Equal(t, []recommendation.RecommendationEntry{}, r.RecommendedCareers)
	assert.Equal(t, []string{}, r.Strengths)
	require.NotNil(t, r.ReviewedBy)
	assert.Equal(t, int64(3), *r.ReviewedBy)
}

func TestReportStore_GetNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("FROM reports r WHERE r.id").WillReturnError(sql.ErrNoRows)

	_, err := store.Reports.GetForStudent(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportStore_Lists(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reports WHERE user_id = $1 ORDER BY generated_at DESC`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_title", "aptitude_score", "status", "generated_at", "reviewed_at"}).
			AddRow(2, nil, 70.0, "generated", now, nil).
			AddRow(1, nil, nil, "reviewed", now.Add(-time.Hour), now))

	mine, err := store.Reports.ListForStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(2), mine[0].ID)
	assert.NotNil(t, mine[1].ReviewedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reports r JOIN users u ON r.user_id = u.id ORDER BY r.generated_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "report_title", "aptitude_score", "status", "generated_at", "reviewed_at", "name", "email"}))

	all, err := store.Reports.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_MarkReviewed(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE reports SET status = 'reviewed', reviewed_by = $1, reviewed_at = NOW() WHERE id = $2`)).
		WithArgs(3, 55).
		WillReturnRows(sqlmock.NewRows([]string{"reviewed_at"}).AddRow(now))

	at, err := store.Reports.MarkReviewed(context.Background(), 55, 3)
	require.NoError(t, err)
	assert.Equal(t, now, at)

	mock.ExpectQuery("UPDATE reports").WithArgs(3, 56).WillReturnRows(sqlmock.NewRows([]string{"reviewed_at"}))
	_, err = store.Reports.MarkReviewed(context.Background(), 56, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_GetContact(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, phone FROM users WHERE id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).AddRow(7, "Asha", "asha@example.com", nil))

	c, err := store.Users.GetContact(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Asha", c.Name)
	assert.Equal(t, "", c.Phone)

	mock.ExpectQuery("FROM users").WithArgs(8).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}))
	_, err = store.Users.GetContact(context.Background(), 8)
	assert.ErrorIs(t, err, ErrNotFound)
}
