// internal/workers/careers/index-careers/handler_test.go
package indexcareers

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"career-compass/internal/catalog"
	"career-compass/internal/common/database"
	"career-compass/internal/common/errors"
	"career-compass/internal/common/logger"
	"career-compass/internal/recommendation"
	"career-compass/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var careerColumns = []string{"id", "title", "category", "stream", "description", "salary_range", "growth", "skills", "match_keywords"}

type fakeCluster struct {
	mu          sync.Mutex
	indexExists bool
	created     bool
	bulkLines   []string
	bulkStatus  int
	bulkReply   string
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version": {"number": "8.11.0"}}`)
	case r.Method == http.MethodHead && r.URL.Path == "/careers":
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/careers":
		f.created = true
		f.indexExists = true
		_, _ = io.WriteString(w, `{"acknowledged": true, "index": "careers"}`)
	case r.URL.Path == "/careers/_bulk":
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			f.bulkLines = append(f.bulkLines, scanner.Text())
		}
		if f.bulkStatus != 0 {
			w.WriteHeader(f.bulkStatus)
		}
		_, _ = io.WriteString(w, f.bulkReply)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, `{"error": "unexpected %s %s"}`, r.Method, r.URL.Path)
	}
}

func newTestES(t *testing.T, cluster *fakeCluster) *database.ElasticsearchClient {
	t.Helper()
	server := httptest.NewServer(cluster)
	t.Cleanup(server.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}, MaxRetries: 1})
	require.NoError(t, err)
	return &database.ElasticsearchClient{Client: es, Index: "careers"}
}

func createTestHandler(t *testing.T, db *sql.DB, rdb *redis.Client, es *database.ElasticsearchClient) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	cache := catalog.NewCache(rdb, repository.New(db).Careers, time.Minute, log)
	return NewHandler(&Config{Timeout: 5 * time.Second, Refresh: "wait_for"}, cache, es, log)
}

func expectCatalog(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM careers WHERE is_active = TRUE").
		WillReturnRows(sqlmock.NewRows(careerColumns).
			AddRow(1, "Software Engineer", "Technology", "Science", "Builds software", "8-25 LPA", "High", `["Go","SQL"]`, `["coding"]`).
			AddRow(2, "Chartered Accountant", "Finance", "Commerce", "Audits accounts", "7-20 LPA", "Stable", `["Accounting"]`, nil))
}

func TestHandler_Execute_CreatesIndexAndBulkLoads(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	expectCatalog(mock)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cluster := &fakeCluster{bulkReply: `{"took": 3, "errors": false, "items": [
		{"index": {"_id": "1", "status": 201}},
		{"index": {"_id": "2", "status": 200}}
	]}`}

	output, err := createTestHandler(t, db, rdb, newTestES(t, cluster)).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Output{Index: "careers", Indexed: 2, Errors: 0}, output)

	cluster.mu.Lock()
	defer cluster.mu.Unlock()

	assert.True(t, cluster.created)
	require.Len(t, cluster.bulkLines, 4)
	assert.JSONEq(t, `{"index": {"_id": "1"}}`, cluster.bulkLines[0])

	var doc recommendation.CareerDefinition
	require.NoError(t, json.Unmarshal([]byte(cluster.bulkLines[1]), &doc))
	assert.Equal(t, "Software Engineer", doc.Title)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Skills)

	assert.True(t, mr.Exists(catalog.DefaultKey), "index run should refresh the catalog cache")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CountsItemErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	expectCatalog(mock)

	cluster := &fakeCluster{indexExists: true, bulkReply: `{"took": 3, "errors": true, "items": [
		{"index": {"_id": "1", "status": 201}},
		{"index": {"_id": "2", "status": 400, "error": {"type": "mapper_parsing_exception", "reason": "failed to parse field [growth]"}}}
	]}`}

	output, err := createTestHandler(t, db, nil, newTestES(t, cluster)).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, output.Indexed)
	assert.Equal(t, 1, output.Errors)

	cluster.mu.Lock()
	defer cluster.mu.Unlock()
	assert.False(t, cluster.created)
}

func TestHandler_Execute_EmptyCatalogSkipsBulk(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("FROM careers").WillReturnRows(sqlmock.NewRows(careerColumns))

	cluster := &fakeCluster{indexExists: true}
	output, err := createTestHandler(t, db, nil, newTestES(t, cluster)).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, output.Indexed)

	cluster.mu.Lock()
	defer cluster.mu.Unlock()
	assert.Empty(t, cluster.bulkLines)
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("catalog query fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery("FROM careers").WillReturnError(fmt.Errorf("connection refused"))

		_, err = createTestHandler(t, db, nil, newTestES(t, &fakeCluster{})).Execute(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeCatalogLoadFailed, errors.Normalize(err).Code)
	})

	t.Run("bulk rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		expectCatalog(mock)

		cluster := &fakeCluster{indexExists: true, bulkStatus: http.StatusBadRequest, bulkReply: `{"error": {"type": "illegal_argument_exception"}}`}
		_, err = createTestHandler(t, db, nil, newTestES(t, cluster)).Execute(context.Background())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSearchQueryFailed, errors.Normalize(err).Code)
		assert.True(t, errors.Normalize(err).Retryable)
	})
}

func TestBulkBody(t *testing.T) {
	buf, err := bulkBody([]recommendation.CareerDefinition{{ID: 42, Title: "Pilot"}})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"index":{"_id":"42"}}`, lines[0])
	assert.Contains(t, lines[1], `"title":"Pilot"`)
}
