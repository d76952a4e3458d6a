package repository

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// recordingMatcher запоминает каждый выполненный SQL, чтобы тесты могли
// проверить, какие таблицы запрос вообще трогает.
type recordingMatcher struct {
	mu      sync.Mutex
	queries []string
}

func (m *recordingMatcher) Match(expectedSQL, actualSQL string) error {
	m.mu.Lock()
	m.queries = append(m.queries, actualSQL)
	m.mu.Unlock()
	return sqlmock.QueryMatcherRegexp.Match(expectedSQL, actualSQL)
}

func (m *recordingMatcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *recordingMatcher) {
	t.Helper()

	matcher := &recordingMatcher{}
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherFunc(matcher.Match)))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock, matcher
}
