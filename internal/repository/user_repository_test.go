package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
)

var userRowColumns = []string{"id", "username", "password_hash", "role", "full_name", "email", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, err := repo.Create(context.Background(), &entity.User{
		Username:     "anna",
		PasswordHash: "hash",
		Role:         entity.RoleStudent,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &entity.User{Username: "anna", Role: entity.RoleStudent})

	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(db)

	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users"`)).
		WithArgs("anna").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(5, "anna", "hash", "teacher", "Anna K", nil, created))

	u, err := repo.GetByUsername(context.Background(), "anna")

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleTeacher, u.Role)
	assert.Equal(t, "Anna K", u.FullName)
	assert.Equal(t, "", u.Email)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users"`)).
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByID(context.Background(), 404)

	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "password_hash"=`)).
		WithArgs("newhash", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdatePasswordHash(context.Background(), 5, "newhash"))

	err := repo.UpdatePasswordHash(context.Background(), 404, "x")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	db, mock, matcher := newMockDB(t)
	repo := NewUserRepository(db)

	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users"`)).
		WithArgs("student").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "a", "h", "student", nil, nil, created).
			AddRow(2, "b", "h", "student", "B", "b@example.com", created))

	role := entity.RoleStudent
	users, err := repo.List(context.Background(), &role)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[1].Email)
	for _, q := range matcher.Queries() {
		assert.Contains(t, q, `"role"`)
	}
}

func TestUserRepository_Count(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, n)
}
