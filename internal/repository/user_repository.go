package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = []interface{}{"id", "username", "password_hash", "role", "full_name", "email", "created_at"}

// Create сохраняет пользователя и возвращает его id
func (r *UserRepository) Create(ctx context.Context, u *entity.User) (int, error) {
	query, args, err := dialect.Insert("users").Prepared(true).
		Rows(goqu.Record{
			"username":      u.Username,
			"password_hash": u.PasswordHash,
			"role":          string(u.Role),
			"full_name":     nullString(u.FullName),
			"email":         nullString(u.Email),
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build user insert: %w", err)
	}

	var id int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError("username already exists")
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

// GetByID возвращает nil, nil если пользователя нет
func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	return r.getOne(ctx, goqu.C("id").Eq(id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, goqu.C("username").Eq(username))
}

func (r *UserRepository) getOne(ctx context.Context, where exp.Expression) (*entity.User, error) {
	query, args, err := dialect.From("users").Prepared(true).
		Select(userColumns...).
		Where(where).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int, hash string) error {
	query, args, err := dialect.Update("users").Prepared(true).
		Set(goqu.Record{"password_hash": hash}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build password update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %d not found", id))
	}

	return nil
}

// List - все пользователи, если role == nil
func (r *UserRepository) List(ctx context.Context, role *entity.Role) ([]entity.User, error) {
	ds := dialect.From("users").Prepared(true).
		Select(userColumns...).
		Order(goqu.C("id").Asc())
	if role != nil {
		ds = ds.Where(goqu.C("role").Eq(string(*role)))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	query, args, err := dialect.From("users").Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build users count: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u               entity.User
		role            string
		fullName, email sql.NullString
	)

	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &fullName, &email, &u.CreatedAt); err != nil {
		return nil, err
	}

	u.Role = entity.Role(role)
	u.FullName = fullName.String
	u.Email = email.String
	return &u, nil
}
