package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
)

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

var courseColumns = []interface{}{
	goqu.I("c.id"),
	goqu.I("c.course_name"),
	goqu.I("c.course_code"),
	goqu.I("c.teacher_id"),
	goqu.I("c.description"),
	goqu.I("c.semester"),
	goqu.I("c.is_active"),
	goqu.I("c.created_at"),
	goqu.COALESCE(goqu.I("u.full_name"), goqu.I("u.username"), "").As("teacher_name"),
}

// courses c LEFT JOIN users u - чтобы сразу получить имя преподавателя
func coursesWithTeacher() *goqu.SelectDataset {
	return dialect.From(goqu.T("courses").As("c")).Prepared(true).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("c.teacher_id").Eq(goqu.I("u.id")))).
		Select(courseColumns...)
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) (int, error) {
	record := goqu.Record{
		"course_name": c.Name,
		"course_code": c.Code,
		"description": nullString(c.Description),
		"semester":    nullString(c.Semester),
		"is_active":   true,
	}
	if c.TeacherID > 0 {
		record["teacher_id"] = c.TeacherID
	}

	query, args, err := dialect.Insert("courses").Prepared(true).
		Rows(record).
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build course insert: %w", err)
	}

	var id int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.NewValidationError("teacher does not exist")
		}
		return 0, fmt.Errorf("insert course: %w", err)
	}

	return id, nil
}

// GetByID возвращает nil, nil если курса нет
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*entity.Course, error) {
	query, args, err := coursesWithTeacher().
		Where(goqu.I("c.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	return c, nil
}

// ListActive - активные курсы; teacherID != nil оставляет только курсы этого преподавателя
func (r *CourseRepository) ListActive(ctx context.Context, teacherID *int) ([]entity.Course, error) {
	ds := coursesWithTeacher().
		Where(goqu.I("c.is_active").IsTrue()).
		Order(goqu.I("c.id").Asc())
	if teacherID != nil {
		ds = ds.Where(goqu.I("c.teacher_id").Eq(*teacherID))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build courses query: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListForStudent - активные курсы, на которые записан студент
func (r *CourseRepository) ListForStudent(ctx context.Context, userID int) ([]entity.Course, error) {
	query, args, err := coursesWithTeacher().
		InnerJoin(goqu.T("enrollments").As("e"), goqu.On(goqu.I("e.course_id").Eq(goqu.I("c.id")))).
		Where(
			goqu.I("e.user_id").Eq(userID),
			goqu.I("c.is_active").IsTrue(),
		).
		Order(goqu.I("c.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build student courses query: %w", err)
	}

	return r.list(ctx, query, args)
}

func (r *CourseRepository) list(ctx context.Context, query string, args []interface{}) ([]entity.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]entity.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *c)
	}

	return courses, rows.Err()
}

// Deactivate - мягкое удаление, записи о курсе остаются
func (r *CourseRepository) Deactivate(ctx context.Context, id int) error {
	query, args, err := dialect.Update("courses").Prepared(true).
		Set(goqu.Record{"is_active": false}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build course update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deactivate course: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("course %d not found", id))
	}

	return nil
}

// Enroll записывает студента на курс. Уникальный индекс (user_id, course_id)
// решает, была ли запись раньше.
func (r *CourseRepository) Enroll(ctx context.Context, userID, courseID int) (entity.EnrollResult, error) {
	query, args, err := dialect.Insert("enrollments").Prepared(true).
		Rows(goqu.Record{"user_id": userID, "course_id": courseID}).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build enrollment insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return entity.EnrollAlreadyEnrolled, nil
		case isForeignKeyViolation(err):
			return 0, apperrors.NewNotFoundError(fmt.Sprintf("course %d not found", courseID))
		}
		return 0, fmt.Errorf("insert enrollment: %w", err)
	}

	return entity.EnrollSuccess, nil
}

func (r *CourseRepository) IsEnrolled(ctx context.Context, userID, courseID int) (bool, error) {
	return enrollmentExists(ctx, r.db, userID, courseID)
}

// enrollmentExists is shared by IsEnrolled and the submission transaction.
func enrollmentExists(ctx context.Context, q queryer, userID, courseID int) (bool, error) {
	query, args, err := dialect.From("enrollments").Prepared(true).
		Select(goqu.L("1")).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("course_id").Eq(courseID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build enrollment query: %w", err)
	}

	var one int
	err = q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}

	return true, nil
}

func scanCourse(row rowScanner) (*entity.Course, error) {
	var (
		c                     entity.Course
		teacherID             sql.NullInt64
		description, semester sql.NullString
	)

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Code,
		&teacherID,
		&description,
		&semester,
		&c.IsActive,
		&c.CreatedAt,
		&c.TeacherName,
	)
	if err != nil {
		return nil, err
	}

	c.TeacherID = int(teacherID.Int64)
	c.Description = description.String
	c.Semester = semester.String
	return &c, nil
}
