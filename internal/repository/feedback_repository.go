package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
)

// FeedbackRepository - журнал отзывов. Таблица feedback_attributions
// читается только в History: остальные запросы её не касаются.
type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

var recordColumns = []interface{}{
	goqu.I("fr.id"),
	goqu.I("fr.course_id"),
	goqu.I("fr.emoji"),
	goqu.I("fr.emoji_label"),
	goqu.I("fr.session_date"),
	goqu.I("fr.session_time"),
	goqu.I("fr.comment"),
	goqu.I("fr.created_at"),
}

var courseFeedbackColumns = append(append([]interface{}{}, recordColumns...),
	goqu.I("c.course_name"),
	goqu.I("c.course_code"),
)

func recordsFrom() *goqu.SelectDataset {
	return dialect.From(goqu.T("feedback_records").As("fr")).Prepared(true)
}

func recordsWithCourse() *goqu.SelectDataset {
	return recordsFrom().
		InnerJoin(goqu.T("courses").As("c"), goqu.On(goqu.I("fr.course_id").Eq(goqu.I("c.id")))).
		Select(courseFeedbackColumns...)
}

// Submit вставляет анонимную запись и связь с автором в одной транзакции.
// Проверка записи на курс идёт внутри той же транзакции.
func (r *FeedbackRepository) Submit(ctx context.Context, sub entity.Submission) (id int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewSubmissionFailedError(fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	enrolled, err := enrollmentExists(ctx, tx, sub.UserID, sub.CourseID)
	if err != nil {
		return 0, apperrors.NewSubmissionFailedError(err)
	}
	if !enrolled {
		return 0, apperrors.NewNotEnrolledError(sub.UserID, sub.CourseID)
	}

	query, args, err := dialect.Insert("feedback_records").Prepared(true).
		Rows(goqu.Record{
			"course_id":    sub.CourseID,
			"emoji":        sub.Emoji,
			"emoji_label":  sub.EmojiLabel,
			"session_date": sub.SubmittedAt.Format(entity.DateLayout),
			"session_time": sub.SubmittedAt.Format(entity.TimeLayout),
			"comment":      nullString(sub.Comment),
			"created_at":   sub.SubmittedAt,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return 0, apperrors.NewSubmissionFailedError(fmt.Errorf("build record insert: %w", err))
	}

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperrors.NewSubmissionFailedError(fmt.Errorf("insert record: %w", err))
	}

	query, args, err = dialect.Insert("feedback_attributions").Prepared(true).
		Rows(goqu.Record{
			"user_id":            sub.UserID,
			"feedback_record_id": id,
		}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewSubmissionFailedError(fmt.Errorf("build attribution insert: %w", err))
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return 0, apperrors.NewSubmissionFailedError(fmt.Errorf("insert attribution: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return 0, apperrors.NewSubmissionFailedError(fmt.Errorf("commit: %w", err))
	}

	return id, nil
}

// History - собственные отзывы пользователя, новые сверху
func (r *FeedbackRepository) History(ctx context.Context, userID int) ([]entity.CourseFeedback, error) {
	query, args, err := recordsWithCourse().
		InnerJoin(goqu.T("feedback_attributions").As("fa"), goqu.On(goqu.I("fa.feedback_record_id").Eq(goqu.I("fr.id")))).
		Where(goqu.I("fa.user_id").Eq(userID)).
		Order(goqu.I("fr.created_at").Desc(), goqu.I("fr.id").Desc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	return queryCourseFeedback(ctx, r.db, query, args)
}

// CourseRecords - анонимные записи курса, rng == nil означает все даты
func (r *FeedbackRepository) CourseRecords(ctx context.Context, courseID int, rng *entity.DateRange) ([]entity.FeedbackRecord, error) {
	filter := entity.FeedbackFilter{CourseID: &courseID, Range: rng}

	query, args, err := recordsFrom().
		Select(recordColumns...).
		Where(filterExpressions(filter)...).
		Order(goqu.I("fr.session_date").Desc(), goqu.I("fr.session_time").Desc(), goqu.I("fr.id").Desc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build course records query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list course records: %w", err)
	}
	defer rows.Close()

	records := make([]entity.FeedbackRecord, 0)
	for rows.Next() {
		var rec entity.FeedbackRecord
		if err := scanRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// All - последние limit записей по всем курсам
func (r *FeedbackRepository) All(ctx context.Context, limit int) ([]entity.CourseFeedback, error) {
	query, args, err := recordsWithCourse().
		Order(goqu.I("fr.created_at").Desc(), goqu.I("fr.id").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build records query: %w", err)
	}

	return queryCourseFeedback(ctx, r.db, query, args)
}

func queryCourseFeedback(ctx context.Context, db *sql.DB, query string, args []interface{}) ([]entity.CourseFeedback, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]entity.CourseFeedback, 0)
	for rows.Next() {
		var rec entity.CourseFeedback
		if err := scanRecord(rows, &rec.FeedbackRecord, &rec.CourseName, &rec.CourseCode); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// filterExpressions - условия по курсу и по датам, оба необязательные
func filterExpressions(f entity.FeedbackFilter) []exp.Expression {
	exps := make([]exp.Expression, 0, 2)
	if f.CourseID != nil {
		exps = append(exps, goqu.I("fr.course_id").Eq(*f.CourseID))
	}
	if f.Range != nil {
		exps = append(exps, goqu.I("fr.session_date").Between(goqu.Range(
			f.Range.From.Format(entity.DateLayout),
			f.Range.To.Format(entity.DateLayout),
		)))
	}
	return exps
}

func scanRecord(row rowScanner, rec *entity.FeedbackRecord, extra ...interface{}) error {
	var comment sql.NullString

	dest := []interface{}{
		&rec.ID,
		&rec.CourseID,
		&rec.Emoji,
		&rec.EmojiLabel,
		&rec.SessionDate,
		&rec.SessionTime,
		&comment,
		&rec.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	rec.Comment = comment.String
	return nil
}
