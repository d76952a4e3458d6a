package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"emojifeedback/internal/entity"
)

// StatisticRepository считает агрегаты только по feedback_records,
// без таблицы авторов.
type StatisticRepository struct {
	db *sql.DB
}

func NewStatisticRepository(db *sql.DB) *StatisticRepository {
	return &StatisticRepository{db: db}
}

// Statistics - количество по эмодзи (по убыванию), по датам (новые сверху) и общее
func (r *StatisticRepository) Statistics(ctx context.Context, f entity.FeedbackFilter) (*entity.Statistics, error) {
	where := filterExpressions(f)
	stats := &entity.Statistics{
		EmojiCounts: make([]entity.EmojiCount, 0),
		DateCounts:  make([]entity.DateCount, 0),
	}

	// при равенстве раньше идёт эмодзи, который встретился первым
	emojiQuery, args, err := recordsFrom().
		Select(
			goqu.I("fr.emoji"),
			goqu.I("fr.emoji_label"),
			goqu.COUNT(goqu.Star()).As("count"),
		).
		Where(where...).
		GroupBy(goqu.I("fr.emoji"), goqu.I("fr.emoji_label")).
		Order(goqu.C("count").Desc(), goqu.MIN(goqu.I("fr.id")).Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build emoji statistics query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, emojiQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("emoji statistics: %w", err)
	}
	for rows.Next() {
		var c entity.EmojiCount
		if err := rows.Scan(&c.Emoji, &c.Label, &c.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan emoji statistics: %w", err)
		}
		stats.EmojiCounts = append(stats.EmojiCounts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("emoji statistics: %w", err)
	}

	dateQuery, args, err := recordsFrom().
		Select(
			goqu.I("fr.session_date"),
			goqu.COUNT(goqu.Star()).As("count"),
		).
		Where(where...).
		GroupBy(goqu.I("fr.session_date")).
		Order(goqu.I("fr.session_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build date statistics query: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, dateQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("date statistics: %w", err)
	}
	for rows.Next() {
		var c entity.DateCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan date statistics: %w", err)
		}
		stats.DateCounts = append(stats.DateCounts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("date statistics: %w", err)
	}

	totalQuery, args, err := recordsFrom().
		Select(goqu.COUNT(goqu.Star())).
		Where(where...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build total query: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, totalQuery, args...).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("total statistics: %w", err)
	}

	return stats, nil
}

// Export - записи вместе с курсом для выгрузки в таблицу
func (r *StatisticRepository) Export(ctx context.Context, f entity.FeedbackFilter) ([]entity.CourseFeedback, error) {
	query, args, err := recordsWithCourse().
		Where(filterExpressions(f)...).
		Order(goqu.I("fr.session_date").Desc(), goqu.I("fr.session_time").Desc(), goqu.I("fr.id").Desc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build export query: %w", err)
	}

	return queryCourseFeedback(ctx, r.db, query, args)
}
