package service

import (
	"context"
	"time"

	"emojifeedback/internal/entity"
)

// Хранилища, которые нужны сервисам. Реализации - в пакете repository.

type UserStore interface {
	Create(ctx context.Context, u *entity.User) (int, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePasswordHash(ctx context.Context, id int, hash string) error
	List(ctx context.Context, role *entity.Role) ([]entity.User, error)
	Count(ctx context.Context) (int, error)
}

type CourseStore interface {
	Create(ctx context.Context, c *entity.Course) (int, error)
	GetByID(ctx context.Context, id int) (*entity.Course, error)
	ListActive(ctx context.Context, teacherID *int) ([]entity.Course, error)
	ListForStudent(ctx context.Context, userID int) ([]entity.Course, error)
	Deactivate(ctx context.Context, id int) error
	Enroll(ctx context.Context, userID, courseID int) (entity.EnrollResult, error)
	IsEnrolled(ctx context.Context, userID, courseID int) (bool, error)
}

type FeedbackStore interface {
	Submit(ctx context.Context, sub entity.Submission) (int, error)
	History(ctx context.Context, userID int) ([]entity.CourseFeedback, error)
	CourseRecords(ctx context.Context, courseID int, rng *entity.DateRange) ([]entity.FeedbackRecord, error)
	All(ctx context.Context, limit int) ([]entity.CourseFeedback, error)
}

type StatisticStore interface {
	Statistics(ctx context.Context, f entity.FeedbackFilter) (*entity.Statistics, error)
	Export(ctx context.Context, f entity.FeedbackFilter) ([]entity.CourseFeedback, error)
}

// Clock returns the current time; tests replace it.
type Clock func() time.Time
