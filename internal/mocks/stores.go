// Package mocks holds testify mocks of the service stores.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"emojifeedback/internal/entity"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, u *entity.User) (int, error) {
	args := m.Called(ctx, u)
	return args.Int(0), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id int) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserStore) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserStore) UpdatePasswordHash(ctx context.Context, id int, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *UserStore) List(ctx context.Context, role *entity.Role) ([]entity.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *UserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type CourseStore struct {
	mock.Mock
}

func (m *CourseStore) Create(ctx context.Context, c *entity.Course) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func (m *CourseStore) GetByID(ctx context.Context, id int) (*entity.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Course)
	return c, args.Error(1)
}

func (m *CourseStore) ListActive(ctx context.Context, teacherID *int) ([]entity.Course, error) {
	args := m.Called(ctx, teacherID)
	courses, _ := args.Get(0).([]entity.Course)
	return courses, args.Error(1)
}

func (m *CourseStore) ListForStudent(ctx context.Context, userID int) ([]entity.Course, error) {
	args := m.Called(ctx, userID)
	courses, _ := args.Get(0).([]entity.Course)
	return courses, args.Error(1)
}

func (m *CourseStore) Deactivate(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CourseStore) Enroll(ctx context.Context, userID, courseID int) (entity.EnrollResult, error) {
	args := m.Called(ctx, userID, courseID)
	res, _ := args.Get(0).(entity.EnrollResult)
	return res, args.Error(1)
}

func (m *CourseStore) IsEnrolled(ctx context.Context, userID, courseID int) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

type FeedbackStore struct {
	mock.Mock
}

func (m *FeedbackStore) Submit(ctx context.Context, sub entity.Submission) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}

func (m *FeedbackStore) History(ctx context.Context, userID int) ([]entity.CourseFeedback, error) {
	args := m.Called(ctx, userID)
	records, _ := args.Get(0).([]entity.CourseFeedback)
	return records, args.Error(1)
}

func (m *FeedbackStore) CourseRecords(ctx context.Context, courseID int, rng *entity.DateRange) ([]entity.FeedbackRecord, error) {
	args := m.Called(ctx, courseID, rng)
	records, _ := args.Get(0).([]entity.FeedbackRecord)
	return records, args.Error(1)
}

func (m *FeedbackStore) All(ctx context.Context, limit int) ([]entity.CourseFeedback, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]entity.CourseFeedback)
	return records, args.Error(1)
}

type StatisticStore struct {
	mock.Mock
}

func (m *StatisticStore) Statistics(ctx context.Context, f entity.FeedbackFilter) (*entity.Statistics, error) {
	args := m.Called(ctx, f)
	stats, _ := args.Get(0).(*entity.Statistics)
	return stats, args.Error(1)
}

func (m *StatisticStore) Export(ctx context.Context, f entity.FeedbackFilter) ([]entity.CourseFeedback, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]entity.CourseFeedback)
	return rows, args.Error(1)
}
