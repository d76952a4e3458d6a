package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
	"emojifeedback/internal/mocks"
)

var (
	student = &entity.User{ID: 7, Username: "anna", Role: entity.RoleStudent}
	teacher = &entity.User{ID: 2, Username: "ivan", Role: entity.RoleTeacher}
	admin   = &entity.User{ID: 1, Username: "root", Role: entity.RoleAdmin}
)

func TestCourseService_Enroll(t *testing.T) {
	store := new(mocks.CourseStore)
	s := NewCourseService(store)

	store.On("GetByID", mock.Anything, 3).Return(&entity.Course{ID: 3, IsActive: true}, nil)
	store.On("Enroll", mock.Anything, 7, 3).Return(entity.EnrollSuccess, nil).Once()
	store.On("Enroll", mock.Anything, 7, 3).Return(entity.EnrollAlreadyEnrolled, nil).Once()

	res, err := s.Enroll(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.EnrollSuccess, res)

	res, err = s.Enroll(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.EnrollAlreadyEnrolled, res)
	assert.Equal(t, "already_enrolled", res.String())

	store.AssertExpectations(t)
}

func TestCourseService_Enroll_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		courseID int
		course   *entity.Course
		want     apperrors.ErrorType
	}{
		{name: "no course id", courseID: 0, want: apperrors.ErrorTypeValidation},
		{name: "missing course", courseID: 9, course: nil, want: apperrors.ErrorTypeNotFound},
		{name: "inactive course", courseID: 9, course: &entity.Course{ID: 9}, want: apperrors.ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.CourseStore)
			s := NewCourseService(store)
			store.On("GetByID", mock.Anything, tt.courseID).Return(tt.course, nil).Maybe()

			_, err := s.Enroll(context.Background(), 7, tt.courseID)

			assert.True(t, apperrors.Is(err, tt.want))
			store.AssertNotCalled(t, "Enroll", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCourseService_Create(t *testing.T) {
	t.Run("teacher owns the course", func(t *testing.T) {
		store := new(mocks.CourseStore)
		s := NewCourseService(store)
		store.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Course) bool {
			return c.TeacherID == teacher.ID && c.Name == "Go"
		})).Return(10, nil)

		c, err := s.Create(context.Background(), teacher, CourseInput{Name: " Go ", Code: "GO-101", TeacherID: 99})

		require.NoError(t, err)
		assert.Equal(t, 10, c.ID)
		assert.Equal(t, teacher.ID, c.TeacherID)
	})

	t.Run("admin assigns a teacher", func(t *testing.T) {
		store := new(mocks.CourseStore)
		s := NewCourseService(store)
		store.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Course) bool {
			return c.TeacherID == 2
		})).Return(11, nil)

		c, err := s.Create(context.Background(), admin, CourseInput{Name: "Go", Code: "GO-101", TeacherID: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, c.TeacherID)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		s := NewCourseService(new(mocks.CourseStore))

		_, err := s.Create(context.Background(), student, CourseInput{Name: "Go", Code: "GO"})

		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
	})

	t.Run("name and code required", func(t *testing.T) {
		s := NewCourseService(new(mocks.CourseStore))

		_, err := s.Create(context.Background(), teacher, CourseInput{Name: "Go"})

		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	})
}

func TestCourseService_Deactivate(t *testing.T) {
	store := new(mocks.CourseStore)
	s := NewCourseService(store)

	store.On("GetByID", mock.Anything, 3).Return(&entity.Course{ID: 3, TeacherID: 5, IsActive: true}, nil)
	store.On("GetByID", mock.Anything, 4).Return(&entity.Course{ID: 4, TeacherID: teacher.ID, IsActive: true}, nil)
	store.On("GetByID", mock.Anything, 5).Return(nil, nil)
	store.On("Deactivate", mock.Anything, 4).Return(nil)
	store.On("Deactivate", mock.Anything, 3).Return(nil)

	err := s.Deactivate(context.Background(), teacher, 3)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden), "teacher cannot touch another teacher's course")

	assert.NoError(t, s.Deactivate(context.Background(), teacher, 4))
	assert.NoError(t, s.Deactivate(context.Background(), admin, 3))

	err = s.Deactivate(context.Background(), admin, 5)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestCourseService_Visible(t *testing.T) {
	store := new(mocks.CourseStore)
	s := NewCourseService(store)

	teacherID := teacher.ID
	store.On("ListActive", mock.Anything, (*int)(nil)).Return([]entity.Course{{ID: 1}, {ID: 2}}, nil)
	store.On("ListActive", mock.Anything, &teacherID).Return([]entity.Course{{ID: 2}}, nil)

	all, err := s.Visible(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := s.Visible(context.Background(), teacher)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestCourseService_IsEnrolled(t *testing.T) {
	store := new(mocks.CourseStore)
	s := NewCourseService(store)
	store.On("IsEnrolled", mock.Anything, 7, 3).Return(false, errors.New("db down"))

	_, err := s.IsEnrolled(context.Background(), 7, 3)

	assert.Error(t, err)
}
