package service

import (
	"context"
	"fmt"
	"strings"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
	"emojifeedback/internal/logger"
)

type CourseService struct {
	courses CourseStore
}

func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

type CourseInput struct {
	Name        string
	Code        string
	Description string
	Semester    string
	// учитывается только для администратора
	TeacherID int
}

// Create - курс преподавателя принадлежит ему самому, админ может указать преподавателя
func (s *CourseService) Create(ctx context.Context, actor *entity.User, in CourseInput) (*entity.Course, error) {
	if !actor.Can(entity.CapManageCourses) {
		return nil, apperrors.NewForbiddenError("only teachers and admins can create courses")
	}

	c := &entity.Course{
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.TrimSpace(in.Code),
		Description: strings.TrimSpace(in.Description),
		Semester:    strings.TrimSpace(in.Semester),
		TeacherID:   actor.ID,
		IsActive:    true,
	}
	if c.Name == "" || c.Code == "" {
		return nil, apperrors.NewValidationError("course name and code are required")
	}
	if actor.Can(entity.CapViewAllCourses) && in.TeacherID > 0 {
		c.TeacherID = in.TeacherID
	}

	id, err := s.courses.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	logger.FromContext(ctx).Info().Int("course_id", id).Int("teacher_id", c.TeacherID).Msg("course created")
	return c, nil
}

func (s *CourseService) Get(ctx context.Context, id int) (*entity.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// Visible - курсы, которые видит пользователь в админке: преподаватель только свои
func (s *CourseService) Visible(ctx context.Context, actor *entity.User) ([]entity.Course, error) {
	if actor.Can(entity.CapViewAllCourses) {
		return s.courses.ListActive(ctx, nil)
	}
	id := actor.ID
	return s.courses.ListActive(ctx, &id)
}

func (s *CourseService) ListActive(ctx context.Context) ([]entity.Course, error) {
	return s.courses.ListActive(ctx, nil)
}

func (s *CourseService) StudentCourses(ctx context.Context, userID int) ([]entity.Course, error) {
	return s.courses.ListForStudent(ctx, userID)
}

func (s *CourseService) Deactivate(ctx context.Context, actor *entity.User, courseID int) error {
	if !actor.Can(entity.CapManageCourses) {
		return apperrors.NewForbiddenError("only teachers and admins can manage courses")
	}

	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("course %d not found", courseID))
	}
	if !actor.Can(entity.CapViewAllCourses) && c.TeacherID != actor.ID {
		return apperrors.NewForbiddenError("course belongs to another teacher")
	}

	if err := s.courses.Deactivate(ctx, courseID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int("course_id", courseID).Int("by", actor.ID).Msg("course deactivated")
	return nil
}

// Enroll - повторная запись не ошибка, а статус EnrollAlreadyEnrolled
func (s *CourseService) Enroll(ctx context.Context, userID, courseID int) (entity.EnrollResult, error) {
	if courseID <= 0 {
		return 0, apperrors.NewValidationError("course is required")
	}

	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if c == nil || !c.IsActive {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("course %d not found", courseID))
	}

	result, err := s.courses.Enroll(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info().
		Int("user_id", userID).
		Int("course_id", courseID).
		Stringer("result", result).
		Msg("enrollment")
	return result, nil
}

func (s *CourseService) IsEnrolled(ctx context.Context, userID, courseID int) (bool, error) {
	return s.courses.IsEnrolled(ctx, userID, courseID)
}
