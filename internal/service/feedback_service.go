package service

import (
	"context"
	"strings"
	"time"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
	"emojifeedback/internal/logger"
)

type FeedbackService struct {
	feedback FeedbackStore
	now      Clock
}

func NewFeedbackService(feedback FeedbackStore) *FeedbackService {
	return &FeedbackService{feedback: feedback, now: time.Now}
}

// Submit сохраняет отзыв. Проверка записи на курс и обе вставки выполняются
// хранилищем в одной транзакции.
func (s *FeedbackService) Submit(ctx context.Context, userID, courseID int, emoji, comment string) (int, error) {
	if courseID <= 0 || emoji == "" {
		return 0, apperrors.NewValidationError("please choose a course and an emoji")
	}

	label, ok := entity.EmojiLabel(emoji)
	if !ok {
		return 0, apperrors.NewValidationError("unknown emoji")
	}

	sub := entity.NewSubmission(userID, courseID, emoji, label, strings.TrimSpace(comment), s.now())
	id, err := s.feedback.Submit(ctx, sub)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrorTypeNotEnrolled) && !apperrors.Is(err, apperrors.ErrorTypeSubmissionFailed) {
			err = apperrors.NewSubmissionFailedError(err)
		}
		logger.FromContext(ctx).Warn().Err(err).Int("course_id", courseID).Msg("feedback rejected")
		return 0, err
	}

	// без user_id: запись анонимна
	logger.FromContext(ctx).Info().Int("course_id", courseID).Str("emoji", label).Msg("feedback submitted")
	return id, nil
}

// History - только для самого автора
func (s *FeedbackService) History(ctx context.Context, userID int) ([]entity.CourseFeedback, error) {
	return s.feedback.History(ctx, userID)
}

func (s *FeedbackService) CourseRecords(ctx context.Context, courseID int, rng *entity.DateRange) ([]entity.FeedbackRecord, error) {
	return s.feedback.CourseRecords(ctx, courseID, rng)
}

func (s *FeedbackService) AllRecords(ctx context.Context, limit int) ([]entity.CourseFeedback, error) {
	if limit <= 0 {
		return nil, apperrors.NewValidationError("limit must be positive")
	}
	return s.feedback.All(ctx, limit)
}
