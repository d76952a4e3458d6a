package entity

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// FeedbackRecord - анонимная запись: в ней нет id пользователя
type FeedbackRecord struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"course_id"`
	Emoji       string    `json:"emoji"`
	EmojiLabel  string    `json:"emoji_label"`
	SessionDate time.Time `json:"session_date"`
	SessionTime time.Time `json:"session_time"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r FeedbackRecord) DateFormatted() string {
	return r.SessionDate.Format(DateLayout)
}

func (r FeedbackRecord) TimeFormatted() string {
	if r.SessionTime.IsZero() {
		return ""
	}
	return r.SessionTime.Format(TimeLayout)
}

// CourseFeedback - запись вместе с названием и кодом курса
type CourseFeedback struct {
	FeedbackRecord
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
}

// Submission is what a student sends; UserID only ever reaches the attribution table.
type Submission struct {
	UserID      int
	CourseID    int
	Emoji       string
	EmojiLabel  string
	Comment     string
	SubmittedAt time.Time
}

func NewSubmission(userID, courseID int, emoji, label, comment string, at time.Time) Submission {
	return Submission{
		UserID:      userID,
		CourseID:    courseID,
		Emoji:       emoji,
		EmojiLabel:  label,
		Comment:     comment,
		SubmittedAt: at,
	}
}
