package entity

import "time"

type Course struct {
	ID          int       `json:"id"`
	Name        string    `json:"course_name"`
	Code        string    `json:"course_code"`
	TeacherID   int       `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	Description string    `json:"description"`
	Semester    string    `json:"semester"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Enrollment struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	CourseID   int       `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrollResult - результат записи на курс
type EnrollResult int

const (
	EnrollSuccess EnrollResult = iota
	EnrollAlreadyEnrolled
)

func (r EnrollResult) String() string {
	switch r {
	case EnrollSuccess:
		return "success"
	case EnrollAlreadyEnrolled:
		return "already_enrolled"
	default:
		return "unknown"
	}
}
