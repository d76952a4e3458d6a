package entity

import "time"

// DateRange is an inclusive interval of session dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

func NewDateRange(from, to time.Time) *DateRange {
	return &DateRange{From: truncateDay(from), To: truncateDay(to)}
}

// LastDays - интервал от (now - days) до now включительно
func LastDays(now time.Time, days int) *DateRange {
	return NewDateRange(now.AddDate(0, 0, -days), now)
}

func (d *DateRange) Contains(t time.Time) bool {
	day := truncateDay(t)
	return !day.Before(d.From) && !day.After(d.To)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FeedbackFilter - оба условия необязательны, пустой фильтр выбирает всё
type FeedbackFilter struct {
	CourseID *int
	Range    *DateRange
}

func NewFeedbackFilter(courseID int, rng *DateRange) FeedbackFilter {
	f := FeedbackFilter{Range: rng}
	if courseID > 0 {
		f.CourseID = &courseID
	}
	return f
}

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Label string `json:"emoji_label"`
	Count int    `json:"count"`
}

type DateCount struct {
	Date  time.Time `json:"session_date"`
	Count int       `json:"count"`
}

type Statistics struct {
	EmojiCounts []EmojiCount `json:"emoji_counts"`
	DateCounts  []DateCount  `json:"date_counts"`
	Total       int          `json:"total"`
}
