package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"emojifeedback/internal/entity"
)

const (
	SheetName   = "Feedback"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []string{
	"course_name", "course_code", "emoji", "emoji_label",
	"session_date", "session_time", "comment", "created_at",
}

// FileName - имя файла выгрузки, например emoji_data_20240131_154500.xlsx
func FileName(now time.Time) string {
	return fmt.Sprintf("emoji_data_%s.xlsx", now.Format("20060102_150405"))
}

// WriteXLSX пишет записи одним листом: строка заголовков, затем по строке на запись
func WriteXLSX(w io.Writer, rows []entity.CourseFeedback) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, title := range header {
		if err := setCell(f, i+1, 1, title); err != nil {
			return err
		}
	}

	for r, rec := range rows {
		values := []interface{}{
			rec.CourseName,
			rec.CourseCode,
			rec.Emoji,
			rec.EmojiLabel,
			rec.DateFormatted(),
			rec.TimeFormatted(),
			rec.Comment,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for c, v := range values {
			if err := setCell(f, c+1, r+2, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
