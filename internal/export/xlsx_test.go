package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"emojifeedback/internal/entity"
)

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "emoji_data_20240305_140709.xlsx", FileName(at))
}

func TestWriteXLSX(t *testing.T) {
	rows := []entity.CourseFeedback{
		{
			FeedbackRecord: entity.FeedbackRecord{
				Emoji:       "😊",
				EmojiLabel:  "happy",
				SessionDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				SessionTime: time.Date(0, 1, 1, 10, 15, 0, 0, time.UTC),
				Comment:     "clear lecture",
				CreatedAt:   time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC),
			},
			CourseName: "Databases",
			CourseCode: "CS301",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, header, got[0])
	assert.Equal(t, []string{
		"Databases", "CS301", "😊", "happy", "2024-03-05", "10:15:00", "clear lecture", "2024-03-05 10:15:00",
	}, got[1])
}

func TestWriteXLSX_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
