package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emojifeedback/internal/entity"
	"emojifeedback/internal/mocks"
)

func TestStatisticService_Statistics(t *testing.T) {
	store := new(mocks.StatisticStore)
	s := NewStatisticService(store)

	f := entity.NewFeedbackFilter(3, nil)
	store.On("Statistics", mock.Anything, f).Return(&entity.Statistics{Total: 4}, nil)

	stats, err := s.Statistics(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	store.AssertExpectations(t)
}

func TestNewChartData(t *testing.T) {
	stats := &entity.Statistics{
		EmojiCounts: []entity.EmojiCount{
			{Emoji: "😊", Label: "happy", Count: 3},
			{Emoji: "😢", Label: "sad", Count: 1},
		},
		DateCounts: []entity.DateCount{
			{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Count: 4},
		},
		Total: 4,
	}

	data := NewChartData(stats)

	assert.Equal(t, []string{"happy", "sad"}, data.EmojiChart.Labels)
	assert.Equal(t, []int{3, 1}, data.EmojiChart.Values)
	assert.Equal(t, []string{"2024-03-15"}, data.DateChart.Labels)
	assert.Equal(t, []int{4}, data.DateChart.Values)
	assert.Equal(t, 4, data.Total)
}

func TestNewChartData_Empty(t *testing.T) {
	data := NewChartData(&entity.Statistics{})

	assert.NotNil(t, data.EmojiChart.Labels)
	assert.Empty(t, data.EmojiChart.Labels)
	assert.Zero(t, data.Total)
}
