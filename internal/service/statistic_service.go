package service

import (
	"context"

	"emojifeedback/internal/entity"
)

type StatisticService struct {
	stats StatisticStore
}

func NewStatisticService(stats StatisticStore) *StatisticService {
	return &StatisticService{stats: stats}
}

func (s *StatisticService) Statistics(ctx context.Context, f entity.FeedbackFilter) (*entity.Statistics, error) {
	return s.stats.Statistics(ctx, f)
}

func (s *StatisticService) Export(ctx context.Context, f entity.FeedbackFilter) ([]entity.CourseFeedback, error) {
	return s.stats.Export(ctx, f)
}

// ChartData - данные для графиков на странице статистики
type ChartData struct {
	EmojiChart Series `json:"emoji_chart"`
	DateChart  Series `json:"date_chart"`
	Total      int    `json:"total"`
}

type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

func NewChartData(stats *entity.Statistics) ChartData {
	data := ChartData{
		EmojiChart: Series{Labels: make([]string, 0), Values: make([]int, 0)},
		DateChart:  Series{Labels: make([]string, 0), Values: make([]int, 0)},
		Total:      stats.Total,
	}
	for _, c := range stats.EmojiCounts {
		data.EmojiChart.Labels = append(data.EmojiChart.Labels, c.Label)
		data.EmojiChart.Values = append(data.EmojiChart.Values, c.Count)
	}
	for _, c := range stats.DateCounts {
		data.DateChart.Labels = append(data.DateChart.Labels, c.Date.Format(entity.DateLayout))
		data.DateChart.Values = append(data.DateChart.Values, c.Count)
	}
	return data
}
