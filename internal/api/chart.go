package api

import (
	"math"

	"hrdash/internal/models"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// barChart builds a single-series bar config. Values are rounded to two
// decimals for display only; the underlying data keeps full precision.
func barChart(title, xAxis, yAxis string, points []models.ChartPoint) *models.ChartConfig {
	if len(points) == 0 {
		return nil
	}
	for i := range points {
		points[i].Value = roundTo2(points[i].Value)
	}
	return &models.ChartConfig{
		ChartType:  "bar",
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []models.ChartSeries{{Name: title, Data: points}},
		Colors:     assignColors(1),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// stackedBarChart builds one series per cross-tab key over the bucket labels.
func stackedBarChart(title string, table models.ExperienceTable) *models.ChartConfig {
	if len(table.Series) == 0 {
		return nil
	}

	series := make([]models.ChartSeries, 0, len(table.Series))
	for i, s := range table.Series {
		points := make([]models.ChartPoint, len(table.Buckets))
		for j, bucket := range table.Buckets {
			points[j] = models.ChartPoint{Label: bucket, Value: float64(s.Counts[j])}
		}
		series = append(series, models.ChartSeries{
			Name:  s.Key,
			Data:  points,
			Color: defaultColors[i%len(defaultColors)],
		})
	}

	chartType := "stacked_bar"
	if len(series) == 1 {
		chartType = "bar"
	}
	return &models.ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      "Experience",
		YAxis:      "Count",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
