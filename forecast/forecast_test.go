package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mavenroasters/dataset"
	"mavenroasters/model"
)

// dailyTable builds a table with exactly one transaction per day starting
// 2023-06-01, where qty=1 and unit price equals the wanted daily revenue.
func dailyTable(t *testing.T, revenue []float64) *dataset.Table {
	t.Helper()
	first := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.SalesRecord, 0, len(revenue))
	for i, r := range revenue {
		date := first.AddDate(0, 0, i)
		records = append(records, model.SalesRecord{
			TransactionID:   i + 1,
			TransactionDate: date.Format("2006-01-02"),
			TransactionTime: "09:00:00",
			Quantity:        1,
			StoreID:         1,
			StoreLocation:   "Astoria",
			ProductCategory: "Coffee",
			UnitPrice:       r,
			TotalAmount:     r,
		})
	}
	table, err := dataset.Build(records)
	require.NoError(t, err)
	return table
}

func TestTrailingMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{2, 3, 4}, TrailingMovingAverage([]float64{1, 2, 3, 4, 5}, 3))
	assert.Nil(t, TrailingMovingAverage([]float64{1, 2}, 3))
	assert.Nil(t, TrailingMovingAverage(nil, 7))
	assert.Equal(t, []float64{1, 2, 3}, TrailingMovingAverage([]float64{1, 2, 3}, 1))
}

func TestFitOLSRecoversLine(t *testing.T) {
	// y = 3 + 2x
	x := [][]float64{{0}, {1}, {2}, {3}, {4}}
	y := []float64{3, 5, 7, 9, 11}
	coeffs, err := fitOLS(x, y)
	require.NoError(t, err)
	require.Len(t, coeffs, 2)
	assert.InDelta(t, 3, coeffs[0], 1e-9)
	assert.InDelta(t, 2, coeffs[1], 1e-9)
}

// A least-squares fit with an intercept has zero-mean residuals, so the
// fitted surface passes through the point of means even on noisy data.
func TestFitOLSPassesThroughMeans(t *testing.T) {
	n := 40
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{float64(i), float64(i % 7), float64(i % 2)}
		y[i] = 100 + 2*float64(i) + 15*math.Sin(1.3*float64(i))
	}
	coeffs, err := fitOLS(x, y)
	require.NoError(t, err)

	meanRow := make([]float64, len(x[0]))
	var meanY float64
	for i := range x {
		for j, v := range x[i] {
			meanRow[j] += v
		}
		meanY += y[i]
	}
	for j := range meanRow {
		meanRow[j] /= float64(n)
	}
	meanY /= float64(n)

	assert.InDelta(t, meanY, predict(coeffs, meanRow), 1e-8)
}

func TestFitOLSTooFewObservations(t *testing.T) {
	_, err := fitOLS([][]float64{{1, 2, 3}}, []float64{5})
	require.Error(t, err)
}

func TestRunConstantSeries(t *testing.T) {
	revenue := make([]float64, 7)
	for i := range revenue {
		revenue[i] = 100
	}
	table := dailyTable(t, revenue)

	report, err := NewForecaster(7, 7, 0.2, zap.NewNop()).Run(table)
	require.NoError(t, err)

	assert.Equal(t, 7, report.Days)
	assert.Equal(t, "2023-06-01", report.StartDate)
	assert.Equal(t, "2023-06-07", report.EndDate)

	// flat series: zero slope, intercept at the level
	assert.InDelta(t, 0, report.Trend.SlopePerDay, 1e-9)
	assert.InDelta(t, 100, report.Trend.Intercept, 1e-9)

	require.Len(t, report.MovingAvg, 1)
	assert.InDelta(t, 100, report.MovingAvg[0].Value, 1e-9)
	assert.Empty(t, report.MovingAvgWide)

	// 7 days is too short for a holdout split
	assert.Equal(t, model.StatusInsufficientData, report.Metrics.Status)
	assert.Equal(t, 7, report.Metrics.TrainDays)
	assert.InDelta(t, 0, report.Metrics.TrainMAE, 1e-6)

	require.Len(t, report.Forecast, 7)
	assert.Equal(t, "2023-06-08", report.Forecast[0].Date)
	assert.Equal(t, "Thursday", report.Forecast[0].DayName)
	for _, p := range report.Forecast {
		assert.InDelta(t, 100, p.PredictedRevenue, 1e-6)
	}
	assert.InDelta(t, 700, report.ForecastTotal, 1e-5)
	assert.InDelta(t, 100, report.ForecastAvg, 1e-6)

	require.Len(t, report.StoreForecasts, 1)
	assert.Equal(t, "Astoria", report.StoreForecasts[0].Store)
	assert.InDelta(t, 700, report.StoreForecasts[0].WeeklyForecast, 1e-9)
}

func TestRunLinearSeriesWithHoldout(t *testing.T) {
	// exactly representable by the calendar model: trend plus weekend bump
	first := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	revenue := make([]float64, 60)
	for i := range revenue {
		revenue[i] = 100 + 2*float64(i)
		d := first.AddDate(0, 0, i)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			revenue[i] += 10
		}
	}
	table := dailyTable(t, revenue)

	report, err := NewForecaster(7, 7, 0.2, zap.NewNop()).Run(table)
	require.NoError(t, err)

	assert.Equal(t, model.StatusOK, report.Metrics.Status)
	assert.Equal(t, 48, report.Metrics.TrainDays)
	assert.Equal(t, 12, report.Metrics.TestDays)
	assert.InDelta(t, 0, report.Metrics.TrainMAE, 1e-6)
	assert.InDelta(t, 0, report.Metrics.TestMAE, 1e-6)
	assert.InDelta(t, 1, report.Metrics.TrainR2, 1e-6)
	assert.InDelta(t, 1, report.Metrics.TestR2, 1e-6)

	assert.Equal(t, featureNames, report.Model.Features)
	require.Len(t, report.Model.Coefficients, len(featureNames))
	assert.InDelta(t, 2, report.Model.Coefficients[0], 1e-6)

	assert.Greater(t, report.Trend.SlopePerDay, 1.5)
	assert.Greater(t, report.Trend.RSquared, 0.9)

	require.Len(t, report.Forecast, 7)
	// day 60 continues the pattern
	want := 100 + 2*float64(60)
	d := first.AddDate(0, 0, 60)
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		want += 10
	}
	assert.InDelta(t, want, report.Forecast[0].PredictedRevenue, 1e-4)

	require.Len(t, report.MovingAvg, 60-7+1)
	require.Len(t, report.MovingAvgWide, 60-14+1)
}

func TestRunSingleDayInsufficient(t *testing.T) {
	table := dailyTable(t, []float64{42})
	_, err := NewForecaster(7, 7, 0.2, zap.NewNop()).Run(table)
	require.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestRunTrendFallbackOnShortSeries(t *testing.T) {
	// 3 days cannot fit the calendar model; the trend line carries the forecast
	table := dailyTable(t, []float64{100, 110, 120})
	report, err := NewForecaster(2, 7, 0.2, zap.NewNop()).Run(table)
	require.NoError(t, err)

	assert.Equal(t, model.StatusInsufficientData, report.Metrics.Status)
	require.Len(t, report.Forecast, 2)
	assert.InDelta(t, 130, report.Forecast[0].PredictedRevenue, 1e-6)
	assert.InDelta(t, 140, report.Forecast[1].PredictedRevenue, 1e-6)
}

func TestRSquaredConstantActual(t *testing.T) {
	assert.Equal(t, 1.0, rSquared([]float64{5, 5, 5}, []float64{5, 5, 5}))
	assert.Equal(t, 0.0, rSquared([]float64{5, 5, 5}, []float64{4, 5, 6}))
}
