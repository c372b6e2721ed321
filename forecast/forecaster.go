// Package forecast builds the daily revenue time series, fits the linear
// revenue model and extrapolates it over a fixed horizon. The model is the
// one the project documents: a plain OLS over calendar features. Its
// explanatory power on this dataset is weak and is reported as-is.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"mavenroasters/aggregation"
	"mavenroasters/dataset"
	"mavenroasters/model"
)

// ErrInsufficientHistory is returned when fewer than 2 distinct days of
// data exist; a regression over a single day is undefined, not degenerate.
var ErrInsufficientHistory = errors.New("insufficient history: need at least 2 distinct days of data")

var featureNames = []string{"day_number", "day_of_week", "is_weekend"}

type Forecaster struct {
	Horizon         int
	MAWindow        int
	HoldoutFraction float64
	logger          *zap.Logger
}

func NewForecaster(horizon, maWindow int, holdoutFraction float64, logger *zap.Logger) *Forecaster {
	if horizon <= 0 {
		horizon = 7
	}
	if maWindow <= 0 {
		maWindow = 7
	}
	if holdoutFraction <= 0 || holdoutFraction >= 1 {
		holdoutFraction = 0.2
	}
	return &Forecaster{
		Horizon:         horizon,
		MAWindow:        maWindow,
		HoldoutFraction: holdoutFraction,
		logger:          logger,
	}
}

// Run fits the trend and the full calendar model over the daily series and
// produces the fixed-horizon forecast with holdout error metrics.
func (f *Forecaster) Run(t *dataset.Table) (*model.ForecastReport, error) {
	daily := aggregation.DailySeries(t)
	if len(daily) < 2 {
		return nil, ErrInsufficientHistory
	}

	dates, err := parseDates(daily)
	if err != nil {
		return nil, err
	}
	first := dates[0]

	n := len(daily)
	dayNumbers := make([]float64, n)
	revenue := make([]float64, n)
	features := make([][]float64, n)
	for i := range daily {
		dayNumbers[i] = daysSince(first, dates[i])
		revenue[i] = daily[i].Revenue
		features[i] = featureRow(first, dates[i])
	}

	report := &model.ForecastReport{
		Days:      n,
		StartDate: daily[0].Date,
		EndDate:   daily[n-1].Date,
		MAWindow:  f.MAWindow,
	}

	report.Trend = fitTrend(dayNumbers, revenue)
	report.MovingAvg = maSeries(daily, f.MAWindow)
	report.MovingAvgWide = maSeries(daily, 2*f.MAWindow)

	coeffs, metrics := f.fitWithHoldout(features, revenue)
	if coeffs == nil {
		// Too few days for the calendar model; extrapolate the trend line.
		coeffs = []float64{report.Trend.Intercept, report.Trend.SlopePerDay, 0, 0}
		f.logger.Warn("calendar model not fitted, forecasting from trend line",
			zap.Int("days", n))
	}
	report.Model = model.RegressionModel{
		Intercept:    coeffs[0],
		Features:     featureNames,
		Coefficients: coeffs[1:],
	}
	report.Metrics = metrics

	last := dates[n-1]
	for i := 1; i <= f.Horizon; i++ {
		date := last.AddDate(0, 0, i)
		pred := predict(coeffs, featureRow(first, date))
		report.Forecast = append(report.Forecast, model.ForecastPoint{
			Date:             date.Format("2006-01-02"),
			DayName:          date.Weekday().String(),
			PredictedRevenue: pred,
		})
		report.ForecastTotal += pred
	}
	report.ForecastAvg = report.ForecastTotal / float64(f.Horizon)

	report.StoreForecasts = storeForecasts(t)

	f.logger.Info("forecast completed",
		zap.Int("days", n),
		zap.Int("horizon", f.Horizon),
		zap.Float64("trendSlopePerDay", report.Trend.SlopePerDay),
		zap.String("metricsStatus", report.Metrics.Status))
	return report, nil
}

// fitWithHoldout fits the calendar model on a chronological training slice
// and evaluates on the held-out tail. When the series is too short to
// split, it fits the full series and flags the metrics. A nil coefficient
// slice means even the full fit was impossible.
func (f *Forecaster) fitWithHoldout(features [][]float64, revenue []float64) ([]float64, model.ModelMetrics) {
	n := len(revenue)
	minFit := len(featureNames) + 1

	nTest := int(math.Round(f.HoldoutFraction * float64(n)))
	nTrain := n - nTest

	if nTest >= 2 && nTrain >= minFit {
		coeffs, err := fitOLS(features[:nTrain], revenue[:nTrain])
		if err == nil {
			trainPred := predictAll(coeffs, features[:nTrain])
			testPred := predictAll(coeffs, features[nTrain:])
			return coeffs, model.ModelMetrics{
				Status:    model.StatusOK,
				TrainDays: nTrain,
				TestDays:  nTest,
				TrainMAE:  meanAbsError(revenue[:nTrain], trainPred),
				TestMAE:   meanAbsError(revenue[nTrain:], testPred),
				TrainRMSE: rootMeanSqError(revenue[:nTrain], trainPred),
				TestRMSE:  rootMeanSqError(revenue[nTrain:], testPred),
				TrainR2:   rSquared(revenue[:nTrain], trainPred),
				TestR2:    rSquared(revenue[nTrain:], testPred),
			}
		}
		f.logger.Warn("training fit failed, falling back to full series", zap.Error(err))
	}

	metrics := model.ModelMetrics{Status: model.StatusInsufficientData, TrainDays: n}
	coeffs, err := fitOLS(features, revenue)
	if err != nil {
		return nil, metrics
	}
	pred := predictAll(coeffs, features)
	metrics.TrainMAE = meanAbsError(revenue, pred)
	metrics.TrainRMSE = rootMeanSqError(revenue, pred)
	metrics.TrainR2 = rSquared(revenue, pred)
	return coeffs, metrics
}

func fitTrend(dayNumbers, revenue []float64) model.TrendSummary {
	alpha, beta := stat.LinearRegression(dayNumbers, revenue, nil, false)
	r2 := stat.RSquared(dayNumbers, revenue, nil, alpha, beta)

	summary := model.TrendSummary{
		SlopePerDay:   beta,
		Intercept:     alpha,
		RSquared:      r2,
		MonthlyImpact: beta * 30,
	}
	if mean := stat.Mean(revenue, nil); mean != 0 {
		summary.PctPerDay = beta / mean * 100
	}
	return summary
}

func predictAll(coeffs []float64, features [][]float64) []float64 {
	out := make([]float64, len(features))
	for i, row := range features {
		out[i] = predict(coeffs, row)
	}
	return out
}

func featureRow(first, date time.Time) []float64 {
	weekend := 0.0
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		weekend = 1.0
	}
	return []float64{
		daysSince(first, date),
		float64(date.Weekday()),
		weekend,
	}
}

func maSeries(daily []model.DailyPoint, window int) []model.SeriesPoint {
	revenue := make([]float64, len(daily))
	for i, p := range daily {
		revenue[i] = p.Revenue
	}
	ma := TrailingMovingAverage(revenue, window)
	out := make([]model.SeriesPoint, 0, len(ma))
	for i, v := range ma {
		out = append(out, model.SeriesPoint{Date: daily[i+window-1].Date, Value: v})
	}
	return out
}

func storeForecasts(t *dataset.Table) []model.StoreForecast {
	means := aggregation.StoreDailyMeans(t)
	out := make([]model.StoreForecast, 0, len(means))
	for store, mean := range means {
		out = append(out, model.StoreForecast{
			Store:           store,
			AvgDailyRevenue: mean,
			WeeklyForecast:  mean * 7,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeeklyForecast > out[j].WeeklyForecast })
	return out
}

func parseDates(daily []model.DailyPoint) ([]time.Time, error) {
	dates := make([]time.Time, len(daily))
	for i, p := range daily {
		d, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q in daily series: %w", p.Date, err)
		}
		dates[i] = d
	}
	return dates, nil
}

func daysSince(first, date time.Time) float64 {
	return math.Round(date.Sub(first).Hours() / 24)
}
