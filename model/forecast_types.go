package model

// TrendSummary is the simple revenue-vs-day-index regression.
type TrendSummary struct {
	SlopePerDay   float64 `json:"slopePerDay"`
	Intercept     float64 `json:"intercept"`
	RSquared      float64 `json:"rSquared"`
	PctPerDay     float64 `json:"pctPerDay"`
	MonthlyImpact float64 `json:"monthlyImpact"`
}

// RegressionModel holds the fitted coefficients of the full daily-revenue
// model, reported by feature name.
type RegressionModel struct {
	Intercept    float64   `json:"intercept"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
}

// ModelMetrics are holdout error metrics. Status is "insufficient_data"
// when the series is too short to split, in which case only the training
// figures over the full series are populated.
type ModelMetrics struct {
	Status    string  `json:"status"`
	TrainDays int     `json:"trainDays"`
	TestDays  int     `json:"testDays"`
	TrainMAE  float64 `json:"trainMAE"`
	TestMAE   float64 `json:"testMAE"`
	TrainRMSE float64 `json:"trainRMSE"`
	TestRMSE  float64 `json:"testRMSE"`
	TrainR2   float64 `json:"trainR2"`
	TestR2    float64 `json:"testR2"`
}

type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type ForecastPoint struct {
	Date             string  `json:"date"`
	DayName          string  `json:"dayName"`
	PredictedRevenue float64 `json:"predictedRevenue"`
}

type StoreForecast struct {
	Store           string  `json:"store"`
	AvgDailyRevenue float64 `json:"avgDailyRevenue"`
	WeeklyForecast  float64 `json:"weeklyForecast"`
}

// ForecastReport is the full output of the forecasting stage.
type ForecastReport struct {
	Days           int             `json:"days"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Trend          TrendSummary    `json:"trend"`
	Model          RegressionModel `json:"model"`
	Metrics        ModelMetrics    `json:"metrics"`
	MAWindow       int             `json:"maWindow"`
	MovingAvg      []SeriesPoint   `json:"movingAvg"`
	MovingAvgWide  []SeriesPoint   `json:"movingAvgWide"`
	Forecast       []ForecastPoint `json:"forecast"`
	ForecastTotal  float64         `json:"forecastTotal"`
	ForecastAvg    float64         `json:"forecastAvg"`
	StoreForecasts []StoreForecast `json:"storeForecasts"`
}
