package model

// Result status tags. Edge cases are reported as distinguishable results
// instead of NaN: a test that cannot be run is still a row in the output.
const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
	StatusUndefined        = "undefined"
)

// AggregateRow is one group of a grouped sum, keyed by store, category,
// hour or weekday. Groups with no transactions are present with zeros.
type AggregateRow struct {
	Key            string  `json:"key"`
	Revenue        float64 `json:"revenue"`
	Transactions   int     `json:"transactions"`
	AvgTransaction float64 `json:"avgTransaction"`
}

type AggregateTotals struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TransactionCount int     `json:"transactionCount"`
	AvgTransaction   float64 `json:"avgTransaction"`
	FirstDate        string  `json:"firstDate"`
	LastDate         string  `json:"lastDate"`
	Days             int     `json:"days"`
}

// AggregateReport is the full dashboard feed of the descriptive stage.
type AggregateReport struct {
	Totals     AggregateTotals `json:"totals"`
	ByStore    []AggregateRow  `json:"byStore"`
	ByCategory []AggregateRow  `json:"byCategory"`
	ByHour     []AggregateRow  `json:"byHour"`
	ByWeekday  []AggregateRow  `json:"byWeekday"`
	Daily      []DailyPoint    `json:"daily"`
}

// DailyPoint is the daily grain of the sales data, the input of the
// forecasting stage.
type DailyPoint struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
	ItemsSold    int     `json:"itemsSold"`
}

// TestResult is one hypothesis test or correlation. PValue and the statistic
// are only meaningful when Status is "ok"; the caller decides significance.
type TestResult struct {
	Name             string  `json:"name"`
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"pValue"`
	DegreesOfFreedom float64 `json:"degreesOfFreedom,omitempty"`
	Status           string  `json:"status"`
	Detail           string  `json:"detail,omitempty"`
}
