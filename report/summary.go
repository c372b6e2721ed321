package report

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mavenroasters/aggregation"
	"mavenroasters/config"
	"mavenroasters/dataset"
	"mavenroasters/forecast"
	"mavenroasters/model"
	"mavenroasters/stats"
)

const significanceLevel = 0.05

// SummaryReportHandler writes the plain-text analysis summary.
func SummaryReportHandler(holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := holder.Get()
		if t == nil || t.Len() == 0 {
			http.Error(w, "No dataset loaded", http.StatusServiceUnavailable)
			return
		}

		agg := aggregation.Report(t)
		tests := stats.NewAnalyzer(logger).Run(t)

		cfg := config.GetConfig()
		f := forecast.NewForecaster(cfg.ForecastHorizonDays, cfg.MovingAverageWindow, cfg.HoldoutFraction, logger)
		fc, err := f.Run(t)
		if err != nil && !errors.Is(err, forecast.ErrInsufficientHistory) {
			http.Error(w, "Failed to compute forecast: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		WriteSummary(w, agg, tests, fc)
	}
}

// WriteSummary renders the aggregate, test and forecast artifacts as the
// text report the dashboard links to. A nil forecast means the history was
// too short for any model.
func WriteSummary(w io.Writer, agg model.AggregateReport, tests []model.TestResult, fc *model.ForecastReport) {
	p := message.NewPrinter(language.English)
	rule := "======================================================================\n"

	p.Fprintf(w, "%s", rule)
	p.Fprintf(w, "MAVEN ROASTERS - SALES ANALYSIS SUMMARY\n")
	p.Fprintf(w, "%s", rule)

	p.Fprintf(w, "\nPeriod: %s to %s (%d days)\n", agg.Totals.FirstDate, agg.Totals.LastDate, agg.Totals.Days)
	p.Fprintf(w, "Transactions: %d\n", agg.Totals.TransactionCount)
	p.Fprintf(w, "Total revenue: $%.2f\n", agg.Totals.TotalRevenue)
	p.Fprintf(w, "Average transaction: $%.2f\n", agg.Totals.AvgTransaction)

	p.Fprintf(w, "\n--- Revenue by store ---\n")
	for _, row := range agg.ByStore {
		p.Fprintf(w, "%-24s $%.2f  (%d transactions)\n", row.Key, row.Revenue, row.Transactions)
	}

	p.Fprintf(w, "\n--- Revenue by category ---\n")
	for _, row := range agg.ByCategory {
		p.Fprintf(w, "%-24s $%.2f  (%d transactions)\n", row.Key, row.Revenue, row.Transactions)
	}

	p.Fprintf(w, "\n--- Hypothesis tests (alpha = %.2f) ---\n", significanceLevel)
	for _, test := range tests {
		switch test.Status {
		case model.StatusOK:
			verdict := "not significant"
			if test.PValue < significanceLevel {
				verdict = "SIGNIFICANT"
			}
			p.Fprintf(w, "%-55s stat=%.4f  p=%.6f  %s\n", test.Name, test.Statistic, test.PValue, verdict)
		default:
			p.Fprintf(w, "%-55s [%s] %s\n", test.Name, test.Status, test.Detail)
		}
	}

	p.Fprintf(w, "\n--- Forecast ---\n")
	if fc == nil {
		p.Fprintf(w, "insufficient history: need at least 2 distinct days of data\n")
		return
	}

	direction := "GROWING"
	if fc.Trend.SlopePerDay < 0 {
		direction = "DECLINING"
	}
	p.Fprintf(w, "Revenue trend: $%.2f per day (%.3f%% per day, %s)\n",
		fc.Trend.SlopePerDay, fc.Trend.PctPerDay, direction)
	p.Fprintf(w, "Monthly impact: $%.2f\n", fc.Trend.MonthlyImpact)

	if fc.Metrics.Status == model.StatusOK {
		p.Fprintf(w, "Model performance: test MAE $%.2f, test RMSE $%.2f, test R2 %.3f (train %d / test %d days)\n",
			fc.Metrics.TestMAE, fc.Metrics.TestRMSE, fc.Metrics.TestR2, fc.Metrics.TrainDays, fc.Metrics.TestDays)
	} else {
		p.Fprintf(w, "Model performance: holdout metrics unavailable (%s), train MAE $%.2f over %d days\n",
			fc.Metrics.Status, fc.Metrics.TrainMAE, fc.Metrics.TrainDays)
	}

	p.Fprintf(w, "\nNext %d days:\n", len(fc.Forecast))
	for _, point := range fc.Forecast {
		p.Fprintf(w, "  %s (%s): $%.2f\n", point.Date, point.DayName, point.PredictedRevenue)
	}
	p.Fprintf(w, "Total forecasted revenue: $%.2f (avg $%.2f per day)\n", fc.ForecastTotal, fc.ForecastAvg)

	p.Fprintf(w, "\nNext week by store:\n")
	for _, sf := range fc.StoreForecasts {
		p.Fprintf(w, "  %-24s $%.2f\n", sf.Store, sf.WeeklyForecast)
	}
}
