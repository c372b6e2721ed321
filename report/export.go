// Package report renders the analysis artifacts for consumers outside the
// API: CSV exports of the aggregate tables and forecast, and a plain-text
// summary in the style of the project's written reports.
package report

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"mavenroasters/aggregation"
	"mavenroasters/config"
	"mavenroasters/dataset"
	"mavenroasters/forecast"
	"mavenroasters/model"
)

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeCSV(w http.ResponseWriter, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	w.Write(buf.Bytes())
}

// ExportAggregatesCSVHandler writes every grouped breakdown as one flat
// CSV: grouping, key, revenue, transactions.
func ExportAggregatesCSVHandler(holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := holder.Get()
		if t == nil || t.Len() == 0 {
			http.Error(w, "No dataset loaded", http.StatusServiceUnavailable)
			return
		}
		report := aggregation.Report(t)

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
		buf.WriteString("grouping,key,revenue,transactions\r\n")

		sections := []struct {
			name string
			rows []model.AggregateRow
		}{
			{"store", report.ByStore},
			{"category", report.ByCategory},
			{"hour", report.ByHour},
			{"weekday", report.ByWeekday},
		}
		for _, section := range sections {
			for _, row := range section.rows {
				record := []string{
					quoteAll(section.name),
					quoteAll(row.Key),
					fmt.Sprintf("%.2f", row.Revenue),
					fmt.Sprintf("%d", row.Transactions),
				}
				buf.WriteString(strings.Join(record, ",") + "\r\n")
			}
		}

		filename := fmt.Sprintf("aggregates_%s.csv", time.Now().Format("20060102"))
		writeCSV(w, filename, &buf)
		logger.Info("aggregates exported",
			zap.String("filename", filename), zap.Int("bytes", buf.Len()))
	}
}

// ExportForecastCSVHandler writes the (date, predicted revenue) sequence
// for plotting.
func ExportForecastCSVHandler(holder *dataset.Holder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := holder.Get()
		if t == nil || t.Len() == 0 {
			http.Error(w, "No dataset loaded", http.StatusServiceUnavailable)
			return
		}

		cfg := config.GetConfig()
		f := forecast.NewForecaster(cfg.ForecastHorizonDays, cfg.MovingAverageWindow, cfg.HoldoutFraction, logger)
		report, err := f.Run(t)
		if err != nil {
			logger.Error("forecast export failed", zap.Error(err))
			http.Error(w, "Failed to compute forecast: "+err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
		buf.WriteString("date,day,predicted_revenue\r\n")
		for _, p := range report.Forecast {
			record := []string{
				quoteAll(p.Date),
				quoteAll(p.DayName),
				fmt.Sprintf("%.2f", p.PredictedRevenue),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		filename := fmt.Sprintf("forecast_%s.csv", time.Now().Format("20060102"))
		writeCSV(w, filename, &buf)
		logger.Info("forecast exported",
			zap.String("filename", filename), zap.Int("bytes", buf.Len()))
	}
}
