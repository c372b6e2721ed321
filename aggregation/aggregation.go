// Package aggregation computes the descriptive grouped sums over the sales
// dataset: revenue and transaction counts by store, category, hour and
// weekday, plus the daily series the forecaster consumes. Every grouping
// partitions the same rows, so each breakdown sums to the dataset total.
package aggregation

import (
	"fmt"
	"sort"
	"time"

	"mavenroasters/dataset"
	"mavenroasters/model"
)

func newRow(key string) model.AggregateRow {
	return model.AggregateRow{Key: key}
}

func finalize(rows []model.AggregateRow) []model.AggregateRow {
	for i := range rows {
		if rows[i].Transactions > 0 {
			rows[i].AvgTransaction = rows[i].Revenue / float64(rows[i].Transactions)
		}
	}
	return rows
}

// RevenueByStore reports every known store, including stores with no
// transactions, in store id order.
func RevenueByStore(t *dataset.Table) []model.AggregateRow {
	idx := make(map[string]int, len(t.StoreNames))
	rows := make([]model.AggregateRow, 0, len(t.StoreNames))
	for i, name := range t.StoreNames {
		idx[name] = i
		rows = append(rows, newRow(name))
	}
	for i, store := range t.Stores {
		j := idx[store]
		rows[j].Revenue += t.Revenue[i]
		rows[j].Transactions++
	}
	return finalize(rows)
}

func RevenueByCategory(t *dataset.Table) []model.AggregateRow {
	idx := make(map[string]int, len(t.CategoryNames))
	rows := make([]model.AggregateRow, 0, len(t.CategoryNames))
	for i, name := range t.CategoryNames {
		idx[name] = i
		rows = append(rows, newRow(name))
	}
	for i, category := range t.Categories {
		j := idx[category]
		rows[j].Revenue += t.Revenue[i]
		rows[j].Transactions++
	}
	return finalize(rows)
}

// RevenueByHour always reports all 24 hours; closed hours show zero.
func RevenueByHour(t *dataset.Table) []model.AggregateRow {
	rows := make([]model.AggregateRow, 24)
	for h := 0; h < 24; h++ {
		rows[h] = newRow(fmt.Sprintf("%02d", h))
	}
	for i, h := range t.Hours {
		rows[h].Revenue += t.Revenue[i]
		rows[h].Transactions++
	}
	return finalize(rows)
}

// RevenueByWeekday reports Monday through Sunday, all seven present.
func RevenueByWeekday(t *dataset.Table) []model.AggregateRow {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	idx := make(map[time.Weekday]int, len(order))
	rows := make([]model.AggregateRow, 0, len(order))
	for i, wd := range order {
		idx[wd] = i
		rows = append(rows, newRow(wd.String()))
	}
	for i, wd := range t.Weekdays {
		j := idx[wd]
		rows[j].Revenue += t.Revenue[i]
		rows[j].Transactions++
	}
	return finalize(rows)
}

// DailySeries sums revenue, transactions and items sold per calendar day,
// sorted by date. Only observed days appear; the forecaster works off the
// day index, so gaps are handled there.
func DailySeries(t *dataset.Table) []model.DailyPoint {
	type acc struct {
		revenue      float64
		transactions int
		items        int
	}
	byDay := map[time.Time]*acc{}
	for i, d := range t.Dates {
		a, ok := byDay[d]
		if !ok {
			a = &acc{}
			byDay[d] = a
		}
		a.revenue += t.Revenue[i]
		a.transactions++
		a.items += int(t.Quantities[i])
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]model.DailyPoint, 0, len(days))
	for _, d := range days {
		a := byDay[d]
		series = append(series, model.DailyPoint{
			Date:         d.Format("2006-01-02"),
			Revenue:      a.revenue,
			Transactions: a.transactions,
			ItemsSold:    a.items,
		})
	}
	return series
}

// StoreDailyMeans reports each store's mean revenue over the days it
// traded, keyed by store name.
func StoreDailyMeans(t *dataset.Table) map[string]float64 {
	type key struct {
		store string
		day   time.Time
	}
	byStoreDay := map[key]float64{}
	for i := range t.Revenue {
		k := key{store: t.Stores[i], day: t.Dates[i]}
		byStoreDay[k] += t.Revenue[i]
	}

	sums := map[string]float64{}
	days := map[string]int{}
	for k, revenue := range byStoreDay {
		sums[k.store] += revenue
		days[k.store]++
	}

	means := make(map[string]float64, len(sums))
	for store, sum := range sums {
		means[store] = sum / float64(days[store])
	}
	return means
}

func Totals(t *dataset.Table) model.AggregateTotals {
	totals := model.AggregateTotals{
		TotalRevenue:     t.TotalRevenue(),
		TransactionCount: t.Len(),
		Days:             t.DistinctDays(),
	}
	if totals.TransactionCount > 0 {
		totals.AvgTransaction = totals.TotalRevenue / float64(totals.TransactionCount)
		totals.FirstDate = t.FirstDate.Format("2006-01-02")
		totals.LastDate = t.LastDate.Format("2006-01-02")
	}
	return totals
}

// Report assembles the full descriptive feed.
func Report(t *dataset.Table) model.AggregateReport {
	return model.AggregateReport{
		Totals:     Totals(t),
		ByStore:    RevenueByStore(t),
		ByCategory: RevenueByCategory(t),
		ByHour:     RevenueByHour(t),
		ByWeekday:  RevenueByWeekday(t),
		Daily:      DailySeries(t),
	}
}
