package aggregation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mavenroasters/dataset"
	"mavenroasters/model"
)

func buildTable(t *testing.T, records []model.SalesRecord) *dataset.Table {
	t.Helper()
	table, err := dataset.Build(records)
	require.NoError(t, err)
	return table
}

func record(id int, date, clock string, storeID int, store string, category string, qty int, price float64) model.SalesRecord {
	return model.SalesRecord{
		TransactionID:   id,
		TransactionDate: date,
		TransactionTime: clock,
		Quantity:        qty,
		StoreID:         storeID,
		StoreLocation:   store,
		ProductCategory: category,
		UnitPrice:       price,
		TotalAmount:     float64(qty) * price,
	}
}

// syntheticRecords spreads transactions across stores, categories, hours
// and days deterministically.
func syntheticRecords(n int) []model.SalesRecord {
	stores := []struct {
		id   int
		name string
	}{{3, "Astoria"}, {5, "Lower Manhattan"}, {8, "Hell's Kitchen"}}
	categories := []string{"Coffee", "Tea", "Bakery", "Drinking Chocolate"}

	records := make([]model.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		s := stores[i%len(stores)]
		day := i%28 + 1
		records = append(records, record(
			i+1,
			fmt.Sprintf("2023-06-%02d", day),
			fmt.Sprintf("%02d:30:00", 6+i%14),
			s.id, s.name,
			categories[i%len(categories)],
			i%3+1,
			2.0+float64(i%5)*0.75,
		))
	}
	return records
}

func TestRevenueByStoreConcrete(t *testing.T) {
	table := buildTable(t, []model.SalesRecord{
		record(1, "2023-06-01", "09:00:00", 1, "A", "Coffee", 1, 10),
		record(2, "2023-06-01", "10:00:00", 1, "A", "Coffee", 1, 20),
		record(3, "2023-06-01", "11:00:00", 2, "B", "Tea", 1, 5),
	})

	rows := RevenueByStore(table)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Key)
	assert.InDelta(t, 30, rows[0].Revenue, 1e-9)
	assert.Equal(t, "B", rows[1].Key)
	assert.InDelta(t, 5, rows[1].Revenue, 1e-9)
	assert.InDelta(t, 35, Totals(table).TotalRevenue, 1e-9)
}

func TestPartitionConsistency(t *testing.T) {
	table := buildTable(t, syntheticRecords(200))
	total := table.TotalRevenue()

	for name, rows := range map[string][]model.AggregateRow{
		"store":    RevenueByStore(table),
		"category": RevenueByCategory(table),
		"hour":     RevenueByHour(table),
		"weekday":  RevenueByWeekday(table),
	} {
		var sumRevenue float64
		var sumCount int
		for _, row := range rows {
			sumRevenue += row.Revenue
			sumCount += row.Transactions
		}
		assert.InDelta(t, total, sumRevenue, 1e-6, "revenue partition by %s", name)
		assert.Equal(t, table.Len(), sumCount, "count partition by %s", name)
	}

	var dailySum float64
	for _, p := range DailySeries(table) {
		dailySum += p.Revenue
	}
	assert.InDelta(t, total, dailySum, 1e-6)
}

func TestEmptyGroupsReportZero(t *testing.T) {
	table := buildTable(t, []model.SalesRecord{
		record(1, "2023-06-05", "09:00:00", 1, "A", "Coffee", 1, 10),
	})

	byHour := RevenueByHour(table)
	require.Len(t, byHour, 24)
	assert.InDelta(t, 10, byHour[9].Revenue, 1e-9)
	assert.Zero(t, byHour[15].Revenue)
	assert.Zero(t, byHour[15].Transactions)

	byWeekday := RevenueByWeekday(table)
	require.Len(t, byWeekday, 7)
	assert.Equal(t, "Monday", byWeekday[0].Key) // 2023-06-05 is a Monday
	assert.InDelta(t, 10, byWeekday[0].Revenue, 1e-9)
	assert.Zero(t, byWeekday[3].Revenue)
}

func TestDailySeriesSortedAndSummed(t *testing.T) {
	table := buildTable(t, []model.SalesRecord{
		record(1, "2023-06-02", "09:00:00", 1, "A", "Coffee", 2, 5),
		record(2, "2023-06-01", "10:00:00", 1, "A", "Coffee", 1, 10),
		record(3, "2023-06-02", "11:00:00", 1, "A", "Tea", 1, 3),
	})

	series := DailySeries(table)
	require.Len(t, series, 2)
	assert.Equal(t, "2023-06-01", series[0].Date)
	assert.InDelta(t, 10, series[0].Revenue, 1e-9)
	assert.Equal(t, "2023-06-02", series[1].Date)
	assert.InDelta(t, 13, series[1].Revenue, 1e-9)
	assert.Equal(t, 2, series[1].Transactions)
	assert.Equal(t, 3, series[1].ItemsSold)
}

func TestStoreDailyMeans(t *testing.T) {
	table := buildTable(t, []model.SalesRecord{
		record(1, "2023-06-01", "09:00:00", 1, "A", "Coffee", 1, 10),
		record(2, "2023-06-02", "09:00:00", 1, "A", "Coffee", 1, 20),
		record(3, "2023-06-01", "09:00:00", 2, "B", "Tea", 1, 6),
	})

	means := StoreDailyMeans(table)
	assert.InDelta(t, 15, means["A"], 1e-9)
	assert.InDelta(t, 6, means["B"], 1e-9)
}
