package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mavenroasters/model"
)

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

func TestBuildDerivedColumns(t *testing.T) {
	records := []model.SalesRecord{
		record(1, "2023-06-01", "08:15:00", 3, "Astoria", "Coffee", 2, 3.00),
		record(2, "2023-06-03", "14:45:00", 5, "Lower Manhattan", "Tea", 1, 2.50),
		record(3, "2023-06-04", "19:05:00", 3, "Astoria", "Bakery", 3, 3.25),
	}

	table, err := Build(records)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	assert.Equal(t, []int{8, 14, 19}, table.Hours)
	assert.Equal(t, []int{0, 2, 3}, table.DayIndex)
	assert.Equal(t, time.Thursday, table.Weekdays[0])
	assert.Equal(t, time.Sunday, table.Weekdays[2])

	// store names ordered by id, categories alphabetical
	assert.Equal(t, []string{"Astoria", "Lower Manhattan"}, table.StoreNames)
	assert.Equal(t, []string{"Bakery", "Coffee", "Tea"}, table.CategoryNames)

	assert.Equal(t, "2023-06-01", table.FirstDate.Format("2006-01-02"))
	assert.Equal(t, "2023-06-04", table.LastDate.Format("2006-01-02"))
	assert.Equal(t, 3, table.DistinctDays())
	assert.InDelta(t, 2*3.00+2.50+3*3.25, table.TotalRevenue(), 1e-9)
}

func TestBuildRejectsInvalidDate(t *testing.T) {
	records := []model.SalesRecord{
		record(1, "06/01/2023", "08:15:00", 3, "Astoria", "Coffee", 1, 3.00),
	}
	_, err := Build(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestBuildAcceptsTimeWithoutSeconds(t *testing.T) {
	records := []model.SalesRecord{
		record(1, "2023-06-01", "08:15", 3, "Astoria", "Coffee", 1, 3.00),
	}
	table, err := Build(records)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, table.Hours)
}

func TestHolderSwap(t *testing.T) {
	a, err := Build(nil)
	require.NoError(t, err)
	holder := NewHolder(a)
	assert.Same(t, a, holder.Get())

	b, err := Build([]model.SalesRecord{
		record(1, "2023-06-01", "08:15:00", 3, "Astoria", "Coffee", 1, 3.00),
	})
	require.NoError(t, err)
	holder.Set(b)
	assert.Same(t, b, holder.Get())
}
