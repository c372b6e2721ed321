// Package dataset holds the immutable in-memory sales table shared by the
// aggregation, testing and forecasting stages. Columns are parallel slices
// so the batch passes stay a straight walk over flat arrays; no stage
// mutates the table after Build.
package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"mavenroasters/database"
	"mavenroasters/model"
)

type Table struct {
	Dates      []time.Time
	DayIndex   []int // days since FirstDate
	Hours      []int
	Weekdays   []time.Weekday
	StoreIDs   []int
	Stores     []string
	Categories []string
	Quantities []float64
	UnitPrices []float64
	Revenue    []float64

	// Distinct reference values. StoreNames follows store id order so the
	// three stores always report in the same sequence; categories are
	// alphabetical.
	StoreNames    []string
	CategoryNames []string

	FirstDate time.Time
	LastDate  time.Time
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Build constructs the columnar table from joined sales records. Input is
// assumed clean (the loader already rejected malformed rows); an unparsable
// date or time here is still an error, never a silently dropped row.
func Build(records []model.SalesRecord) (*Table, error) {
	t := &Table{
		Dates:      make([]time.Time, 0, len(records)),
		DayIndex:   make([]int, 0, len(records)),
		Hours:      make([]int, 0, len(records)),
		Weekdays:   make([]time.Weekday, 0, len(records)),
		StoreIDs:   make([]int, 0, len(records)),
		Stores:     make([]string, 0, len(records)),
		Categories: make([]string, 0, len(records)),
		Quantities: make([]float64, 0, len(records)),
		UnitPrices: make([]float64, 0, len(records)),
		Revenue:    make([]float64, 0, len(records)),
	}

	storeByID := map[int]string{}
	categorySet := map[string]bool{}

	for _, rec := range records {
		date, err := time.Parse(dateLayout, rec.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: invalid date %q: %w", rec.TransactionID, rec.TransactionDate, err)
		}
		clock, err := time.Parse(timeLayout, rec.TransactionTime)
		if err != nil {
			// some exports drop the seconds
			clock, err = time.Parse("15:04", rec.TransactionTime)
			if err != nil {
				return nil, fmt.Errorf("transaction %d: invalid time %q", rec.TransactionID, rec.TransactionTime)
			}
		}

		t.Dates = append(t.Dates, date)
		t.Hours = append(t.Hours, clock.Hour())
		t.Weekdays = append(t.Weekdays, date.Weekday())
		t.StoreIDs = append(t.StoreIDs, rec.StoreID)
		t.Stores = append(t.Stores, rec.StoreLocation)
		t.Categories = append(t.Categories, rec.ProductCategory)
		t.Quantities = append(t.Quantities, float64(rec.Quantity))
		t.UnitPrices = append(t.UnitPrices, rec.UnitPrice)
		t.Revenue = append(t.Revenue, rec.TotalAmount)

		if t.FirstDate.IsZero() || date.Before(t.FirstDate) {
			t.FirstDate = date
		}
		if date.After(t.LastDate) {
			t.LastDate = date
		}
		storeByID[rec.StoreID] = rec.StoreLocation
		categorySet[rec.ProductCategory] = true
	}

	for _, date := range t.Dates {
		t.DayIndex = append(t.DayIndex, dayIndex(t.FirstDate, date))
	}

	storeIDs := make([]int, 0, len(storeByID))
	for id := range storeByID {
		storeIDs = append(storeIDs, id)
	}
	sort.Ints(storeIDs)
	for _, id := range storeIDs {
		t.StoreNames = append(t.StoreNames, storeByID[id])
	}
	for c := range categorySet {
		t.CategoryNames = append(t.CategoryNames, c)
	}
	sort.Strings(t.CategoryNames)

	return t, nil
}

// Load reads the joined sales table from the database and builds the
// in-memory dataset.
func Load(conn *sqlx.DB) (*Table, error) {
	records, err := database.SelectJoinedSales(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales records: %w", err)
	}
	return Build(records)
}

func (t *Table) Len() int {
	return len(t.Revenue)
}

func (t *Table) TotalRevenue() float64 {
	var sum float64
	for _, v := range t.Revenue {
		sum += v
	}
	return sum
}

// DistinctDays counts the calendar days that have at least one transaction.
func (t *Table) DistinctDays() int {
	seen := map[time.Time]bool{}
	for _, d := range t.Dates {
		seen[d] = true
	}
	return len(seen)
}

func dayIndex(first, date time.Time) int {
	return int(date.Sub(first).Hours() / 24)
}
