package report

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mavenroasters/dataset"
	"mavenroasters/model"
)

func exportTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.Build([]model.SalesRecord{
		{
			TransactionID:   1,
			TransactionDate: "2023-06-01",
			TransactionTime: "09:00:00",
			Quantity:        2,
			StoreID:         3,
			StoreLocation:   "Astoria",
			ProductCategory: "Coffee",
			UnitPrice:       3.00,
			TotalAmount:     6.00,
		},
		{
			TransactionID:   2,
			TransactionDate: "2023-06-02",
			TransactionTime: "14:00:00",
			Quantity:        1,
			StoreID:         5,
			StoreLocation:   "Lower Manhattan",
			ProductCategory: "Tea",
			UnitPrice:       2.50,
			TotalAmount:     2.50,
		},
	})
	require.NoError(t, err)
	return table
}

func TestExportAggregatesCSV(t *testing.T) {
	holder := dataset.NewHolder(exportTable(t))
	handler := ExportAggregatesCSVHandler(holder, zap.NewNop())

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/aggregates/export_csv", nil))

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"), "missing UTF-8 BOM")
	assert.Contains(t, body, "grouping,key,revenue,transactions\r\n")
	assert.Contains(t, body, `"store","Astoria",6.00,1`)
	assert.Contains(t, body, `"category","Tea",2.50,1`)
}

func TestExportAggregatesCSVNoDataset(t *testing.T) {
	empty, err := dataset.Build(nil)
	require.NoError(t, err)
	handler := ExportAggregatesCSVHandler(dataset.NewHolder(empty), zap.NewNop())

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/aggregates/export_csv", nil))
	assert.Equal(t, 503, rec.Code)
}
