package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesHeader = "transaction_id,transaction_date,transaction_time,transaction_qty,store_id,store_location,product_id,product_category,product_type,product_detail,unit_price\n"

func TestParseSalesCSV(t *testing.T) {
	input := salesHeader +
		"1,2023-06-01,08:15:00,2,3,Astoria,32,Coffee,Gourmet brewed coffee,Ethiopia Rg,3.00\n" +
		"2,2023-06-01,09:30:00,1,5,Lower Manhattan,59,Drinking Chocolate,Hot chocolate,Dark chocolate Lg,4.50\n"

	rows, err := ParseSalesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].TransactionID)
	assert.Equal(t, "2023-06-01", rows[0].TransactionDate)
	assert.Equal(t, "08:15:00", rows[0].TransactionTime)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.Equal(t, "Astoria", rows[0].StoreLocation)
	assert.Equal(t, "Coffee", rows[0].ProductCategory)
	assert.InDelta(t, 3.00, rows[0].UnitPrice, 1e-9)
	assert.Equal(t, "Lower Manhattan", rows[1].StoreLocation)
}

func TestParseSalesCSVSkipsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + salesHeader +
		"1,2023-06-01,08:15:00,2,3,Astoria,32,Coffee,Brewed,Ethiopia,3.00\n"

	rows, err := ParseSalesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TransactionID)
}

func TestParseSalesCSVMissingHeader(t *testing.T) {
	input := "transaction_id,transaction_date\n1,2023-06-01\n"
	_, err := ParseSalesCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required header not found")
}

func TestParseSalesCSVMalformedNumeric(t *testing.T) {
	input := salesHeader +
		"1,2023-06-01,08:15:00,two,3,Astoria,32,Coffee,Brewed,Ethiopia,3.00\n"
	_, err := ParseSalesCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction_qty")
}

func TestParseSalesCSVRejectsNegatives(t *testing.T) {
	input := salesHeader +
		"1,2023-06-01,08:15:00,1,3,Astoria,32,Coffee,Brewed,Ethiopia,-3.00\n"
	_, err := ParseSalesCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative unit_price")
}
