package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mavenroasters/model"
)

var salesRequiredHeaders = []string{
	"transaction_id", "transaction_date", "transaction_time",
	"transaction_qty", "store_id", "store_location",
	"product_id", "product_category", "product_type", "product_detail",
	"unit_price",
}

// ParseSalesCSV parses the flat sales export. Any malformed row is fatal:
// the analysis stages assume a clean table and do not re-validate.
func ParseSalesCSV(r io.Reader) ([]model.SalesRow, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales CSV header: %w", err)
	}
	colIndex, err := getColIndex(header, salesRequiredHeaders)
	if err != nil {
		return nil, fmt.Errorf("invalid sales CSV: %w", err)
	}

	var rows []model.SalesRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sales CSV line %d: %w", line+1, err)
		}
		line++

		get := func(name string) string {
			idx := colIndex[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		row := model.SalesRow{
			TransactionDate: get("transaction_date"),
			TransactionTime: get("transaction_time"),
			StoreLocation:   get("store_location"),
			ProductCategory: get("product_category"),
			ProductType:     get("product_type"),
			ProductDetail:   get("product_detail"),
		}
		if row.TransactionDate == "" {
			return nil, fmt.Errorf("line %d: missing transaction_date", line)
		}

		if row.TransactionID, err = strconv.Atoi(get("transaction_id")); err != nil {
			return nil, fmt.Errorf("line %d: invalid transaction_id %q", line, get("transaction_id"))
		}
		if row.Quantity, err = strconv.Atoi(get("transaction_qty")); err != nil {
			return nil, fmt.Errorf("line %d: invalid transaction_qty %q", line, get("transaction_qty"))
		}
		if row.StoreID, err = strconv.Atoi(get("store_id")); err != nil {
			return nil, fmt.Errorf("line %d: invalid store_id %q", line, get("store_id"))
		}
		if row.ProductID, err = strconv.Atoi(get("product_id")); err != nil {
			return nil, fmt.Errorf("line %d: invalid product_id %q", line, get("product_id"))
		}
		if row.UnitPrice, err = strconv.ParseFloat(get("unit_price"), 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid unit_price %q", line, get("unit_price"))
		}

		if row.Quantity < 0 {
			return nil, fmt.Errorf("line %d: negative transaction_qty %d", line, row.Quantity)
		}
		if row.UnitPrice < 0 {
			return nil, fmt.Errorf("line %d: negative unit_price %g", line, row.UnitPrice)
		}

		rows = append(rows, row)
	}
	return rows, nil
}
