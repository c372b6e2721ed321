package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"mavenroasters/model"
)

const selectJoinedSalesQuery = `
SELECT
    t.transaction_id,
    t.transaction_date,
    t.transaction_time,
    t.transaction_qty,
    s.store_id,
    s.store_location,
    p.product_id,
    p.product_category,
    p.product_type,
    p.product_detail,
    p.unit_price,
    (t.transaction_qty * p.unit_price) AS total_amount
FROM transactions t
JOIN stores s   ON t.store_id = s.store_id
JOIN products p ON t.product_id = p.product_id
ORDER BY t.transaction_date, t.transaction_time, t.transaction_id`

// SelectJoinedSales returns the full joined sales table with revenue
// computed in SQL. Row order is fixed so that every downstream summation
// is reproducible.
func SelectJoinedSales(conn *sqlx.DB) ([]model.SalesRecord, error) {
	var records []model.SalesRecord
	if err := conn.Select(&records, selectJoinedSalesQuery); err != nil {
		return nil, fmt.Errorf("failed to select joined sales: %w", err)
	}
	return records, nil
}
