package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"mavenroasters/model"
)

const insertTransactionQuery = `
INSERT OR REPLACE INTO transactions (
    transaction_id, transaction_date, transaction_time, transaction_qty,
    store_id, product_id
) VALUES (
    :transaction_id, :transaction_date, :transaction_time, :transaction_qty,
    :store_id, :product_id
)`

func InsertTransaction(tx *sqlx.Tx, record model.Transaction) error {
	if _, err := tx.NamedExec(insertTransactionQuery, record); err != nil {
		return fmt.Errorf("failed to insert transaction %d: %w", record.TransactionID, err)
	}
	return nil
}

func CountTransactions(conn *sqlx.DB) (int, error) {
	var n int
	if err := conn.Get(&n, `SELECT COUNT(*) FROM transactions`); err != nil {
		return 0, err
	}
	return n, nil
}

// CountOrphanTransactions reports rows referencing an unknown store or
// product. A non-zero count is a fatal data-quality error at load time;
// downstream stages do not re-verify referential integrity.
func CountOrphanTransactions(conn *sqlx.DB) (int, error) {
	var n int
	err := conn.Get(&n, `
        SELECT COUNT(*) FROM transactions t
        LEFT JOIN stores s   ON t.store_id = s.store_id
        LEFT JOIN products p ON t.product_id = p.product_id
        WHERE s.store_id IS NULL OR p.product_id IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to count orphan transactions: %w", err)
	}
	return n, nil
}
