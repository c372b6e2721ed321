package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"mavenroasters/model"
)

const insertStoreQuery = `
INSERT OR REPLACE INTO stores (store_id, store_location)
VALUES (:store_id, :store_location)`

func InsertStore(tx *sqlx.Tx, store model.Store) error {
	if _, err := tx.NamedExec(insertStoreQuery, store); err != nil {
		return fmt.Errorf("failed to insert store %d: %w", store.StoreID, err)
	}
	return nil
}

func GetAllStores(conn *sqlx.DB) ([]model.Store, error) {
	var stores []model.Store
	if err := conn.Select(&stores, `SELECT store_id, store_location FROM stores ORDER BY store_id`); err != nil {
		return nil, fmt.Errorf("failed to select stores: %w", err)
	}
	return stores, nil
}

func CountStores(conn *sqlx.DB) (int, error) {
	var n int
	if err := conn.Get(&n, `SELECT COUNT(*) FROM stores`); err != nil {
		return 0, err
	}
	return n, nil
}
