package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"mavenroasters/model"
)

const insertProductQuery = `
INSERT OR REPLACE INTO products (product_id, product_category, product_type, product_detail, unit_price)
VALUES (:product_id, :product_category, :product_type, :product_detail, :unit_price)`

func InsertProduct(tx *sqlx.Tx, product model.Product) error {
	if _, err := tx.NamedExec(insertProductQuery, product); err != nil {
		return fmt.Errorf("failed to insert product %d: %w", product.ProductID, err)
	}
	return nil
}

func GetAllProducts(conn *sqlx.DB) ([]model.Product, error) {
	var products []model.Product
	if err := conn.Select(&products, `SELECT product_id, product_category, product_type, product_detail, unit_price FROM products ORDER BY product_id`); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	return products, nil
}

func CountProducts(conn *sqlx.DB) (int, error) {
	var n int
	if err := conn.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, err
	}
	return n, nil
}
