package model

// SalesRow is one line of the flat sales export as shipped by the data
// portal. The same product appears on many rows; dimension tables are
// derived from it at load time.
type SalesRow struct {
	TransactionID   int
	TransactionDate string // YYYY-MM-DD
	TransactionTime string // HH:MM:SS
	Quantity        int
	StoreID         int
	StoreLocation   string
	ProductID       int
	ProductCategory string
	ProductType     string
	ProductDetail   string
	UnitPrice       float64
}

type Store struct {
	StoreID       int    `db:"store_id" json:"storeId"`
	StoreLocation string `db:"store_location" json:"storeLocation"`
}

type Product struct {
	ProductID       int     `db:"product_id" json:"productId"`
	ProductCategory string  `db:"product_category" json:"productCategory"`
	ProductType     string  `db:"product_type" json:"productType"`
	ProductDetail   string  `db:"product_detail" json:"productDetail"`
	UnitPrice       float64 `db:"unit_price" json:"unitPrice"`
}

type Transaction struct {
	TransactionID   int    `db:"transaction_id" json:"transactionId"`
	TransactionDate string `db:"transaction_date" json:"transactionDate"`
	TransactionTime string `db:"transaction_time" json:"transactionTime"`
	Quantity        int    `db:"transaction_qty" json:"quantity"`
	StoreID         int    `db:"store_id" json:"storeId"`
	ProductID       int    `db:"product_id" json:"productId"`
}

// SalesRecord is one row of the stores/products/transactions join, with
// revenue (qty * unit_price) computed in SQL.
type SalesRecord struct {
	TransactionID   int     `db:"transaction_id" json:"transactionId"`
	TransactionDate string  `db:"transaction_date" json:"transactionDate"`
	TransactionTime string  `db:"transaction_time" json:"transactionTime"`
	Quantity        int     `db:"transaction_qty" json:"quantity"`
	StoreID         int     `db:"store_id" json:"storeId"`
	StoreLocation   string  `db:"store_location" json:"storeLocation"`
	ProductID       int     `db:"product_id" json:"productId"`
	ProductCategory string  `db:"product_category" json:"productCategory"`
	ProductType     string  `db:"product_type" json:"productType"`
	ProductDetail   string  `db:"product_detail" json:"productDetail"`
	UnitPrice       float64 `db:"unit_price" json:"unitPrice"`
	TotalAmount     float64 `db:"total_amount" json:"totalAmount"`
}
