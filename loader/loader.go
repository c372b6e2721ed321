package loader

import (
	"fmt"
	"os"
	"sort"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"mavenroasters/database"
	"mavenroasters/model"
	"mavenroasters/parsers"
)

// InitDatabase applies the schema and, when the sales export is present,
// loads it. A missing dataset file is only a warning so the server can
// start and the file can be fetched through the download endpoint.
func InitDatabase(db *sqlx.DB, datasetPath string, logger *zap.Logger) error {
	logger.Info("applying database schema")
	if err := applySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}

	if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
		logger.Warn("dataset file not found, skipping load", zap.String("path", datasetPath))
		return nil
	}
	return LoadSalesCSV(db, datasetPath, logger)
}

func applySchema(db *sqlx.DB) error {
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// LoadSalesCSV parses the flat export, derives the stores and products
// dimension tables and replaces all three tables in one transaction.
// Product category/type/detail take the first value seen per product id,
// unit price the mean over its rows, matching the upstream export where a
// product's price can drift slightly between rows.
func LoadSalesCSV(db *sqlx.DB, path string, logger *zap.Logger) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open dataset %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parsers.ParseSalesCSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("dataset %s contains no rows", path)
	}
	logger.Info("parsed sales export", zap.String("path", path), zap.Int("rows", len(rows)))

	stores, products := deriveDimensions(rows)

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"transactions", "products", "stores"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, s := range stores {
		if err = database.InsertStore(tx, s); err != nil {
			return err
		}
	}
	for _, p := range products {
		if err = database.InsertProduct(tx, p); err != nil {
			return err
		}
	}
	for _, row := range rows {
		record := model.Transaction{
			TransactionID:   row.TransactionID,
			TransactionDate: row.TransactionDate,
			TransactionTime: row.TransactionTime,
			Quantity:        row.Quantity,
			StoreID:         row.StoreID,
			ProductID:       row.ProductID,
		}
		if err = database.InsertTransaction(tx, record); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load transaction: %w", err)
	}

	orphans, err := database.CountOrphanTransactions(db)
	if err != nil {
		return err
	}
	if orphans > 0 {
		return fmt.Errorf("data quality error: %d transactions reference an unknown store or product", orphans)
	}

	storeCount, err := database.CountStores(db)
	if err != nil {
		return err
	}
	productCount, err := database.CountProducts(db)
	if err != nil {
		return err
	}
	txCount, err := database.CountTransactions(db)
	if err != nil {
		return err
	}
	logger.Info("sales data loaded",
		zap.Int("stores", storeCount),
		zap.Int("products", productCount),
		zap.Int("transactions", txCount))
	return nil
}

func deriveDimensions(rows []model.SalesRow) ([]model.Store, []model.Product) {
	storeByID := map[int]model.Store{}
	productByID := map[int]*model.Product{}
	priceCount := map[int]int{}

	for _, row := range rows {
		if _, ok := storeByID[row.StoreID]; !ok {
			storeByID[row.StoreID] = model.Store{StoreID: row.StoreID, StoreLocation: row.StoreLocation}
		}
		if p, ok := productByID[row.ProductID]; ok {
			p.UnitPrice += row.UnitPrice
		} else {
			productByID[row.ProductID] = &model.Product{
				ProductID:       row.ProductID,
				ProductCategory: row.ProductCategory,
				ProductType:     row.ProductType,
				ProductDetail:   row.ProductDetail,
				UnitPrice:       row.UnitPrice,
			}
		}
		priceCount[row.ProductID]++
	}

	stores := make([]model.Store, 0, len(storeByID))
	for _, s := range storeByID {
		stores = append(stores, s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].StoreID < stores[j].StoreID })

	products := make([]model.Product, 0, len(productByID))
	for id, p := range productByID {
		p.UnitPrice /= float64(priceCount[id])
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })

	return stores, products
}
