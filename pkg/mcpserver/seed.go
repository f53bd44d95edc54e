package mcpserver

import (
	"context"
	"fmt"
)

// SeedCounts reports per-table row counts after seeding
type SeedCounts map[string]int

var seedSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		customer_id INTEGER,
		product TEXT NOT NULL,
		amount DECIMAL(10, 2),
		order_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (customer_id) REFERENCES customers (id)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price DECIMAL(10, 2),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY,
		product_id INTEGER,
		quantity INTEGER,
		sale_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (product_id) REFERENCES products (id)
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT,
		hire_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS financials (
		id INTEGER PRIMARY KEY,
		quarter TEXT NOT NULL,
		year INTEGER NOT NULL,
		revenue DECIMAL(10, 2),
		expenses DECIMAL(10, 2),
		profit DECIMAL(10, 2)
	)`,
}

type seedInsert struct {
	table string
	stmt  string
	rows  [][]interface{}
}

var seedData = []seedInsert{
	{
		table: "customers",
		stmt:  "INSERT INTO customers (name, email) VALUES (?, ?)",
		rows: [][]interface{}{
			{"Alice Johnson", "alice@example.com"},
			{"Bob Smith", "bob@example.com"},
			{"Charlie Brown", "charlie@example.com"},
		},
	},
	{
		table: "products",
		stmt:  "INSERT INTO products (name, description, price) VALUES (?, ?, ?)",
		rows: [][]interface{}{
			{"Laptop", "High-performance laptop", 1299.99},
			{"Mouse", "Wireless mouse", 29.99},
			{"Monitor", "4K UHD monitor", 399.99},
			{"Keyboard", "Mechanical keyboard", 79.99},
		},
	},
	{
		table: "orders",
		stmt:  "INSERT INTO orders (customer_id, product, amount) VALUES (?, ?, ?)",
		rows: [][]interface{}{
			{1, "Laptop", 1299.99},
			{1, "Mouse", 29.99},
			{2, "Monitor", 399.99},
			{3, "Keyboard", 79.99},
		},
	},
	{
		table: "sales",
		stmt:  "INSERT INTO sales (product_id, quantity) VALUES (?, ?)",
		rows: [][]interface{}{
			{1, 10},
			{2, 50},
			{3, 20},
			{4, 30},
		},
	},
	{
		table: "employees",
		stmt:  "INSERT INTO employees (name, department) VALUES (?, ?)",
		rows: [][]interface{}{
			{"John Doe", "Sales"},
			{"Jane Smith", "Marketing"},
			{"Emily Davis", "Engineering"},
		},
	},
	{
		table: "financials",
		stmt:  "INSERT INTO financials (quarter, year, revenue, expenses, profit) VALUES (?, ?, ?, ?, ?)",
		rows: [][]interface{}{
			{"Q1", 2024, 500000, 300000, 200000},
			{"Q2", 2024, 600000, 350000, 250000},
			{"Q3", 2024, 700000, 400000, 300000},
			{"Q4", 2024, 800000, 450000, 350000},
		},
	},
}

// Seed creates the business database at path and populates the sample data:
// customers, orders, products, sales, employees and financials. Seeding is
// idempotent; tables that already hold rows are left untouched.
func Seed(ctx context.Context, path string) (SeedCounts, error) {
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	for _, ddl := range seedSchema {
		if _, err := store.db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	counts := make(SeedCounts, len(seedData))
	for _, insert := range seedData {
		count, err := seedTable(ctx, store, insert)
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", insert.table, err)
		}
		counts[insert.table] = count
	}
	return counts, nil
}

func seedTable(ctx context.Context, store *Store, insert seedInsert) (int, error) {
	var existing int
	row := store.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", insert.table))
	if err := row.Scan(&existing); err != nil {
		return 0, err
	}
	if existing > 0 {
		return existing, nil
	}

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, values := range insert.rows {
		if _, err := tx.ExecContext(ctx, insert.stmt, values...); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(insert.rows), nil
}
