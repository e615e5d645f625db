// Package backend is a development stand-in for the remote products/users
// REST service. It speaks the same JSON contract over an SQLite store.
package backend

import (
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var hashCost = bcrypt.DefaultCost

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  price REAL NOT NULL CHECK (price >= 0),
  category TEXT NOT NULL,
  tags_json TEXT NOT NULL DEFAULT '[]',
  in_stock INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// seedIfEmpty loads the sample catalogue and accounts on a fresh database.
func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	var m int
	if err := db.Get(&m, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 || m > 0 {
		return nil
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	ts := now()
	products := []struct {
		name, desc, category, tags string
		price                      float64
		inStock                    bool
	}{
		{"Laptop", "High-performance laptop for work and gaming", "Electronics", `["computer","portable"]`, 999.99, true},
		{"Coffee Mug", "Ceramic mug for your morning coffee", "Kitchen", `["ceramic","drinkware"]`, 12.99, true},
		{"Desk Chair", "Ergonomic office chair with lumbar support", "Furniture", `["office"]`, 249.5, false},
	}
	for _, p := range products {
		if _, err := tx.Exec(`
			INSERT INTO products(name,description,price,category,tags_json,in_stock,created_at)
			VALUES(?,?,?,?,?,?,?)
		`, p.name, p.desc, p.price, p.category, p.tags, p.inStock, ts); err != nil {
			return err
		}
	}

	users := []struct{ name, email, raw string }{
		{"John Doe", "john@example.com", "password123"},
		{"Jane Smith", "jane@example.com", "password456"},
	}
	for _, u := range users {
		h, err := bcrypt.GenerateFromPassword([]byte(u.raw), hashCost)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO users(name,email,password_hash,created_at,updated_at)
			VALUES(?,?,?,?,?)
		`, u.name, u.email, string(h), ts, ts); err != nil {
			return err
		}
	}

	return tx.Commit()
}
