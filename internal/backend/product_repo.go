package backend

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"crudadmin/internal/domain"
)

type productRow struct {
	ID          int     `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Category    string  `db:"category"`
	TagsJSON    string  `db:"tags_json"`
	InStock     bool    `db:"in_stock"`
	CreatedAt   string  `db:"created_at"`
}

func (r productRow) record() (domain.Product, error) {
	tags := []string{}
	if r.TagsJSON != "" {
		if err := json.Unmarshal([]byte(r.TagsJSON), &tags); err != nil {
			return domain.Product{}, err
		}
	}
	created, err := domain.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Tags:        tags,
		InStock:     r.InStock,
		CreatedAt:   created,
	}, nil
}

const productCols = `id, name, description, price, category, tags_json, in_stock, created_at`

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT `+productCols+` FROM products ORDER BY id`); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.record()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Get returns sql.ErrNoRows when id is unknown.
func (r *ProductRepo) Get(id int) (domain.Product, error) {
	return r.get(r.db, id)
}

func (r *ProductRepo) get(q sqlx.Queryer, id int) (domain.Product, error) {
	var row productRow
	if err := sqlx.Get(q, &row, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	return row.record()
}

func (r *ProductRepo) Create(in domain.ProductCreate) (domain.Product, error) {
	tags, err := json.Marshal(nonNil(in.Tags))
	if err != nil {
		return domain.Product{}, err
	}
	res, err := r.db.Exec(`
		INSERT INTO products(name,description,price,category,tags_json,in_stock,created_at)
		VALUES(?,?,?,?,?,?,?)
	`, in.Name, in.Description, in.Price, in.Category, string(tags), in.InStock, now())
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(int(id))
}

// Update merges the non-nil fields of up into the stored record.
func (r *ProductRepo) Update(id int, up domain.ProductUpdate) (domain.Product, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := r.get(tx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if up.Name != nil {
		cur.Name = *up.Name
	}
	if up.Description != nil {
		cur.Description = *up.Description
	}
	if up.Price != nil {
		cur.Price = *up.Price
	}
	if up.Category != nil {
		cur.Category = *up.Category
	}
	if up.Tags != nil {
		cur.Tags = nonNil(*up.Tags)
	}
	if up.InStock != nil {
		cur.InStock = *up.InStock
	}
	tags, err := json.Marshal(cur.Tags)
	if err != nil {
		return domain.Product{}, err
	}
	if _, err := tx.Exec(`
		UPDATE products SET name=?, description=?, price=?, category=?, tags_json=?, in_stock=?
		WHERE id=?
	`, cur.Name, cur.Description, cur.Price, cur.Category, string(tags), cur.InStock, id); err != nil {
		return domain.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, err
	}
	return cur, nil
}

// Delete returns sql.ErrNoRows when nothing was removed.
func (r *ProductRepo) Delete(id int) error {
	return deleteByID(r.db, "products", id)
}

func deleteByID(db *sqlx.DB, table string, id int) error {
	res, err := db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func isNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }
