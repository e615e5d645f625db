package backend

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"crudadmin/internal/domain"
)

// ErrEmailTaken is returned when another user already has the address.
var ErrEmailTaken = errors.New("email already registered")

type userRow struct {
	ID        int    `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Hash      string `db:"password_hash"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r userRow) record() (domain.User, error) {
	created, err := domain.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	updated, err := domain.ParseTimestamp(r.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: r.ID, Name: r.Name, Email: r.Email, CreatedAt: created, UpdatedAt: updated}, nil
}

const userCols = `id, name, email, password_hash, created_at, updated_at`

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) List() ([]domain.User, error) {
	var rows []userRow
	if err := r.db.Select(&rows, `SELECT `+userCols+` FROM users ORDER BY id`); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := row.record()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepo) Get(id int) (domain.User, error) {
	row, err := r.row(r.db, id)
	if err != nil {
		return domain.User{}, err
	}
	return row.record()
}

func (r *UserRepo) row(q sqlx.Queryer, id int) (userRow, error) {
	var row userRow
	err := sqlx.Get(q, &row, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
	return row, err
}

func (r *UserRepo) Create(in domain.UserCreate) (domain.User, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return domain.User{}, err
	}
	ts := now()
	res, err := r.db.Exec(`
		INSERT INTO users(name,email,password_hash,created_at,updated_at)
		VALUES(?,?,?,?,?)
	`, in.Name, in.Email, string(h), ts, ts)
	if err != nil {
		return domain.User{}, uniqueErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return r.Get(int(id))
}

// Update merges non-nil fields; a nil password keeps the stored hash.
func (r *UserRepo) Update(id int, up domain.UserUpdate) (domain.User, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := r.row(tx, id)
	if err != nil {
		return domain.User{}, err
	}
	if up.Name != nil {
		cur.Name = *up.Name
	}
	if up.Email != nil {
		cur.Email = *up.Email
	}
	if up.Password != nil {
		h, err := bcrypt.GenerateFromPassword([]byte(*up.Password), hashCost)
		if err != nil {
			return domain.User{}, err
		}
		cur.Hash = string(h)
	}
	cur.UpdatedAt = now()
	if _, err := tx.Exec(`
		UPDATE users SET name=?, email=?, password_hash=?, updated_at=? WHERE id=?
	`, cur.Name, cur.Email, cur.Hash, cur.UpdatedAt, id); err != nil {
		return domain.User{}, uniqueErr(err)
	}
	if err := tx.Commit(); err != nil {
		return domain.User{}, err
	}
	return cur.record()
}

func (r *UserRepo) Delete(id int) error {
	return deleteByID(r.db, "users", id)
}

func uniqueErr(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrEmailTaken
	}
	return err
}
