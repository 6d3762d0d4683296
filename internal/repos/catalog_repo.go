package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"shopmart/internal/domain"
)

type CatalogRepo struct{ db *sqlx.DB }

func NewCatalogRepo(db *sqlx.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, price, quantity, COALESCE(image,'') AS image,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	if err == sql.ErrNoRows {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

func (r *CatalogRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, price, quantity, COALESCE(image,'') AS image,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  ORDER BY id
	`)
	return out, err
}

// TryDecrement atomically subtracts "by" units if enough stock exists.
// The read and the write are one conditional UPDATE so two concurrent
// checkouts can never both pass a stale check and drive quantity negative.
func (r *CatalogRepo) TryDecrement(id int64, by int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var avail int
		if err := r.db.Get(&avail, `SELECT quantity FROM products WHERE id = ?`, id); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
		return &domain.InsufficientStockError{ProductID: id, Available: avail}
	}
	return nil
}

// Increment restores "by" units. Compensation path for checkout rollback.
func (r *CatalogRepo) Increment(id int64, by int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET quantity = quantity + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, by, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) Create(p domain.Product) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(name, price, quantity, image, created_at)
		VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.Name, p.Price, p.Quantity, p.Image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CatalogRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET name = ?, price = ?, quantity = ?, image = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.Price, p.Quantity, p.Image, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restock sets the absolute quantity for a product.
func (r *CatalogRepo) Restock(id int64, qty int) error {
	res, err := r.db.Exec(`
		UPDATE products SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, qty, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
