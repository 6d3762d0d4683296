package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"shopmart/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Append persists an order with its items in one transaction: either the
// full order lands in the ledger or none of it does. The storage assigns
// the monotonic order id.
func (r *OrderRepo) Append(o domain.Order) (domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(`
	  INSERT INTO orders(user_id, username, total, created_at)
	  VALUES(?, ?, ?, ?)
	`, o.UserID, o.Username, o.Total, createdAt)
	if err != nil {
		return domain.Order{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Order{}, err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, product_name, price, quantity)
		  VALUES(?, ?, ?, ?, ?)
		`, id, it.ProductID, it.Name, it.Price, it.Quantity); err != nil {
			return domain.Order{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}

	o.ID = id
	o.CreatedAt = createdAt
	return o, nil
}

func (r *OrderRepo) Get(orderID int64) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, user_id, username, total, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, err
	}
	if err := r.db.Select(&o.Items, `
		SELECT product_id, product_name, price, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// FindByUser returns a user's orders, most recent first, items attached.
func (r *OrderRepo) FindByUser(userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Select(&orders, `
		SELECT id, user_id, username, total, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return r.attachItems(orders)
}

// FindAll returns every order, most recent first, items attached.
func (r *OrderRepo) FindAll() ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.Select(&orders, `
		SELECT id, user_id, username, total, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return r.attachItems(orders)
}

func (r *OrderRepo) attachItems(orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	type itemRow struct {
		OrderID int64 `db:"order_id"`
		domain.OrderItem
	}
	query, args, err := sqlx.In(`
		SELECT order_id, product_id, product_name, price, quantity
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY order_id, id
	`, ids)
	if err != nil {
		return nil, err
	}
	var rows []itemRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]domain.OrderItem, len(orders))
	for _, row := range rows {
		byOrder[row.OrderID] = append(byOrder[row.OrderID], row.OrderItem)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}
