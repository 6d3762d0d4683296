package services

import "shopmart/internal/domain"

// Catalog is the slice of product storage the cart and checkout need.
type Catalog interface {
	Get(id int64) (domain.Product, error)
	TryDecrement(id int64, by int) error
	Increment(id int64, by int) error
}

// Ledger is the durable, append-only order store. Orders written through
// it are never mutated or deleted.
type Ledger interface {
	Append(o domain.Order) (domain.Order, error)
}
