package domain

type Product struct {
	ID        int64   `db:"id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Image     string  `db:"image" json:"image,omitempty"`
	CreatedAt string  `db:"created_at" json:"-"`
	UpdatedAt string  `db:"updated_at" json:"-"`
}

// CartLine is one product entry in a shopper's in-progress selection.
// Price and Available are snapshots taken when the line was last validated
// against the catalog; a later stock change does not rewrite them.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Available int     `json:"available"`
	Image     string  `json:"image,omitempty"`
}

type OrderItem struct {
	ProductID int64   `db:"product_id" json:"productId"`
	Name      string  `db:"product_name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Quantity  int     `db:"quantity" json:"quantity"`
}

// Order is immutable once persisted. Items are copies of the cart lines
// that produced it, never references into the live catalog.
type Order struct {
	ID        int64       `db:"id" json:"orderId"`
	UserID    int64       `db:"user_id" json:"userId"`
	Username  string      `db:"username" json:"username"`
	Total     float64     `db:"total" json:"total"`
	CreatedAt string      `db:"created_at" json:"createdAt"`
	Items     []OrderItem `json:"items"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
