package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopmart/internal/domain"
	"shopmart/internal/repos"
	"shopmart/internal/services"
	"shopmart/internal/session"
)

type stack struct {
	db       *sqlx.DB
	catalog  *repos.CatalogRepo
	ledger   *repos.OrderRepo
	sessions *session.MemoryStore
	cart     *services.CartService
	checkout *services.CheckoutService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE products(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  name TEXT NOT NULL,
	  price NUMERIC NOT NULL CHECK (price >= 0),
	  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	  image TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT
	);
	CREATE TABLE orders(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  user_id INTEGER NOT NULL,
	  username TEXT NOT NULL,
	  total NUMERIC NOT NULL,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE order_items(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	  product_id INTEGER NOT NULL,
	  product_name TEXT NOT NULL,
	  price NUMERIC NOT NULL,
	  quantity INTEGER NOT NULL
	);
	INSERT INTO products(name,price,quantity) VALUES
	  ('Wireless Mouse',10.0,5),
	  ('USB-C Hub',5.0,4);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}

	catalog := repos.NewCatalogRepo(db)
	ledger := repos.NewOrderRepo(db)
	sessions := session.NewMemoryStore()
	locks := session.NewLocks()
	cart := services.NewCartService(sessions, locks, catalog)
	checkout := services.NewCheckoutService(cart, catalog, ledger, locks)
	checkout.Retries = 1
	checkout.Backoff = 0

	return &stack{db: db, catalog: catalog, ledger: ledger, sessions: sessions, cart: cart, checkout: checkout}
}

func TestCartAddMergesLines(t *testing.T) {
	s := newStack(t)
	sid := "sess-a"

	if err := s.cart.Add(sid, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.cart.Add(sid, 1, 1); err != nil {
		t.Fatal(err)
	}

	lines := s.cart.Snapshot(sid)
	if len(lines) != 1 {
		t.Fatalf("want one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 || lines[0].Price != 10.0 || lines[0].Available != 5 {
		t.Fatalf("bad line: %+v", lines[0])
	}
}

func TestCartAddLimitExceeded(t *testing.T) {
	s := newStack(t)
	sid := "sess-a"

	if err := s.cart.Add(sid, 2, 2); err != nil {
		t.Fatal(err)
	}
	err := s.cart.Add(sid, 2, 3) // 2+3 > 4 available
	var limit *domain.LimitExceededError
	if !errors.As(err, &limit) {
		t.Fatalf("want LimitExceededError, got %v", err)
	}
	if limit.Available != 4 {
		t.Fatalf("want available=4, got %d", limit.Available)
	}
	// the rejected add must not change the cart
	lines := s.cart.Snapshot(sid)
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("cart mutated by rejected add: %+v", lines)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	s := newStack(t)
	if err := s.cart.Add("sess-a", 999, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSetQuantitiesClampAndRemove(t *testing.T) {
	s := newStack(t)
	sid := "sess-a"
	if err := s.cart.Add(sid, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.cart.Add(sid, 2, 3); err != nil {
		t.Fatal(err)
	}

	// line 0 clamped to its cached bound, product 2 removed
	corrections, err := s.cart.SetQuantities(sid, map[string]int{"0": 99, "2": 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(corrections) != 1 {
		t.Fatalf("want one correction, got %+v", corrections)
	}
	if corrections[0].ProductID != 1 || corrections[0].Requested != 99 || corrections[0].Applied != 5 {
		t.Fatalf("bad correction: %+v", corrections[0])
	}

	lines := s.cart.Snapshot(sid)
	if len(lines) != 1 || lines[0].ProductID != 1 || lines[0].Quantity != 5 {
		t.Fatalf("bad cart after update: %+v", lines)
	}
}

func TestSetQuantitiesUntouchedLinesKeepQuantity(t *testing.T) {
	s := newStack(t)
	sid := "sess-a"
	if err := s.cart.Add(sid, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.cart.Add(sid, 2, 3); err != nil {
		t.Fatal(err)
	}

	// keyed by product id, only product 2 changes
	corrections, err := s.cart.SetQuantities(sid, map[string]int{"2": 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(corrections) != 0 {
		t.Fatalf("unexpected corrections: %+v", corrections)
	}
	lines := s.cart.Snapshot(sid)
	if len(lines) != 2 || lines[0].Quantity != 2 || lines[1].Quantity != 1 {
		t.Fatalf("bad cart after update: %+v", lines)
	}
}

func TestRemoveOutOfBounds(t *testing.T) {
	s := newStack(t)
	sid := "sess-a"
	if err := s.cart.Add(sid, 1, 1); err != nil {
		t.Fatal(err)
	}

	if err := s.cart.Remove(sid, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if got := len(s.cart.Snapshot(sid)); got != 1 {
		t.Fatalf("cart changed by out-of-bounds remove: %d lines", got)
	}

	if err := s.cart.Remove(sid, 0); err != nil {
		t.Fatal(err)
	}
	if got := len(s.cart.Snapshot(sid)); got != 0 {
		t.Fatalf("want empty cart, got %d lines", got)
	}
}

func TestCartTotalDerived(t *testing.T) {
	s := newStack(t)
	sid := "sess-a"
	if err := s.cart.Add(sid, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.cart.Add(sid, 2, 3); err != nil {
		t.Fatal(err)
	}
	cv := s.cart.View(sid)
	if cv.Total != 2*10.0+3*5.0 {
		t.Fatalf("want total 35, got %v", cv.Total)
	}
}
