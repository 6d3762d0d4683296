package repos_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopmart/internal/domain"
	"shopmart/internal/repos"
)

func memdbOrders(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
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
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	db := memdbOrders(t)
	ledger := repos.NewOrderRepo(db)

	first, err := ledger.Append(domain.Order{
		UserID: 1, Username: "alice", Total: 35,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Wireless Mouse", Price: 10, Quantity: 2},
			{ProductID: 2, Name: "USB-C Hub", Price: 5, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := ledger.Append(domain.Order{UserID: 1, Username: "alice", Total: 10,
		Items: []domain.OrderItem{{ProductID: 1, Name: "Wireless Mouse", Price: 10, Quantity: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID <= 0 || second.ID <= first.ID {
		t.Fatalf("ids not monotonic: %d then %d", first.ID, second.ID)
	}
	if first.CreatedAt == "" {
		t.Fatal("created_at not set")
	}
}

func TestGetReturnsFullOrder(t *testing.T) {
	db := memdbOrders(t)
	ledger := repos.NewOrderRepo(db)

	stored, err := ledger.Append(domain.Order{
		UserID: 7, Username: "bob", Total: 35,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Wireless Mouse", Price: 10, Quantity: 2},
			{ProductID: 2, Name: "USB-C Hub", Price: 5, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := ledger.Get(stored.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Total != 35 || got.Username != "bob" || len(got.Items) != 2 {
		t.Fatalf("bad order: %+v", got)
	}
	if got.Items[0].Name != "Wireless Mouse" || got.Items[1].Quantity != 3 {
		t.Fatalf("items out of order or mangled: %+v", got.Items)
	}

	if _, err := ledger.Get(999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFindByUserMostRecentFirst(t *testing.T) {
	db := memdbOrders(t)
	ledger := repos.NewOrderRepo(db)

	for i := 0; i < 3; i++ {
		if _, err := ledger.Append(domain.Order{UserID: 1, Username: "alice", Total: float64(i + 1),
			Items: []domain.OrderItem{{ProductID: 1, Name: "Wireless Mouse", Price: 1, Quantity: i + 1}}}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := ledger.Append(domain.Order{UserID: 2, Username: "bob", Total: 9,
		Items: []domain.OrderItem{{ProductID: 2, Name: "USB-C Hub", Price: 9, Quantity: 1}}}); err != nil {
		t.Fatal(err)
	}

	mine, err := ledger.FindByUser(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 3 {
		t.Fatalf("want 3 orders, got %d", len(mine))
	}
	for i := 1; i < len(mine); i++ {
		if mine[i].ID > mine[i-1].ID {
			t.Fatalf("not most-recent-first: %d before %d", mine[i-1].ID, mine[i].ID)
		}
	}
	for _, o := range mine {
		if len(o.Items) == 0 {
			t.Fatalf("order %d missing items", o.ID)
		}
	}

	all, err := ledger.FindAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("want 4 orders total, got %d", len(all))
	}
	if all[0].Username != "bob" {
		t.Fatalf("newest order should be first, got %+v", all[0])
	}
}
