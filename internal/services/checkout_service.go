package services

import (
	"errors"
	"sync"
	"time"

	"shopmart/internal/domain"
	applog "shopmart/internal/log"
	"shopmart/internal/session"
)

const lastOrderKey = "last_order"

// CheckoutService converts a cart snapshot into a durable order with
// all-or-nothing stock effects. Decrements are dispatched per line; if any
// line fails, the lines that already succeeded are re-incremented before
// the failure is reported. A ledger write that fails after all decrements
// succeeded is NOT rolled back: the sale happened, the bookkeeping didn't,
// and that discrepancy is logged for reconciliation.
type CheckoutService struct {
	Cart    *CartService
	Catalog Catalog
	Ledger  Ledger
	Locks   *session.Locks

	// Bounded retry for transient storage faults. Business outcomes
	// (insufficient stock, missing product) are never retried.
	Retries int
	Backoff time.Duration
}

func NewCheckoutService(cart *CartService, catalog Catalog, ledger Ledger, locks *session.Locks) *CheckoutService {
	return &CheckoutService{
		Cart:    cart,
		Catalog: catalog,
		Ledger:  ledger,
		Locks:   locks,
		Retries: 3,
		Backoff: 50 * time.Millisecond,
	}
}

// Confirm places the order for the session's cart. The session mutex is
// held for the whole call, so a double-submitted checkout is serialized:
// the second attempt sees an empty cart.
func (s *CheckoutService) Confirm(sid string, user *domain.User) (domain.Order, error) {
	mu := s.Locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	lines := s.Cart.snapshotLocked(sid)
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	// Each line targets a different product, so attempts can run
	// concurrently; the catalog serializes per-product updates.
	results := make([]error, len(lines))
	var wg sync.WaitGroup
	for i, ln := range lines {
		wg.Add(1)
		go func(i int, ln domain.CartLine) {
			defer wg.Done()
			results[i] = s.decrement(ln.ProductID, ln.Quantity)
		}(i, ln)
	}
	wg.Wait()

	if failed := firstFailure(results); failed >= 0 {
		s.rollback(lines, results)
		return domain.Order{}, results[failed]
	}

	order := domain.Order{
		UserID:   user.ID,
		Username: user.Username,
		Total:    Total(lines),
		Items:    toItems(lines),
	}
	stored, err := s.append(order)
	if err != nil {
		// Stock is spent but the order is not recorded. Deliberately no
		// rollback; surface the discrepancy for reconciliation instead.
		applog.Error(nil, "checkout.ledger.discrepancy", err, map[string]any{
			"sid":     sid,
			"user_id": user.ID,
			"total":   order.Total,
			"items":   len(order.Items),
		})
		return domain.Order{}, err
	}

	s.Cart.clearLocked(sid)
	s.Cart.Sessions.Put(sid, lastOrderKey, stored.ID)
	return stored, nil
}

// LastOrderID returns the id of the most recent order confirmed in this
// session, for the confirmation view.
func (s *CheckoutService) LastOrderID(sid string) (int64, bool) {
	v, ok := s.Cart.Sessions.Get(sid, lastOrderKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func (s *CheckoutService) decrement(productID int64, qty int) error {
	var err error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * s.Backoff)
		}
		err = s.Catalog.TryDecrement(productID, qty)
		if err == nil || isBusiness(err) {
			return err
		}
	}
	return &domain.PersistenceError{Op: "catalog.decrement", Err: err}
}

func (s *CheckoutService) append(order domain.Order) (domain.Order, error) {
	var err error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * s.Backoff)
		}
		var stored domain.Order
		stored, err = s.Ledger.Append(order)
		if err == nil {
			return stored, nil
		}
	}
	return domain.Order{}, &domain.PersistenceError{Op: "ledger.append", Err: err}
}

// rollback re-increments every line whose decrement succeeded. A failed
// compensation leaves stock short and is logged for reconciliation.
func (s *CheckoutService) rollback(lines []domain.CartLine, results []error) {
	for i, ln := range lines {
		if results[i] != nil {
			continue
		}
		if err := s.Catalog.Increment(ln.ProductID, ln.Quantity); err != nil {
			applog.Error(nil, "checkout.rollback.discrepancy", err, map[string]any{
				"product_id": ln.ProductID,
				"qty":        ln.Quantity,
			})
		}
	}
}

func firstFailure(results []error) int {
	for i, err := range results {
		if err != nil {
			return i
		}
	}
	return -1
}

func isBusiness(err error) bool {
	var stock *domain.InsufficientStockError
	return errors.Is(err, domain.ErrNotFound) || errors.As(err, &stock)
}

func toItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, ln := range lines {
		items = append(items, domain.OrderItem{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Price:     ln.Price,
			Quantity:  ln.Quantity,
		})
	}
	return items
}
