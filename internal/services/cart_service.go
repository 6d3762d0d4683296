package services

import (
	"strconv"

	"shopmart/internal/domain"
	"shopmart/internal/session"
)

const cartKey = "cart"

// CartService owns the per-session cart. The cart is a slice of lines,
// unique by product id, kept in the session bag; it lives until checkout
// succeeds or the session goes away.
type CartService struct {
	Sessions session.Store
	Locks    *session.Locks
	Catalog  Catalog
}

func NewCartService(sessions session.Store, locks *session.Locks, catalog Catalog) *CartService {
	return &CartService{Sessions: sessions, Locks: locks, Catalog: catalog}
}

// Correction reports a line whose requested quantity was clamped to the
// stock bound cached on the line.
type Correction struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Applied   int    `json:"applied"`
}

type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total float64           `json:"total"`
}

// Add puts qty units of a product into the session cart, merging into an
// existing line for the same product. The merged quantity is bounded by
// the stock currently available; price and availability are snapshotted
// onto the line.
func (s *CartService) Add(sid string, productID int64, qty int) error {
	if qty < 1 {
		qty = 1
	}
	mu := s.Locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	p, err := s.Catalog.Get(productID)
	if err != nil {
		return err
	}

	lines := s.lines(sid)
	idx := -1
	for i := range lines {
		if lines[i].ProductID == productID {
			idx = i
			break
		}
	}

	final := qty
	if idx >= 0 {
		final += lines[idx].Quantity
	}
	if final > p.Quantity {
		return &domain.LimitExceededError{ProductID: productID, Available: p.Quantity}
	}

	if idx >= 0 {
		lines[idx].Quantity = final
		lines[idx].Available = p.Quantity
	} else {
		lines = append(lines, domain.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			Available: p.Quantity,
			Image:     p.Image,
		})
	}
	s.put(sid, lines)
	return nil
}

// SetQuantities applies a batch of requested quantities. Keys match a line
// by its index first, then by product id. Zero removes the line; a request
// above the cached availability is clamped to it and reported as a
// correction. Lines the mapping does not touch keep their quantity.
func (s *CartService) SetQuantities(sid string, req map[string]int) ([]Correction, error) {
	mu := s.Locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	lines := s.lines(sid)
	var corrections []Correction

	for i := range lines {
		want, ok := req[strconv.Itoa(i)]
		if !ok {
			want, ok = req[strconv.FormatInt(lines[i].ProductID, 10)]
		}
		if !ok || want < 0 {
			continue
		}
		if want > lines[i].Available {
			corrections = append(corrections, Correction{
				ProductID: lines[i].ProductID,
				Name:      lines[i].Name,
				Requested: want,
				Applied:   lines[i].Available,
			})
			want = lines[i].Available
		}
		lines[i].Quantity = want
	}

	kept := lines[:0]
	for _, ln := range lines {
		if ln.Quantity > 0 {
			kept = append(kept, ln)
		}
	}
	s.put(sid, kept)
	return corrections, nil
}

// Remove deletes the line at index. Out of bounds is a no-op reported as
// ErrNotFound so the caller can re-prompt without aborting the request.
func (s *CartService) Remove(sid string, index int) error {
	mu := s.Locks.For(sid)
	mu.Lock()
	defer mu.Unlock()

	lines := s.lines(sid)
	if index < 0 || index >= len(lines) {
		return domain.ErrNotFound
	}
	lines = append(lines[:index], lines[index+1:]...)
	s.put(sid, lines)
	return nil
}

func (s *CartService) Clear(sid string) {
	mu := s.Locks.For(sid)
	mu.Lock()
	defer mu.Unlock()
	s.clearLocked(sid)
}

// Snapshot returns a read-only copy of the cart lines.
func (s *CartService) Snapshot(sid string) []domain.CartLine {
	mu := s.Locks.For(sid)
	mu.Lock()
	defer mu.Unlock()
	return s.snapshotLocked(sid)
}

// View returns the cart with its derived total. The total is always
// recomputed from the lines, never stored.
func (s *CartService) View(sid string) CartView {
	lines := s.Snapshot(sid)
	return CartView{Lines: lines, Total: Total(lines)}
}

func Total(lines []domain.CartLine) float64 {
	total := 0.0
	for _, ln := range lines {
		total += ln.Price * float64(ln.Quantity)
	}
	return total
}

// Callers of the *Locked helpers must hold the session mutex.

func (s *CartService) snapshotLocked(sid string) []domain.CartLine {
	lines := s.lines(sid)
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}

func (s *CartService) clearLocked(sid string) {
	s.Sessions.Delete(sid, cartKey)
}

func (s *CartService) lines(sid string) []domain.CartLine {
	v, ok := s.Sessions.Get(sid, cartKey)
	if !ok {
		return nil
	}
	lines, _ := v.([]domain.CartLine)
	return lines
}

func (s *CartService) put(sid string, lines []domain.CartLine) {
	if len(lines) == 0 {
		s.Sessions.Delete(sid, cartKey)
		return
	}
	s.Sessions.Put(sid, cartKey, lines)
}
