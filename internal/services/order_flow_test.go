package services_test

import (
	"testing"

	"shopmart/internal/domain"
)

func TestOrderFlow_AddCartCheckoutHistory(t *testing.T) {
	s := newStack(t)
	sid := "test-session"

	if err := s.cart.Add(sid, 1, 2); err != nil {
		t.Fatal(err)
	}

	cv := s.cart.View(sid)
	if len(cv.Lines) != 1 || cv.Total != 20 {
		t.Fatalf("bad cart view: %+v", cv)
	}

	user := &domain.User{ID: 1, Username: "alice"}
	order, err := s.checkout.Confirm(sid, user)
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == 0 || order.Total != 20 {
		t.Fatalf("bad order: %+v", order)
	}

	// inventory decremented from 5 to 3
	p, err := s.catalog.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Quantity != 3 {
		t.Fatalf("want qty=3, got %d", p.Quantity)
	}

	// order visible in the user's history
	history, err := s.ledger.FindByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].ID != order.ID {
		t.Fatalf("bad history: %+v", history)
	}
	if len(history[0].Items) != 1 || history[0].Items[0].Quantity != 2 {
		t.Fatalf("history items mangled: %+v", history[0].Items)
	}
}
