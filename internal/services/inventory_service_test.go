package services_test

import (
	"testing"

	"shopmart/internal/services"
)

func TestInventoryService_CheckAvailability(t *testing.T) {
	s := newStack(t)
	svc := services.NewInventoryService(s.catalog)

	// in stock
	a, err := svc.CheckAvailability(1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != "IN_STOCK" || a.Qty != 5 {
		t.Fatalf("want IN_STOCK(5), got %+v", a)
	}

	// low stock
	if err := s.catalog.Restock(1, 2); err != nil {
		t.Fatal(err)
	}
	a, err = svc.CheckAvailability(1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != "LOW_STOCK" || a.Qty != 2 {
		t.Fatalf("want LOW_STOCK(2), got %+v", a)
	}

	// unknown product reads as out of stock
	a, err = svc.CheckAvailability(999)
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != "OUT_OF_STOCK" {
		t.Fatalf("want OUT_OF_STOCK, got %+v", a)
	}
}
