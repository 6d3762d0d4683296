package services

import (
	"errors"

	"shopmart/internal/domain"
)

type InventoryService struct {
	Catalog Catalog
}

func NewInventoryService(catalog Catalog) *InventoryService {
	return &InventoryService{Catalog: catalog}
}

// CheckAvailability converts quantity to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID int64) (domain.Availability, error) {
	p, err := s.Catalog.Get(productID)
	if err != nil {
		// A product that no longer exists reads as out of stock.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case p.Quantity >= 5:
		status = "IN_STOCK"
	case p.Quantity > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Quantity}, nil
}
