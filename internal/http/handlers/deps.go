package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopmart/internal/config"
	"shopmart/internal/repos"
	"shopmart/internal/services"
	"shopmart/internal/session"
)

type Deps struct {
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	CheckoutHandler  *CheckoutHandler
	OrderHandler     *OrderHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catalogRepo := repos.NewCatalogRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	sessions := session.NewMemoryStore()
	locks := session.NewLocks()

	invSvc := services.NewInventoryService(catalogRepo)
	cartSvc := services.NewCartService(sessions, locks, catalogRepo)
	checkoutSvc := services.NewCheckoutService(cartSvc, catalogRepo, orderRepo, locks)
	checkoutSvc.Retries = cfg.CheckoutRetries
	checkoutSvc.Backoff = cfg.CheckoutBackoff

	return &Deps{
		ProductHandler:   &ProductHandler{Catalog: catalogRepo},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		CheckoutHandler:  &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Orders: orderRepo},
		OrderHandler:     &OrderHandler{Orders: orderRepo, Auth: auth},
		AdminHandler:     &AdminHandler{Catalog: catalogRepo, Orders: orderRepo},
	}
}
