package service

import "storefront/pkg/domain/model"

// Stats is the read-only aggregate view shown on the operator dashboard.
type Stats struct {
	TotalShoppers int
	TotalProducts int
	TotalOrders   int
	RevenueCents  int64
}

type DashboardService interface {
	Stats() (Stats, error)
}

func NewDashboardService(accounts model.AccountRepository, products model.ProductRepository, orders model.OrderRepository) DashboardService {
	return &dashboardService{accounts: accounts, products: products, orders: orders}
}

type dashboardService struct {
	accounts model.AccountRepository
	products model.ProductRepository
	orders   model.OrderRepository
}

func (s *dashboardService) Stats() (Stats, error) {
	shoppers, err := s.accounts.CountByRole(model.RoleShopper)
	if err != nil {
		return Stats{}, err
	}
	products, err := s.products.Count(false)
	if err != nil {
		return Stats{}, err
	}
	orders, err := s.orders.Count()
	if err != nil {
		return Stats{}, err
	}
	revenue, err := s.orders.TotalRevenueCents()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalShoppers: shoppers,
		TotalProducts: products,
		TotalOrders:   orders,
		RevenueCents:  revenue,
	}, nil
}
