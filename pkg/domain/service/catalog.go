package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
)

var (
	ErrInvalidPrice       = errors.New("price must be a positive number")
	ErrInvalidStock       = errors.New("stock quantity cannot be negative")
	ErrProductNameMissing = errors.New("product name is required")
)

// CatalogService manages the product catalog: plain field-level writes plus
// soft deletion. Stock consumption never goes through here; that is the
// InventoryLedger's job.
type CatalogService interface {
	CreateProduct(name, description string, priceCents int64, stock int) (*model.Product, error)
	UpdateProduct(id uuid.UUID, update model.ProductUpdate) (*model.Product, error)
	SoftDeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(offset, limit int, includeDeleted bool) ([]*model.Product, int, error)
}

func NewCatalogService(products model.ProductRepository, dispatcher domain.EventDispatcher) CatalogService {
	return &catalogService{products: products, dispatcher: dispatcher}
}

type catalogService struct {
	products   model.ProductRepository
	dispatcher domain.EventDispatcher
}

func (s *catalogService) CreateProduct(name, description string, priceCents int64, stock int) (*model.Product, error) {
	if name == "" {
		return nil, ErrProductNameMissing
	}
	if priceCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	productID, err := s.products.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:            productID,
		Name:          name,
		Description:   description,
		PriceCents:    priceCents,
		StockQuantity: stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: productID, Name: name})
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, update model.ProductUpdate) (*model.Product, error) {
	product, err := s.products.Find(id)
	if err != nil {
		return nil, err
	}
	if product.Deleted {
		return nil, model.ErrProductNotFound
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, ErrProductNameMissing
		}
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.PriceCents != nil {
		if *update.PriceCents <= 0 {
			return nil, ErrInvalidPrice
		}
		product.PriceCents = *update.PriceCents
	}
	if update.StockQuantity != nil {
		if *update.StockQuantity < 0 {
			return nil, ErrInvalidStock
		}
		product.StockQuantity = *update.StockQuantity
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) SoftDeleteProduct(id uuid.UUID) error {
	product, err := s.products.Find(id)
	if err != nil {
		return err
	}
	if product.Deleted {
		return nil
	}

	product.Deleted = true
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(product); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductArchived{ProductID: id})
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.Find(id)
	if err != nil {
		return nil, err
	}
	if product.Deleted {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) ListProducts(offset, limit int, includeDeleted bool) ([]*model.Product, int, error) {
	products, err := s.products.List(offset, limit, includeDeleted)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(includeDeleted)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
