package memory

import (
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]model.Product
	order    []uuid.UUID
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[uuid.UUID]model.Product)}
}

func (r *ProductRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *ProductRepository) Create(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

func (r *ProductRepository) Update(product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}

func (r *ProductRepository) List(offset, limit int, includeDeleted bool) ([]*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	visible := make([]*model.Product, 0)
	for _, id := range r.order {
		product := r.products[id]
		if product.Deleted && !includeDeleted {
			continue
		}
		copied := product
		visible = append(visible, &copied)
	}
	if offset >= len(visible) {
		return []*model.Product{}, nil
	}
	visible = visible[offset:]
	if limit > 0 && limit < len(visible) {
		visible = visible[:limit]
	}
	return visible, nil
}

func (r *ProductRepository) Count(includeDeleted bool) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, product := range r.products {
		if product.Deleted && !includeDeleted {
			continue
		}
		count++
	}
	return count, nil
}

// DecrementStock holds the write lock across the availability check and the
// decrement, which makes the pair a single atomic step for every caller of
// this repository.
func (r *ProductRepository) DecrementStock(id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok || product.Deleted {
		return model.ErrProductNotFound
	}
	if product.StockQuantity < quantity {
		return model.ErrInsufficientStock
	}
	product.StockQuantity -= quantity
	r.products[id] = product
	return nil
}

func (r *ProductRepository) IncrementStock(id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	product.StockQuantity += quantity
	r.products[id] = product
	return nil
}
