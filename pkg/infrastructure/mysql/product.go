package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

type productRow struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	PriceCents    int64     `db:"price_cents"`
	StockQuantity int       `db:"stock_quantity"`
	Deleted       bool      `db:"deleted"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *ProductRepository) Create(product *model.Product) error {
	const query = `
		INSERT INTO products (id, name, description, price_cents, stock_quantity, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		product.ID.String(), product.Name, product.Description,
		product.PriceCents, product.StockQuantity, product.Deleted,
		product.CreatedAt, product.UpdatedAt,
	)
	return pkgerrors.Wrap(err, "insert product")
}

func (r *ProductRepository) Update(product *model.Product) error {
	const query = `
		UPDATE products
		SET name = ?, description = ?, price_cents = ?, stock_quantity = ?, deleted = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.Exec(query,
		product.Name, product.Description, product.PriceCents,
		product.StockQuantity, product.Deleted, product.UpdatedAt,
		product.ID.String(),
	)
	if err != nil {
		return pkgerrors.Wrap(err, "update product")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "update product rows affected")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT * FROM products WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select product")
	}
	return row.toModel()
}

func (r *ProductRepository) List(offset, limit int, includeDeleted bool) ([]*model.Product, error) {
	query := `SELECT * FROM products WHERE (deleted = FALSE OR ?) ORDER BY created_at LIMIT ? OFFSET ?`
	var rows []productRow
	if err := r.db.Select(&rows, query, includeDeleted, limit, offset); err != nil {
		return nil, pkgerrors.Wrap(err, "select products")
	}
	products := make([]*model.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *ProductRepository) Count(includeDeleted bool) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM products WHERE (deleted = FALSE OR ?)`, includeDeleted)
	return count, pkgerrors.Wrap(err, "count products")
}

// DecrementStock is the compare-and-decrement: the stock check and the
// subtraction happen in one statement, so the row can never go negative and
// concurrent callers serialize on the row lock.
func (r *ProductRepository) DecrementStock(id uuid.UUID, quantity int) error {
	const query = `
		UPDATE products
		SET stock_quantity = stock_quantity - ?
		WHERE id = ? AND deleted = FALSE AND stock_quantity >= ?`
	result, err := r.db.Exec(query, quantity, id.String(), quantity)
	if err != nil {
		return pkgerrors.Wrap(err, "decrement stock")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "decrement stock rows affected")
	}
	if affected == 1 {
		return nil
	}

	// Nothing matched: either the product is gone or it lacks stock.
	var exists bool
	err = r.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM products WHERE id = ? AND deleted = FALSE)`, id.String())
	if err != nil {
		return pkgerrors.Wrap(err, "check product existence")
	}
	if !exists {
		return model.ErrProductNotFound
	}
	return model.ErrInsufficientStock
}

func (r *ProductRepository) IncrementStock(id uuid.UUID, quantity int) error {
	result, err := r.db.Exec(`UPDATE products SET stock_quantity = stock_quantity + ? WHERE id = ?`, quantity, id.String())
	if err != nil {
		return pkgerrors.Wrap(err, "increment stock")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "increment stock rows affected")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (row productRow) toModel() (*model.Product, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse product id")
	}
	return &model.Product{
		ID:            id,
		Name:          row.Name,
		Description:   row.Description,
		PriceCents:    row.PriceCents,
		StockQuantity: row.StockQuantity,
		Deleted:       row.Deleted,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
