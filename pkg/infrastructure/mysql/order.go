package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

type orderRow struct {
	ID         string    `db:"id"`
	AccountID  string    `db:"account_id"`
	TotalCents int64     `db:"total_cents"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}

type orderItemRow struct {
	OrderID    string `db:"order_id"`
	Position   int    `db:"position"`
	ProductID  string `db:"product_id"`
	Quantity   int    `db:"quantity"`
	PriceCents int64  `db:"price_cents"`
	Status     string `db:"status"`
}

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

// Create writes the order header and its line items together. The
// transaction only spans the order's own rows; stock rows are owned by the
// inventory side and compensated separately.
func (r *OrderRepository) Create(order *model.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return pkgerrors.Wrap(err, "begin order insert")
	}
	defer tx.Rollback()

	const orderQuery = `
		INSERT INTO orders (id, account_id, total_cents, status, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = tx.Exec(orderQuery,
		order.ID.String(), order.AccountID.String(),
		order.TotalCents, order.Status.String(), order.CreatedAt,
	)
	if err != nil {
		return pkgerrors.Wrap(err, "insert order")
	}

	const itemQuery = `
		INSERT INTO order_items (order_id, position, product_id, quantity, price_cents, status)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, item := range order.Items {
		_, err = tx.Exec(itemQuery,
			order.ID.String(), i, item.ProductID.String(),
			item.Quantity, item.PriceCents, item.Status.String(),
		)
		if err != nil {
			return pkgerrors.Wrap(err, "insert order item")
		}
	}

	return pkgerrors.Wrap(tx.Commit(), "commit order insert")
}

func (r *OrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT * FROM orders WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select order")
	}
	return r.assemble(row)
}

func (r *OrderRepository) ListByAccount(accountID uuid.UUID) ([]*model.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `SELECT * FROM orders WHERE account_id = ? ORDER BY created_at`, accountID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select orders by account")
	}
	return r.assembleAll(rows)
}

func (r *OrderRepository) ListAll() ([]*model.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `SELECT * FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select orders")
	}
	return r.assembleAll(rows)
}

func (r *OrderRepository) UpdateStatus(id uuid.UUID, status model.OrderStatus) error {
	result, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status.String(), id.String())
	if err != nil {
		return pkgerrors.Wrap(err, "update order status")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "update order status rows affected")
	}
	if affected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Count() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM orders`)
	return count, pkgerrors.Wrap(err, "count orders")
}

func (r *OrderRepository) TotalRevenueCents() (int64, error) {
	var total int64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(total_cents), 0) FROM orders`)
	return total, pkgerrors.Wrap(err, "sum order totals")
}

func (r *OrderRepository) assembleAll(rows []orderRow) ([]*model.Order, error) {
	orders := make([]*model.Order, 0, len(rows))
	for _, row := range rows {
		order, err := r.assemble(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *OrderRepository) assemble(row orderRow) (*model.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse order id")
	}
	accountID, err := uuid.Parse(row.AccountID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse order account id")
	}
	status, err := model.ParseOrderStatus(row.Status)
	if err != nil {
		return nil, err
	}

	var itemRows []orderItemRow
	err = r.db.Select(&itemRows, `SELECT * FROM order_items WHERE order_id = ? ORDER BY position`, row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select order items")
	}
	items := make([]model.LineItem, 0, len(itemRows))
	for _, itemRow := range itemRows {
		productID, err := uuid.Parse(itemRow.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "parse line item product id")
		}
		itemStatus, err := model.ParseOrderStatus(itemRow.Status)
		if err != nil {
			return nil, err
		}
		items = append(items, model.LineItem{
			ProductID:  productID,
			Quantity:   itemRow.Quantity,
			PriceCents: itemRow.PriceCents,
			Status:     itemStatus,
		})
	}

	return &model.Order{
		ID:         id,
		AccountID:  accountID,
		Items:      items,
		TotalCents: row.TotalCents,
		Status:     status,
		CreatedAt:  row.CreatedAt,
	}, nil
}
