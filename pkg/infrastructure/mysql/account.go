package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

type accountRow struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Name           string    `db:"name"`
	Phone          string    `db:"phone"`
	Role           string    `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) NextID() (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *AccountRepository) Create(account *model.Account) error {
	const query = `
		INSERT INTO accounts (id, email, hashed_password, name, phone, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		account.ID.String(), account.Email, account.HashedPassword,
		account.Name, account.Phone, account.Role.String(),
		account.CreatedAt, account.UpdatedAt,
	)
	return pkgerrors.Wrap(err, "insert account")
}

func (r *AccountRepository) Find(id uuid.UUID) (*model.Account, error) {
	var row accountRow
	err := r.db.Get(&row, `SELECT * FROM accounts WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select account")
	}
	return row.toModel()
}

func (r *AccountRepository) FindByEmail(email string) (*model.Account, error) {
	var row accountRow
	err := r.db.Get(&row, `SELECT * FROM accounts WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select account by email")
	}
	return row.toModel()
}

func (r *AccountRepository) ListByRole(role model.Role) ([]*model.Account, error) {
	var rows []accountRow
	err := r.db.Select(&rows, `SELECT * FROM accounts WHERE role = ? ORDER BY created_at`, role.String())
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select accounts by role")
	}
	accounts := make([]*model.Account, 0, len(rows))
	for _, row := range rows {
		account, err := row.toModel()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *AccountRepository) CountByRole(role model.Role) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM accounts WHERE role = ?`, role.String())
	return count, pkgerrors.Wrap(err, "count accounts")
}

func (row accountRow) toModel() (*model.Account, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse account id")
	}
	role, err := model.ParseRole(row.Role)
	if err != nil {
		return nil, err
	}
	return &model.Account{
		ID:             id,
		Email:          row.Email,
		HashedPassword: row.HashedPassword,
		Name:           row.Name,
		Phone:          row.Phone,
		Role:           role,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}
