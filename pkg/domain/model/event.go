package model

import "github.com/google/uuid"

type OrderPlaced struct {
	OrderID       uuid.UUID
	AccountID     uuid.UUID
	CustomerEmail string
	Items         []LineItem
	TotalCents    int64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderStatusChanged struct {
	OrderID   uuid.UUID
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderStatusChanged) Type() string { return "OrderStatusChanged" }

type ProductCreated struct {
	ProductID uuid.UUID
	Name      string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductArchived struct {
	ProductID uuid.UUID
}

func (e ProductArchived) Type() string { return "ProductArchived" }

type AccountRegistered struct {
	AccountID uuid.UUID
	Email     string
	Role      Role
}

func (e AccountRegistered) Type() string { return "AccountRegistered" }
