package model

import "time"

// OrderStatus describes the repair order lifecycle. Transitions only move
// forward: pending -> taken -> done, with cancelled reachable from any
// non-terminal state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusTaken     OrderStatus = "taken"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusTaken, OrderStatusDone, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDone || s == OrderStatusCancelled
}

// Order describes a repair request submitted by a customer.
type Order struct {
	ID            int64
	OrderNo       string
	CustomerID    int64
	StaffID       *int64
	Location      string
	ContactPhone  string
	Description   string
	ImageURL      string
	Status        OrderStatus
	Rating        *int
	RatingComment string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderPatch carries the customer-editable fields of an order. Nil fields are
// left untouched.
type OrderPatch struct {
	Location     *string
	ContactPhone *string
	Description  *string
}

// Empty reports whether the patch carries no changes.
func (p OrderPatch) Empty() bool {
	return p.Location == nil && p.ContactPhone == nil && p.Description == nil
}

// Fields lists the names of the fields present in the patch.
func (p OrderPatch) Fields() []string {
	var fields []string
	if p.Location != nil {
		fields = append(fields, "location")
	}
	if p.ContactPhone != nil {
		fields = append(fields, "contact_phone")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	return fields
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// OrderFilter selects a page of orders. A nil CustomerID means all customers,
// a nil Status means all statuses.
type OrderFilter struct {
	CustomerID *int64
	Status     *OrderStatus
	Page       int
	PageSize   int
}

// Normalize clamps pagination to sane bounds.
func (f *OrderFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// Offset returns the row offset for the normalized page.
func (f OrderFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
