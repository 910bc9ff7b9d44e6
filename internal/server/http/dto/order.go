package dto

import "time"

// SubmitOrderRequest describes a new repair order.
type SubmitOrderRequest struct {
	Location     string `json:"location"`
	ContactPhone string `json:"contact_phone"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
}

// PatchOrderRequest carries a partial edit; absent fields stay untouched.
type PatchOrderRequest struct {
	Location     *string `json:"location"`
	ContactPhone *string `json:"contact_phone"`
	Description  *string `json:"description"`
}

// FinishOrderRequest optionally carries the technician's completion note.
type FinishOrderRequest struct {
	Message string `json:"message"`
}

// RateOrderRequest carries the customer's rating of a completed order.
type RateOrderRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// OrderResponse is the public view of a repair order.
type OrderResponse struct {
	ID            int64     `json:"id"`
	OrderNo       string    `json:"order_no"`
	CustomerID    int64     `json:"customer_id"`
	StaffID       *int64    `json:"staff_id,omitempty"`
	Location      string    `json:"location"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url,omitempty"`
	Status        string    `json:"status"`
	Rating        *int      `json:"rating,omitempty"`
	RatingComment string    `json:"rating_comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderLogResponse is one audit trail entry of an order.
type OrderLogResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	StaffID   *int64    `json:"staff_id,omitempty"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResponse returns the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// ErrorResponse carries a human-readable failure reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
