package model

import (
	"fmt"
	"strings"
	"time"
)

// LogAction tags an audit trail entry.
type LogAction string

const (
	LogActionCreate LogAction = "create"
	LogActionTake   LogAction = "take"
	LogActionFinish LogAction = "finish"
	LogActionCancel LogAction = "cancel"
	LogActionUpdate LogAction = "update"
	LogActionRate   LogAction = "rate"
)

// OrderLogEntry is an immutable record of one action taken against an order.
// StaffID is nil for customer-originated actions.
type OrderLogEntry struct {
	ID        int64
	OrderID   int64
	StaffID   *int64
	Action    LogAction
	Message   string
	CreatedAt time.Time
}

// Canonical audit messages shared by all storage backends.
const (
	CreateLogMessage = "customer submitted order"
	TakeLogMessage   = "technician took order"
	CancelLogMessage = "customer cancelled order"
)

// UpdateLogMessage summarizes which fields a patch changed.
func UpdateLogMessage(patch OrderPatch) string {
	fields := patch.Fields()
	if len(fields) == 0 {
		return "customer updated order"
	}
	return "customer updated " + strings.Join(fields, ", ")
}

// RateLogMessage includes the numeric score and the optional comment.
func RateLogMessage(rating int, comment string) string {
	if comment == "" {
		return fmt.Sprintf("customer rated order %d/5", rating)
	}
	return fmt.Sprintf("customer rated order %d/5: %s", rating, comment)
}
