package usecase

import (
	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
)

// Action identifies an operation checked by the authorization policy.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionTake     Action = "take"
	ActionFinish   Action = "finish"
	ActionCancel   Action = "cancel"
	ActionUpdate   Action = "update"
	ActionRate     Action = "rate"
	ActionView     Action = "view"
	ActionListAll  Action = "list_all"
	ActionListOwn  Action = "list_own"
	ActionViewLogs Action = "view_logs"
)

// Authorize is the pure authorization policy: it maps (actor, action, order)
// to allow or deny without side effects. Order may be nil for actions that do
// not target an existing order. Ownership fields are immutable, so checking
// them on a pre-transaction read is race-free; status is deliberately not
// examined here (that is the lifecycle engine's concern).
func Authorize(actor model.Actor, action Action, order *model.Order) error {
	switch action {
	case ActionSubmit:
		if actor.Role != model.RoleCustomer {
			return domainErrors.Forbidden("only customers may submit orders")
		}
	case ActionTake:
		if actor.Role != model.RoleStaff {
			return domainErrors.Forbidden("only technicians may take orders")
		}
	case ActionFinish:
		if actor.Role != model.RoleStaff {
			return domainErrors.Forbidden("only technicians may finish orders")
		}
		if order != nil && order.StaffID != nil && *order.StaffID != actor.ID {
			return domainErrors.Forbidden("only the assigned technician may finish this order")
		}
	case ActionListAll, ActionViewLogs:
		if actor.Role != model.RoleStaff {
			return domainErrors.Forbidden("technician role required")
		}
	case ActionCancel, ActionUpdate, ActionRate, ActionListOwn:
		if actor.Role != model.RoleCustomer {
			return domainErrors.Forbidden("customer role required")
		}
		if order != nil && order.CustomerID != actor.ID {
			return domainErrors.Forbidden("order belongs to another customer")
		}
	case ActionView:
		if actor.Role == model.RoleStaff {
			return nil
		}
		if actor.Role != model.RoleCustomer {
			return domainErrors.Forbidden("unknown role")
		}
		if order != nil && order.CustomerID != actor.ID {
			return domainErrors.Forbidden("order belongs to another customer")
		}
	default:
		return domainErrors.Forbidden("unknown action")
	}
	return nil
}
