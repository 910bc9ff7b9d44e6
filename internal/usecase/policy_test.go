package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
)

func TestAuthorize(t *testing.T) {
	customer := model.Actor{ID: 1, Role: model.RoleCustomer}
	otherCustomer := model.Actor{ID: 2, Role: model.RoleCustomer}
	staff := model.Actor{ID: 10, Role: model.RoleStaff}
	otherStaff := model.Actor{ID: 11, Role: model.RoleStaff}

	staffID := staff.ID
	owned := &model.Order{ID: 100, CustomerID: customer.ID}
	assigned := &model.Order{ID: 101, CustomerID: customer.ID, StaffID: &staffID}

	tests := []struct {
		name    string
		actor   model.Actor
		action  Action
		order   *model.Order
		allowed bool
	}{
		{"customer submits", customer, ActionSubmit, nil, true},
		{"staff cannot submit", staff, ActionSubmit, nil, false},
		{"staff takes", staff, ActionTake, nil, true},
		{"customer cannot take", customer, ActionTake, nil, false},
		{"assigned staff finishes", staff, ActionFinish, assigned, true},
		{"other staff cannot finish", otherStaff, ActionFinish, assigned, false},
		{"customer cannot finish", customer, ActionFinish, assigned, false},
		{"owner cancels", customer, ActionCancel, owned, true},
		{"other customer cannot cancel", otherCustomer, ActionCancel, owned, false},
		{"staff cannot cancel", staff, ActionCancel, owned, false},
		{"owner updates", customer, ActionUpdate, owned, true},
		{"other customer cannot update", otherCustomer, ActionUpdate, owned, false},
		{"owner rates", customer, ActionRate, owned, true},
		{"other customer cannot rate", otherCustomer, ActionRate, owned, false},
		{"owner views", customer, ActionView, owned, true},
		{"other customer cannot view", otherCustomer, ActionView, owned, false},
		{"staff views any", otherStaff, ActionView, owned, true},
		{"staff lists all", staff, ActionListAll, nil, true},
		{"customer cannot list all", customer, ActionListAll, nil, false},
		{"customer lists own", customer, ActionListOwn, nil, true},
		{"staff views logs", staff, ActionViewLogs, nil, true},
		{"customer cannot view logs", customer, ActionViewLogs, nil, false},
		{"unknown role denied", model.Actor{ID: 3, Role: "admin"}, ActionView, owned, false},
		{"unknown action denied", staff, Action("reboot"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.action, tt.order)
			if tt.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.allowed {
				if !errors.Is(err, domainErrors.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
			}
		})
	}
}

func TestAuthorizeIsPure(t *testing.T) {
	staffID := int64(10)
	order := &model.Order{ID: 1, CustomerID: 1, StaffID: &staffID, Status: model.OrderStatusTaken}
	before := *order

	_ = Authorize(model.Actor{ID: 2, Role: model.RoleCustomer}, ActionCancel, order)

	if *order != before {
		t.Fatal("policy must not mutate the order")
	}
}
