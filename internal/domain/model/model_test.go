package model

import "testing"

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusTaken, OrderStatusDone, OrderStatusCancelled} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if OrderStatus("doing").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
	if OrderStatus("").Valid() {
		t.Fatal("expected empty status to be invalid")
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusPending.Terminal() || OrderStatusTaken.Terminal() {
		t.Fatal("pending and taken must not be terminal")
	}
	if !OrderStatusDone.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatal("done and cancelled must be terminal")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleCustomer.Valid() || !RoleStaff.Valid() {
		t.Fatal("expected known roles to be valid")
	}
	if Role("admin").Valid() {
		t.Fatal("expected unknown role to be invalid")
	}
}

func TestOrderPatchFields(t *testing.T) {
	var p OrderPatch
	if !p.Empty() {
		t.Fatal("expected zero patch to be empty")
	}
	if got := p.Fields(); len(got) != 0 {
		t.Fatalf("expected no fields, got %v", got)
	}

	loc := "Room 5"
	desc := "leak"
	p = OrderPatch{Location: &loc, Description: &desc}
	if p.Empty() {
		t.Fatal("expected patch with fields not to be empty")
	}
	fields := p.Fields()
	if len(fields) != 2 || fields[0] != "location" || fields[1] != "description" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestOrderFilterNormalize(t *testing.T) {
	f := OrderFilter{Page: 0, PageSize: 0}
	f.Normalize()
	if f.Page != 1 || f.PageSize != DefaultPageSize {
		t.Fatalf("unexpected defaults: page=%d size=%d", f.Page, f.PageSize)
	}
	if f.Offset() != 0 {
		t.Fatalf("expected zero offset for first page, got %d", f.Offset())
	}

	f = OrderFilter{Page: 3, PageSize: 500}
	f.Normalize()
	if f.PageSize != MaxPageSize {
		t.Fatalf("expected page size clamp, got %d", f.PageSize)
	}
	if f.Offset() != 2*MaxPageSize {
		t.Fatalf("unexpected offset %d", f.Offset())
	}
}
