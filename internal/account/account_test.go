package account

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSummarizeUsesFirstOrderStatus(t *testing.T) {
	orders := []Order{
		{ID: "ORD-2024-001", Status: OrderDelivered},
		{ID: "ORD-2024-002", Status: OrderInTransit},
	}
	addresses := []Address{{ID: 1}, {ID: 2}}
	got := Summarize(PersonalDetails{FirstName: "John"}, orders, addresses)
	want := Summary{FirstName: "John", TotalOrders: 2, LastOrderStatus: "Delivered", SavedAddressCount: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestSummarizeWithoutOrders(t *testing.T) {
	got := Summarize(PersonalDetails{}, nil, nil)
	if got.LastOrderStatus != NoOrdersLabel {
		t.Fatalf("expected %q, got %q", NoOrdersLabel, got.LastOrderStatus)
	}
	if got.TotalOrders != 0 || got.SavedAddressCount != 0 {
		t.Fatalf("expected zero counts, got %#v", got)
	}
}

func TestSummarizeDoesNotSort(t *testing.T) {
	older := Order{ID: "old", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: OrderDelivered}
	newer := Order{ID: "new", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Status: OrderProcessing}
	got := Summarize(PersonalDetails{}, []Order{older, newer}, nil)
	if got.LastOrderStatus != "Delivered" {
		t.Fatalf("expected caller order to be trusted, got %q", got.LastOrderStatus)
	}
}

func TestOrderEligibility(t *testing.T) {
	cases := []struct {
		status OrderStatus
		refund bool
		cancel bool
	}{
		{OrderProcessing, true, true},
		{OrderInTransit, true, false},
		{OrderDelivered, true, false},
		{OrderCancelled, false, false},
		{OrderRefundRequested, false, false},
		{OrderRefunded, false, false},
	}
	for _, tc := range cases {
		order := Order{Status: tc.status}
		if order.RefundEligible() != tc.refund {
			t.Fatalf("%s: expected refund eligibility %v", tc.status, tc.refund)
		}
		if order.CancelEligible() != tc.cancel {
			t.Fatalf("%s: expected cancel eligibility %v", tc.status, tc.cancel)
		}
	}
}

func TestOrderStatusLabelFallsBackToKey(t *testing.T) {
	if got := OrderStatus("on-hold").Label(); got != "on-hold" {
		t.Fatalf("expected raw key, got %q", got)
	}
	if got := OrderInTransit.Label(); got != "In Transit" {
		t.Fatalf("expected In Transit, got %q", got)
	}
}

func TestItemCount(t *testing.T) {
	order := Order{Items: []OrderItem{{Name: "a", Quantity: 2}, {Name: "b"}}}
	if got := order.ItemCount(); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
}

func TestRoleIsManagement(t *testing.T) {
	for _, role := range []Role{RoleProductManager, RoleSalesManager, RoleSupportAgent, RoleSupportAdmin, " Sales_Manager "} {
		if !role.IsManagement() {
			t.Fatalf("expected %q to be a management role", role)
		}
	}
	for _, role := range []Role{RoleCustomer, "", "guest"} {
		if role.IsManagement() {
			t.Fatalf("expected %q not to be a management role", role)
		}
	}
}

func TestValidatePersonalDetails(t *testing.T) {
	valid := PersonalDetails{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: "+1 (555) 123-4567"}
	if err := ValidatePersonalDetails(valid); err != nil {
		t.Fatalf("expected valid details, got %v", err)
	}

	noPhone := valid
	noPhone.Phone = ""
	if err := ValidatePersonalDetails(noPhone); err != nil {
		t.Fatalf("expected phone to be optional, got %v", err)
	}

	invalid := PersonalDetails{FirstName: "   ", LastName: "Doe", Email: "not-an-email", Phone: "call me"}
	err := ValidatePersonalDetails(invalid)
	if !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := map[string]string{
		"firstName": "required",
		"email":     "must be a valid email address",
		"phone":     "may only contain digits, spaces and +()-.",
	}
	if diff := cmp.Diff(want, FieldErrors(err)); diff != "" {
		t.Fatalf("unexpected field errors (-want +got):\n%s", diff)
	}
}

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("delete address 7: %w", ErrAddressNotFound)
	if !IsCode(wrapped, CodeNotFound) {
		t.Fatalf("expected not found code, got %s", CodeOf(wrapped))
	}
	if CodeOf(fmt.Errorf("plain")) != CodeInternal {
		t.Fatalf("expected unclassified errors to be internal")
	}
	transient := WrapError(CodeTransient, "list orders", fmt.Errorf("connection reset"))
	if transient.Error() != "list orders: connection reset" {
		t.Fatalf("unexpected message %q", transient.Error())
	}
}
